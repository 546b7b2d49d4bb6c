package entity

type TranscodeRequest struct {
	FileName string
	MimeType string
	Folder   string
	Quality  int
	Content  []byte
}

type TranscodeResult struct {
	Content       []byte
	MimeType      string
	OriginalSize  int64
	OptimizedSize int64
	// StoredPath is the name the service suggests for the output. The pipeline never relies on it.
	StoredPath string
}
