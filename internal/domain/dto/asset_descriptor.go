package dto

type AssetDescriptor struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	StoragePath string `json:"storage_path"`
	Folder      string `json:"folder"`
	FileType    string `json:"type"`
	Size        int64  `json:"size"`
	Uploaded    int64  `json:"uploaded"`
}
