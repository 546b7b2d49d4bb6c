package entity

import "assetpipe/internal/domain/model"

// FileInput is one file handed to the pipeline.
type FileInput struct {
	Name    string
	Content []byte
}

type IngestRequest struct {
	Files []FileInput
	// Folder is the explicitly configured upload folder.
	Folder string
	// FilterFolder is the folder the caller is viewing; it wins over Folder when set.
	FilterFolder string
	Optimize     bool
	ImagesOnly   bool
}

type IngestResult struct {
	UploadedURLs []string             `json:"uploaded_urls"`
	Assets       []model.Asset        `json:"-"`
	Succeeded    int                  `json:"succeeded"`
	Failed       int                  `json:"failed"`
	Failures     []ItemFailure        `json:"failures,omitempty"`
	Orphans      []string             `json:"orphans,omitempty"`
	Stats        *OptimizationOutcome `json:"stats"`
}

// ItemFailure names one item of a call that did not succeed.
type ItemFailure struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}
