package dto

type BatchRequest struct {
	IDs    []string `json:"ids"`
	Folder string   `json:"folder,omitempty"`
}
