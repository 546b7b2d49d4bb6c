package entity

import "time"

const (
	EventAssetCreated  = "asset.created"
	EventAssetReplaced = "asset.replaced"
	EventAssetMoved    = "asset.moved"
	EventAssetDeleted  = "asset.deleted"
	EventBatchProgress = "batch.progress"
	EventBatchDone     = "batch.done"
)

// Event is published on the change feed after a two-store write commits.
type Event struct {
	Type         string    `json:"type"`
	AssetID      string    `json:"asset_id,omitempty"`
	ReplacedID   string    `json:"replaced_id,omitempty"`
	StoragePath  string    `json:"storage_path,omitempty"`
	PreviousPath string    `json:"previous_path,omitempty"`
	Folder       string    `json:"folder,omitempty"`
	BatchID      string    `json:"batch_id,omitempty"`
	Operation    string    `json:"operation,omitempty"`
	Percent      int       `json:"percent,omitempty"`
	Succeeded    int       `json:"succeeded,omitempty"`
	Failed       int       `json:"failed,omitempty"`
	At           time.Time `json:"at"`
}
