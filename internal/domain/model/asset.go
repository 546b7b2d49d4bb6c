package model

import "time"

// Asset is one catalog row. A row exists if and only if its blob exists at StoragePath.
type Asset struct {
	ID          string    `bson:"_id"`
	FileName    string    `bson:"file_name"`
	StoragePath string    `bson:"storage_path"`
	MimeType    string    `bson:"mime_type"`
	ByteSize    int64     `bson:"byte_size"`
	Folder      string    `bson:"folder"`
	CreatedAt   time.Time `bson:"created_at"`
}

// AssetFilter narrows a catalog query. Empty fields match everything.
type AssetFilter struct {
	Folder     string
	NamePrefix string
}
