package abstraction

import "context"

type Folders interface {
	ListFolders(ctx context.Context) ([]string, error)
	ResolveUploadFolder(explicitFolder, currentFilterFolder string) string
}
