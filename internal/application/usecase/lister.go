package usecase

import (
	"context"

	"assetpipe/internal/domain/dto"
	"assetpipe/internal/domain/model"
	"assetpipe/internal/domain/repository/database"
	"assetpipe/internal/domain/repository/minio"
)

type Lister struct {
	lister   database.Lister
	resolver minio.Resolver
}

func NewLister(lister database.Lister, resolver minio.Resolver) *Lister {
	return &Lister{
		lister:   lister,
		resolver: resolver,
	}
}

// ListAssets queries the catalog. A folder of "" or "all" lists every folder.
func (l *Lister) ListAssets(ctx context.Context, folder, namePrefix string) ([]dto.AssetDescriptor, error) {
	folder = cleanFolder(folder)
	if folder == AllFolders {
		folder = ""
	}

	assets, err := l.lister.Query(ctx, model.AssetFilter{Folder: folder, NamePrefix: namePrefix})
	if err != nil {
		return nil, err
	}

	descriptors := make([]dto.AssetDescriptor, 0, len(assets))
	for i := range assets {
		descriptors = append(descriptors, dto.AssetDescriptor{
			ID:          assets[i].ID,
			URL:         l.resolver.PublicURL(assets[i].StoragePath),
			FileName:    assets[i].FileName,
			StoragePath: assets[i].StoragePath,
			Folder:      assets[i].Folder,
			FileType:    assets[i].MimeType,
			Size:        assets[i].ByteSize,
			Uploaded:    assets[i].CreatedAt.Unix(),
		})
	}

	return descriptors, nil
}
