package usecase

import (
	"context"
	"path"
	"sort"
	"strings"

	"assetpipe/internal/domain/repository/database"
)

// AllFolders is the filter value meaning "no folder filter".
const AllFolders = "all"

type Folders struct {
	lister        database.Lister
	seeds         []string
	defaultFolder string
}

func NewFolders(cfg Config, lister database.Lister) *Folders {
	cfg = cfg.withDefaults()

	return &Folders{
		lister:        lister,
		seeds:         cfg.SeedFolders,
		defaultFolder: cfg.DefaultFolder,
	}
}

// ListFolders returns the seed folders unioned with every folder in use, sorted.
// It is recomputed from the catalog on every call.
func (f *Folders) ListFolders(ctx context.Context) ([]string, error) {
	observed, err := f.lister.DistinctFolders(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(f.seeds)+len(observed))
	for _, name := range append(append([]string{}, f.seeds...), observed...) {
		if name = cleanFolder(name); name != "" {
			set[name] = struct{}{}
		}
	}

	folders := make([]string, 0, len(set))
	for name := range set {
		folders = append(folders, name)
	}
	sort.Strings(folders)

	return folders, nil
}

// ResolveUploadFolder picks where new uploads land: the folder being viewed, if any,
// then the explicit folder, then the configured default.
func (f *Folders) ResolveUploadFolder(explicitFolder, currentFilterFolder string) string {
	return resolveUploadFolder(explicitFolder, currentFilterFolder, f.defaultFolder)
}

func resolveUploadFolder(explicitFolder, currentFilterFolder, fallback string) string {
	if current := cleanFolder(currentFilterFolder); current != "" && current != AllFolders {
		return current
	}
	if explicit := cleanFolder(explicitFolder); explicit != "" {
		return explicit
	}

	return cleanFolder(fallback)
}

// cleanFolder normalises a folder name into a relative, slash-free-at-the-ends path.
func cleanFolder(folder string) string {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return ""
	}

	return strings.TrimPrefix(path.Clean("/"+folder), "/")
}
