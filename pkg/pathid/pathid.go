// Package pathid generates the lexically sortable suffixes used in storage paths and batch ids.
package pathid

import (
	"math/rand"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
)

func next() ulid.ULID {
	mu.Lock()
	defer mu.Unlock()

	if entropy == nil {
		entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec
	}

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// New returns a lower-cased ULID. Successive calls inside one process are strictly increasing.
func New() string {
	return strings.ToLower(next().String())
}

// StoragePath builds "{folder}/{suffix}{ext}". ext must include its leading dot.
func StoragePath(folder, ext string) string {
	return path.Join(folder, New()+ext)
}

// FolderOf returns the folder component of a storage path.
func FolderOf(storagePath string) string {
	dir := path.Dir(storagePath)
	if dir == "." {
		return ""
	}

	return dir
}
