package minio

import (
	"net/url"
	"strings"
)

type Resolver struct {
	base   string
	bucket string
}

// NewResolver builds public URLs of the form {public_url}/{bucket}/{path}.
func NewResolver(cfg *StoreConfig) *Resolver {
	return &Resolver{
		base:   strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/"),
		bucket: cfg.Bucket,
	}
}

func (r *Resolver) PublicURL(path string) string {
	segments := append([]string{r.bucket}, strings.Split(path, "/")...)

	u, err := url.JoinPath(r.base, segments...)
	if err != nil {
		return r.base + "/" + r.bucket + "/" + path
	}

	return u
}
