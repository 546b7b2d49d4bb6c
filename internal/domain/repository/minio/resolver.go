package minio

type Resolver interface {
	PublicURL(path string) string
}
