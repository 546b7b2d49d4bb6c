package transcoder

import (
	"context"

	"assetpipe/internal/domain/entity"
)

type Transcoder interface {
	Transcode(ctx context.Context, req entity.TranscodeRequest) (entity.TranscodeResult, error)
}

type credentialKey struct{}

// WithCredential attaches the invoking session's bearer credential.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token)
}

func CredentialFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(credentialKey{}).(string)

	return token, ok && token != ""
}
