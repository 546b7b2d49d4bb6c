package transcoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"assetpipe/internal/domain"
	"assetpipe/internal/domain/entity"
	transcoderRepository "assetpipe/internal/domain/repository/transcoder"
	"assetpipe/internal/infrastructure/metrics"
	"assetpipe/pkg/logger"
)

const maxResponseBytes = 64 << 20

type response struct {
	Success bool          `json:"success"`
	Data    *responseData `json:"data"`
	Error   string        `json:"error"`
}

type responseData struct {
	OriginalSize  int64  `json:"originalSize"`
	OptimizedSize int64  `json:"optimizedSize"`
	MimeType      string `json:"mimeType"`
	Content       string `json:"content"`
	StoredPath    string `json:"storedPath"`
}

type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func New(cfg Config) *Client {
	maxFailures := cfg.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Millisecond},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "transcoder",
			Timeout: time.Duration(cfg.OpenTimeout) * time.Millisecond,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			// A rejected credential says nothing about the service's health.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, domain.ErrMissingCredential)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func (c *Client) Transcode(ctx context.Context, req entity.TranscodeRequest) (entity.TranscodeResult, error) {
	token, ok := transcoderRepository.CredentialFrom(ctx)
	if !ok {
		return entity.TranscodeResult{}, domain.ErrMissingCredential
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, token, req)
	})
	metrics.RecordTranscode(outcomeLabel(err), time.Since(start))

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return entity.TranscodeResult{}, fmt.Errorf("%w: %w", domain.ErrTransientRemote, err)
		}

		return entity.TranscodeResult{}, err
	}

	return out.(entity.TranscodeResult), nil
}

func (c *Client) do(ctx context.Context, token string, req entity.TranscodeRequest) (entity.TranscodeResult, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return entity.TranscodeResult{}, fmt.Errorf("%w: %w", domain.ErrTransientRemote, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return entity.TranscodeResult{}, fmt.Errorf("%w: %w", domain.ErrTransientRemote, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return entity.TranscodeResult{}, fmt.Errorf("%w: %w", domain.ErrTransientRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return entity.TranscodeResult{}, fmt.Errorf("%w: status %d", domain.ErrMissingCredential, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.TranscodeResult{}, fmt.Errorf("%w: status %d", domain.ErrTransientRemote, resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&parsed); err != nil {
		return entity.TranscodeResult{}, fmt.Errorf("%w: decode response: %w", domain.ErrTransientRemote, err)
	}

	return decodeResult(parsed)
}

func encodeForm(req entity.TranscodeRequest) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.Content); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("folder", req.Folder); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("quality", strconv.Itoa(req.Quality)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return body, w.FormDataContentType(), nil
}

func decodeResult(r response) (entity.TranscodeResult, error) {
	if !r.Success {
		return entity.TranscodeResult{}, fmt.Errorf("%w: %s", domain.ErrTransientRemote, r.Error)
	}
	if r.Data == nil || r.Data.Content == "" {
		return entity.TranscodeResult{}, fmt.Errorf("%w: empty result", domain.ErrTransientRemote)
	}

	content, err := base64.StdEncoding.DecodeString(r.Data.Content)
	if err != nil {
		return entity.TranscodeResult{}, fmt.Errorf("%w: content: %w", domain.ErrTransientRemote, err)
	}
	if len(content) == 0 || int64(len(content)) != r.Data.OptimizedSize {
		return entity.TranscodeResult{}, fmt.Errorf("%w: size mismatch", domain.ErrTransientRemote)
	}

	if r.Data.StoredPath != "" {
		logger.Debug("transcoder suggested path", "path", r.Data.StoredPath)
	}

	return entity.TranscodeResult{
		Content:       content,
		MimeType:      r.Data.MimeType,
		OriginalSize:  r.Data.OriginalSize,
		OptimizedSize: r.Data.OptimizedSize,
		StoredPath:    r.Data.StoredPath,
	}, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrMissingCredential):
		return "unauthorized"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "failure"
	}
}
