package middleware

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"

	"assetpipe/internal/domain/repository/transcoder"
	"assetpipe/internal/presentation"
)

const authKind = 24242

// AuthMiddleware admits requests carrying a signed kind 24242 event for action. When admins
// is not empty the signer must be one of them. The encoded event becomes the session
// credential forwarded to the transcoding service.
func AuthMiddleware(action string, admins []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get(presentation.AuthKey)
			if err := validateAuthHeader(authHeader); err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			event, err := decodeEvent(authHeader)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			if err := validateEvent(event, action); err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			if len(admins) > 0 && !slices.Contains(admins, event.PubKey) {
				return ctx.String(http.StatusUnauthorized, "pubkey is not an admin")
			}

			ctx.Set(presentation.PK, event.PubKey)
			ctx.Set(presentation.TTag, getTagValue(event, presentation.TTag))
			ctx.Set(presentation.ExpTag, getExpirationTime(event))

			token := strings.TrimPrefix(authHeader, "Nostr ")
			ctx.SetRequest(ctx.Request().WithContext(transcoder.WithCredential(ctx.Request().Context(), token)))

			return next(ctx)
		}
	}
}

func validateAuthHeader(authHeader string) error {
	if authHeader == "" {
		return fmt.Errorf("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, "Nostr ") {
		return fmt.Errorf("missing Nostr header prefix")
	}

	return nil
}

func decodeEvent(authHeader string) (*nostr.Event, error) {
	eventBase64 := strings.TrimPrefix(authHeader, "Nostr ")
	eventBytes, err := base64.StdEncoding.DecodeString(eventBase64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 event failed: %s", err.Error())
	}

	event := &nostr.Event{}
	if err = json.Unmarshal(eventBytes, event); err != nil {
		return nil, fmt.Errorf("json decode failed: %s", err.Error())
	}

	return event, nil
}

func validateEvent(event *nostr.Event, action string) error {
	if ok, err := event.CheckSignature(); !ok || err != nil {
		return fmt.Errorf("invalid signature")
	}
	if event.Kind != authKind {
		return fmt.Errorf("invalid kind")
	}
	if event.CreatedAt.Time().Unix() > time.Now().Add(1*time.Minute).Unix() {
		return fmt.Errorf("invalid created_at")
	}

	expiration := getTagValue(event, presentation.ExpTag)
	if expiration == "" {
		return fmt.Errorf("empty expiration tag")
	}

	t := getTagValue(event, presentation.TTag)
	if t == "" {
		return fmt.Errorf("empty t tag")
	}
	if t != action {
		return fmt.Errorf("invalid action")
	}

	expirationTime, err := strconv.ParseInt(expiration, 10, 64)
	if err != nil || expirationTime < time.Now().Unix() {
		return fmt.Errorf("invalid expiration")
	}

	return nil
}

func getTagValue(event *nostr.Event, tagName string) string {
	tag := event.Tags.Find(tagName)
	if len(tag) > 1 {
		return tag[1]
	}

	return ""
}

func getExpirationTime(event *nostr.Event) int64 {
	expirationTime, _ := strconv.ParseInt(getTagValue(event, presentation.ExpTag), 10, 64)

	return expirationTime
}
