package utils

import (
	"context"
	"errors"
	"io"
	"koos-service/internal/pkg/constvars"
	"koos-service/internal/pkg/exceptions"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeJSONBody decodes the request body into dst and validates it. The body
// is read in full first so a size limit surfaces as its own error.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err, maxBytesErr.Limit)
		}
		return exceptions.ErrCannotParseJSON(err)
	}

	err = json.Unmarshal(body, dst)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}

	err = ValidateStruct(dst)
	if err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

// GetClientID labels the caller in logs: the X-Client-ID header when present,
// otherwise the remote host. The header is caller-controlled, so quotas key on
// GetRemoteHost instead.
func GetClientID(r *http.Request) string {
	if clientID := strings.TrimSpace(r.Header.Get(constvars.HeaderClientID)); clientID != "" {
		return clientID
	}
	return GetRemoteHost(r)
}

// GetRemoteHost strips the port (and IPv6 brackets) from r.RemoteAddr.
func GetRemoteHost(r *http.Request) string {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.Trim(host, "[]")
}
