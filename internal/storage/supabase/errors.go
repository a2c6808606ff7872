package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/LaunchLens/analysis_layer/internal/result"
)

// apiError is a PostgREST error payload.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// pgrstNoRows is PostgREST's code for a single-object request matching no row.
const pgrstNoRows = "PGRST116"

// classifyTransport converts an http.Client failure into the taxonomy.
// Everything at this level is connectivity-class: timeouts, refused
// connections, cancelled contexts.
func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return result.TransientStorage("cancelled")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return result.TransientStorage("storage request timed out")
	}
	return result.TransientStorage("storage unreachable: " + err.Error())
}

// classifyStatus converts a non-2xx PostgREST response into the taxonomy.
func classifyStatus(status int, body []byte) error {
	var parsed apiError
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.Message
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	switch {
	case status == http.StatusNotFound, status == http.StatusNotAcceptable, parsed.Code == pgrstNoRows:
		return result.NotFound("row not found")
	case status == http.StatusConflict, strings.HasPrefix(parsed.Code, "23"):
		// Constraint violation: the caller's data conflicts with stored
		// invariants.
		return result.Validation("conflicts with stored data", msg)
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests,
		status == http.StatusBadGateway, status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return result.TransientStorage("storage unavailable: " + msg)
	default:
		return result.Unexpected("storage error " + http.StatusText(status) + ": " + msg)
	}
}
