// Package providers holds the shared contract and error taxonomy for clients
// of the local inference services (embedding and chat completion).
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrServiceUnavailable indicates the inference service could not be
	// reached or failed to respond. Surfaced to the caller; no automatic retry.
	ErrServiceUnavailable = errors.New("inference service unavailable")

	// ErrModelNotFound indicates the configured model is not available on the
	// service. Fatal for the call; fix the configuration or pull the model.
	ErrModelNotFound = errors.New("model not found")
)

// ChatProvider produces a completion for an assembled prompt.
type ChatProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ClassifyStatus maps a non-2xx response from an Ollama endpoint onto the
// error taxonomy. Ollama reports a missing model as 404 with an "not found"
// error body.
func ClassifyStatus(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if status == http.StatusNotFound || strings.Contains(strings.ToLower(msg), "not found") {
		return fmt.Errorf("%w: %s", ErrModelNotFound, msg)
	}
	return fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, status, msg)
}
