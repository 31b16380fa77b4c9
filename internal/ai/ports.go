package ai

import "context"

// Generator sends one prompt to a text model and returns its raw answer.
// Failures are returned as *Error so callers can pick a reply by kind.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}
