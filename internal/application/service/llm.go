package service

import (
	"context"
)

type LLMService interface {
	// CompleteJSON sends one chat completion in JSON response mode and returns
	// the raw message content. It never retries.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
}
