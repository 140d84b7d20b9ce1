package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRateLimited matches any provider failure caused by a rate limit.
var ErrRateLimited = errors.New("provider rate limit reached")

// StatusError is returned when a provider answers with a non-2xx status or
// reports an error object inside an otherwise successful response.
type StatusError struct {
	Provider string
	Code     int
	Snippet  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d body: %s", e.Provider, e.Code, e.Snippet)
}

// Is reports 429 responses as ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && e.Code == http.StatusTooManyRequests
}
