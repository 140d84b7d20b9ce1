package httpclient

import "context"

// Response is the subset of an HTTP response the provider fetchers inspect.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
}

// Client issues GET requests. query values are URL-encoded onto url; headers
// are sent as-is. Implementations return an error only for transport failures,
// never for non-2xx statuses.
type Client interface {
	Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error)
}
