package requests

import (
	"context"
	"net/http"
	"time"
)

// Shared client so connections get reused across provider calls.
var client = &http.Client{
	Timeout: 30 * time.Second,
}

// Create a simple request bound to the given context and run it.
func Request(ctx context.Context, url string, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
