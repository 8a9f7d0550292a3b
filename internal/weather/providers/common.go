package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/garage-planner/internal/common"
	"github.com/i474232898/garage-planner/internal/weather"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// placeholderMarkers are fragments of the sample keys shipped in docs and .env templates.
var placeholderMarkers = []string{
	"SUA_CHAVE",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"CHANGEME",
	"CHANGE_ME",
	"REPLACE_ME",
	"<",
}

// IsPlaceholderKey reports whether key is empty or recognizably not a real credential.
func IsPlaceholderKey(key string) bool {
	k := strings.TrimSpace(key)
	return k == "" || common.ContainsAnyFold(k, placeholderMarkers...)
}

// rawResponse is a fully read provider answer.
type rawResponse struct {
	StatusCode int
	Body       []byte
}

func (r rawResponse) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// doRequest executes exactly one HTTP request. Failures to complete the
// exchange are reported as weather.ErrTransport; status handling is left to
// the caller because each provider shapes its error envelope differently.
func doRequest(
	ctx context.Context,
	client *http.Client,
	buildRequest func() (*http.Request, error),
) (rawResponse, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := buildRequest()
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: building request: %v", weather.ErrTransport, err)
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	resp, err := client.Do(req)
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: %v", weather.ErrTransport, redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: reading response: %v", weather.ErrTransport, err)
	}

	return rawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

// redactURLError drops the request URL, which carries the API key, from client errors.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// malformedBody reports a 2xx response that could not be decoded.
func malformedBody(status int, err error) error {
	return weather.NewProviderError(status, fmt.Sprintf("malformed forecast response: %v", err))
}
