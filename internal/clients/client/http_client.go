package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/observability/metrics"
	"github.com/rs/zerolog/log"
)

// maxErrorBodySize caps how much of a failed response ends up in the error
const maxErrorBodySize = 1024

type HttpClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	Path    string
	// TemplatePath is the path reported to metrics, it must not contain ids
	TemplatePath string
	Headers      map[string]string
}

// HttpStatusError is returned for any non 2xx response
type HttpStatusError struct {
	StatusCode int
	Body       string
}

func (e *HttpStatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

func sendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path
	log.Ctx(ctx).Trace().Str("method", method).Str("url", url).Msg("Sending request")

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timeout after %s: %w", timeout, err)
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &HttpStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &output, nil
}

// SendRequest sends input as a json body and decodes a json response,
// recording the request duration by TemplatePath
func SendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	result, err := sendRequest[I, R](ctx, client, method, opts, input)
	statusCode := http.StatusOK
	if err != nil {
		statusCode = http.StatusInternalServerError
		var statusErr *HttpStatusError
		if errors.As(err, &statusErr) {
			statusCode = statusErr.StatusCode
		}
	}
	timer(statusCode)

	return result, err
}
