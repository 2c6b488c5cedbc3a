package toggl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sporadisk/punchclock/client"
)

func (c *Client) endpointURL(endpoint string) string {
	return strings.TrimSuffix(c.Endpoint, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

func (c *Client) GetRequest(ctx context.Context, endpoint string) (*client.Resp, error) {
	return c.request(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) PostRequest(ctx context.Context, endpoint string, body any) (*client.Resp, error) {
	return c.request(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) PatchRequest(ctx context.Context, endpoint string, body any) (*client.Resp, error) {
	return c.request(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any) (*client.Resp, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("api request", "method", method, "endpoint", endpoint)
	return c.HttpClient.Do(req)
}
