// Package podclient implements the front tier's half of the forwarding
// protocol: cookie credentials become bearer headers on a bounded,
// context-aware call to the pod, and pod responses are relayed without
// renumbering.
package podclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"panda-gate/apperrors"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type Response struct {
	Status int
	Body   []byte
}

func (r *Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Decode unmarshals a successful body; a pod that answers 2xx with
// garbage is as unavailable as one that never answered.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apperrors.Upstream("backend returned an unreadable response")
	}
	return nil
}

// Do performs one synchronous call to the pod. The inbound request
// context rides along, so a disconnected client cancels the upstream
// call. Transport failures map to the upstream error class; there are
// no retries here, callers decide that.
func (c *Client) Do(ctx context.Context, method, path, bearer string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("backend unavailable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("backend unavailable")
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Relay writes the pod's status and body to the original caller
// verbatim. Error statuses especially must survive this hop unchanged.
func Relay(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
