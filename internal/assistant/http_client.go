package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type askRequest struct {
	Message      string `json:"message"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type askResponse struct {
	Response string `json:"response"`
	// Simpler backend variants reply with {"answer": ...} instead.
	Answer string `json:"answer"`
}

// HTTPClient talks to the assistant endpoint over plain JSON POST. Network
// errors, non-2xx statuses and non-JSON bodies are all one "assistant
// unreachable" condition to the caller.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

func (o *HTTPClient) Endpoint() string {
	return o.endpoint
}

func (o *HTTPClient) Ask(ctx context.Context, message, systemPrompt string) (string, error) {
	body, err := json.Marshal(askRequest{Message: message, SystemPrompt: systemPrompt})
	if err != nil {
		return "", errors.Wrap(err, "could not marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/ai/ask", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "could not create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "could not read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed askResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "could not unmarshal response")
	}
	if parsed.Response != "" {
		return parsed.Response, nil
	}
	return parsed.Answer, nil
}
