package onshape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://cad.onshape.com/api/v12"

// Default drawing template (Onshape's ANSI A template, used with ISO settings).
const (
	defaultTemplateDocument = "09fb14dcb55eee217f55fa7b"
	defaultTemplateElement  = "149ce62208ba05ac0cee75e5"
)

// Onshape property IDs for metadata lookup.
const (
	PropPartNumber = "57f3fb8efa3416c06701d60f"
	PropRevision   = "57f3fb8efa3416c06701d610"
	PropMaterial   = "57f3fb8efa3416c06701d615"
)

// APIError is returned for any non-2xx response. It carries the HTTP status
// and the server's error body so callers can log the application-level
// failure reason.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("onshape API %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// Client is the Onshape API transport. It holds the two opaque API keys and
// a tuned HTTP client; all endpoint logic lives in the operation methods.
//
// The client performs no automatic retries: the workflow's bounded poll
// loops are the only repetition in the system.
type Client struct {
	accessKey  string
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an Onshape API client authenticating with the given
// API key pair (HTTP Basic auth, not OAuth). The transport uses connection
// pooling and a generous timeout for large blob downloads.
func NewClient(accessKey, secretKey string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	return &Client{
		accessKey: accessKey,
		secretKey: secretKey,
		baseURL:   defaultAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
	}
}

// SetBaseURL overrides the API base URL. Used by tests and enterprise
// deployments with a dedicated domain.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// do executes one API request. A non-nil body is sent as JSON. The raw
// response bytes are returned; decoding into typed shapes happens in the
// operation methods so that business logic never sees response variance.
func (c *Client) do(method, endpoint string, query map[string]string, body any) ([]byte, error) {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.SetBasicAuth(c.accessKey, c.secretKey)
	req.Header.Set("Accept", "application/vnd.onshape.v1+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		if resp.StatusCode == http.StatusNotFound && strings.Contains(endpoint, "/translations") {
			// A 404 on translation endpoints usually means a missing export
			// rule for this element type in the Onshape document settings.
			msg += " (hint: check that an export rule is configured for this element type)"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: msg}
	}

	return respBody, nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(endpoint string, query map[string]string, out any) error {
	body, err := c.do(http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response from %s: %w", endpoint, err)
	}
	return nil
}

// postJSON performs a POST with a JSON payload and decodes the response
// into out when out is non-nil.
func (c *Client) postJSON(endpoint string, payload, out any) error {
	body, err := c.do(http.MethodPost, endpoint, nil, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response from %s: %w", endpoint, err)
	}
	return nil
}
