package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"time"

	"recruiter/config"
	"recruiter/internal/logger"
)

type Meta struct {
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Envelope is the backend's uniform response wrapper.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// RequestError carries the backend's categorization of a failed call.
// Status 0 means the request never produced a response (network failure).
type RequestError struct {
	Status  int
	Title   string
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend request failed: %s", e.Message)
	}
	return fmt.Sprintf("backend request failed (%d): %s", e.Status, e.Message)
}

// TokenSource resolves the bearer token for the current request context. An
// empty string sends an empty Authorization header, which the backend
// treats as unauthenticated.
type TokenSource func(ctx context.Context) string

type Params map[string]any

// Upload is an opaque file handle forwarded to the backend unchanged.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logger.Logger
}

func New(cfg config.Config, token TokenSource) *Client {
	if token == nil {
		token = func(context.Context) string { return "" }
	}

	return &Client{
		baseURL: cfg.BackendBaseURL,
		http:    &http.Client{Timeout: time.Duration(cfg.BackendTimeout) * time.Second},
		token:   token,
		log:     logger.New("backend"),
	}
}

// EncodeParams serializes query parameters with nil and empty values
// dropped and keys sorted, so the same logical query always produces the
// same string. Resource cache keys depend on this.
func EncodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, key := range keys {
		values.Set(key, fmt.Sprint(params[key]))
	}
	return values.Encode()
}

func (c *Client) Get(ctx context.Context, endpoint string, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, params)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, params)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, params)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, endpoint, body, params)
}

func (c *Client) Delete(ctx context.Context, endpoint string, params Params) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, params)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, params Params) (*Envelope, error) {
	log := c.log.Function("do")

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, log.Err("failed to encode request body", err, "endpoint", endpoint)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.requestURL(endpoint, params), reader)
	if err != nil {
		return nil, log.Err("failed to build request", err, "endpoint", endpoint)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// PostMultipart submits an application payload whose file-typed fields
// travel as multipart parts. Scalar payload fields become form values and
// customFields is carried as a JSON part.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, uploads map[string]Upload) (*Envelope, error) {
	log := c.log.Function("PostMultipart")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, log.Err("failed to write form field", err, "field", name)
		}
	}

	for name, upload := range uploads {
		part, err := writer.CreateFormFile(name, upload.Filename)
		if err != nil {
			return nil, log.Err("failed to create file part", err, "field", name)
		}
		if _, err := io.Copy(part, upload.Reader); err != nil {
			return nil, log.Err("failed to copy file part", err, "field", name)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, log.Err("failed to finalize multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(endpoint, nil), &buf)
	if err != nil {
		return nil, log.Err("failed to build multipart request", err, "endpoint", endpoint)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req)
}

func (c *Client) requestURL(endpoint string, params Params) string {
	full := c.baseURL + "/" + endpoint
	if query := EncodeParams(params); query != "" {
		full += "?" + query
	}
	return full
}

func (c *Client) send(req *http.Request) (*Envelope, error) {
	log := c.log.Function("send")

	token := c.token(req.Context())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "")
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Er("request failed", err, "url", req.URL.String())
		return nil, &RequestError{Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, log.Err("failed to read response body", err, "url", req.URL.String())
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if res.StatusCode >= 400 {
			return nil, &RequestError{Status: res.StatusCode, Message: res.Status}
		}
		return nil, log.Err("failed to decode response envelope", err, "url", req.URL.String())
	}

	if res.StatusCode >= 400 {
		reqErr := &RequestError{
			Status:  res.StatusCode,
			Title:   envelope.Meta.Title,
			Message: envelope.Meta.Message,
		}
		if envelope.Meta.Code != 0 {
			reqErr.Status = envelope.Meta.Code
		}
		log.Er("backend returned error", reqErr, "url", req.URL.String(), "status", res.StatusCode)
		return nil, reqErr
	}

	return &envelope, nil
}
