// Package client provides an HTTP client for the real-estate property API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/realstate-api/internal/apperr"
	"github.com/evcraddock/realstate-api/internal/image"
	"github.com/evcraddock/realstate-api/internal/property"
)

const basePath = "/api/v1/property"

// Client is an HTTP client for the property API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"error"`
	Details []apperr.FieldError `json:"details"`
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// CreateProperty creates a property.
func (c *Client) CreateProperty(in property.Create) (*property.Property, error) {
	var p property.Property
	if err := c.send("POST", basePath+"/create-property/", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProperty returns a property by id.
func (c *Client) GetProperty(id string) (*property.Property, error) {
	var p property.Property
	if err := c.send("GET", basePath+"/properties/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePrice sets a new price on a property.
func (c *Client) ChangePrice(id string, price float64) (*property.Property, error) {
	q := url.Values{"price_in": {strconv.FormatFloat(price, 'f', -1, 64)}}
	path := basePath + "/change-price/" + url.PathEscape(id) + "?" + q.Encode()

	var p property.Property
	if err := c.send("PUT", path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UploadImage uploads the contents of r as an image of the property.
func (c *Client) UploadImage(id, filename string, r io.Reader) (*image.PropertyImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("creating form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	path := basePath + "/properties/" + url.PathEscape(id) + "/upload-image/"
	req, err := http.NewRequest("POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var img image.PropertyImage
	if err := c.do(req, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// Health reports whether the server and its store are up.
func (c *Client) Health() error {
	return c.send("GET", "/health", nil, nil)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = "server error: " + http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
