package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a whole exchange; when it elapses the call fails
// with ErrNetwork.
const DefaultTimeout = 10 * time.Second

// Transport sends a decorated request. An error means no response was
// received at all; any HTTP status is returned as a Response.
type Transport interface {
	Send(ctx context.Context, req *RequestDescriptor) (*Response, error)
}

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport joins relative request URLs onto baseURL. A non-positive
// timeout means DefaultTimeout.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// MultipartBody is a request body sent as multipart/form-data with a single
// file part.
type MultipartBody struct {
	FieldName string
	FileName  string
	Content   io.Reader
	Fields    map[string]string
}

func (t *HTTPTransport) Send(ctx context.Context, req *RequestDescriptor) (*Response, error) {
	target, err := t.resolve(req.URL, req.Query)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if contentType != "" {
		// multipart needs the generated boundary, whatever the caller set
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

func (t *HTTPTransport) resolve(target string, query url.Values) (string, error) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = t.baseURL + "/" + strings.TrimLeft(target, "/")
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", target, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// encodeBody returns the request body and, for multipart bodies, the
// content type carrying the boundary.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return b, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case *MultipartBody:
		return encodeMultipart(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "", nil
	}
}

func encodeMultipart(b *MultipartBody) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range b.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	field := b.FieldName
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, b.FileName)
	if err != nil {
		return nil, "", err
	}
	if b.Content != nil {
		if _, err := io.Copy(part, b.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
