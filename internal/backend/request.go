package backend

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/spigell/resume-parser/internal/logger"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	maxLogBody      = 200
)

// FormFile is a file part of a multipart request.
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// postMultipart sends fields and files as multipart/form-data and returns the raw response.
// The caller owns the response body.
func (c *Client) postMultipart(ctx context.Context, url string, fields map[string]string, files ...FormFile) (*http.Response, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.Name)))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}

		if _, err = part.Write(f.Data); err != nil {
			return nil, err
		}
	}

	for key, val := range fields {
		field, err := w.CreateFormField(key)
		if err != nil {
			return nil, err
		}

		_, err = io.Copy(field, strings.NewReader(val))
		if err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.request(req)
}

// get makes a body-less GET request asking for JSON. The caller owns the response body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Accept", contentType)

	return c.request(req)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	log := logger.WithFields(c.logger, logger.EndpointFields(req.Method, req.URL.Path)...)
	log.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	log.Debug("got response", zap.Int("status", resp.StatusCode))

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// readBody drains the response body, transparently handling gzip encoding.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("response body",
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(data)),
		zap.String("preview", logger.TruncateForLog(string(data), maxLogBody)),
	)

	return data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
