package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// Upload is the payload of the feature extraction step.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
	// Requirements is sent verbatim. Splitting is done by the backend.
	Requirements string
}

// ExtractFeatures posts the resume and the requirements text to the backend.
// Any 2xx status counts as success and the response body is discarded.
func (c *Client) ExtractFeatures(ctx context.Context, upload Upload) error {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = pdfContentType
	}

	url := fmt.Sprintf("%s%s", c.BaseURL, extractFeaturesPath)

	resp, err := c.postMultipart(ctx, url,
		map[string]string{"requirements": upload.Requirements},
		FormFile{
			Field:       "file",
			Name:        upload.FileName,
			ContentType: contentType,
			Data:        upload.Data,
		},
	)
	if err != nil {
		return err
	}

	// The body is drained only to allow connection reuse.
	if _, err := c.readBody(resp); err != nil {
		c.logger.Debug("draining extract-features response", zap.Error(err))
	}

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug("feature extraction rejected", zap.String("status", resp.Status))
		return ErrExtraction
	}

	c.logger.Info("resume uploaded",
		zap.String("file", upload.FileName),
		zap.Int("size", len(upload.Data)),
	)

	return nil
}
