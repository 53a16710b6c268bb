package backend

import (
	"net/http"
	"strings"
	"time"

	"github.com/spigell/resume-parser/internal/logger"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the origin of a locally running analysis backend.
	DefaultBaseURL = "http://localhost:8000"
	userAgent      = "spigell/resume-parser"

	extractFeaturesPath = "/extract-features"
	nlpModulePath       = "/nlp-module"
)

// Client talks to the resume analysis backend.
type Client struct {
	logger     *zap.Logger
	token      string
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	// Timeout bounds every request. Zero means no timeout.
	Timeout time.Duration
}

func New(log *zap.Logger, opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = userAgent
	}

	return &Client{
		logger:  logger.WithFields(log, zap.String(logger.FieldBaseURL, baseURL)),
		token:   strings.TrimSpace(opts.Token),
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: opts.Timeout,
		},
		UserAgent: ua,
	}
}
