package motiontag

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adiazny/motiontag-days/internal/pkg/tracking"
)

const (
	DefaultBaseURL = "https://api.motion-tag.de/api"

	// DefaultUserAgent is the mobile app identity the API expects. Requests
	// without it are rejected.
	DefaultUserAgent = "MotionTag Android, device: Samsung SM-G991B, os_version: 11, app_version: 3.38.80, flavor: motiontag"

	DefaultTimeout = 30 * time.Second

	tokenEndpoint = "token"
	daysEndpoint  = "days"

	userAgentHeaderKey     = "User-Agent"
	authorizationHeaderKey = "Authorization"
	contentTypeHeaderKey   = "Content-Type"
	jsonContentType        = "application/json"
	bearerPrefix           = "Bearer "
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the immutable connection configuration shared by every request of a run.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return cfg
}

func (cfg Config) endpoint(name string) string {
	return strings.TrimSuffix(cfg.BaseURL, "/") + "/" + name
}

type Credentials struct {
	Username string
	Password string
}

func (creds Credentials) complete() bool {
	return creds.Username != "" && creds.Password != ""
}

type Option func(*settings)

type settings struct {
	http HTTPClient
	log  *logrus.Entry
}

// WithHTTPClient replaces the default *http.Client, whose timeout comes from Config.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(s *settings) {
		s.http = httpClient
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *settings) {
		s.log = log
	}
}

func newSettings(cfg Config, opts []Option) settings {
	s := settings{}

	for _, opt := range opts {
		opt(&s)
	}

	if s.http == nil {
		s.http = &http.Client{Timeout: cfg.Timeout}
	}

	if s.log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		s.log = logrus.NewEntry(logger)
	}

	s.log = s.log.WithField("component", "motiontag")

	return s
}

// Client is an authenticated MotionTag API client. It is fully configured by
// NewClient and never changes afterwards.
type Client struct {
	log     *logrus.Entry
	config  Config
	http    HTTPClient
	headers http.Header
}

// NewClient configures a client that authenticates every request with token.
// It does not contact the server.
func NewClient(cfg Config, token string, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()

	if token == "" {
		return nil, &ConfigError{Message: "token is empty"}
	}

	authorization := token
	if !strings.HasPrefix(authorization, bearerPrefix) {
		authorization = bearerPrefix + token
	}

	if !validHeaderValue(authorization) {
		return nil, &ConfigError{Message: "token contains characters not allowed in an HTTP header"}
	}

	if !validHeaderValue(cfg.UserAgent) {
		return nil, &ConfigError{Message: "user agent contains characters not allowed in an HTTP header"}
	}

	s := newSettings(cfg, opts)

	headers := http.Header{}
	headers.Set(userAgentHeaderKey, cfg.UserAgent)
	headers.Set(authorizationHeaderKey, authorization)

	return &Client{
		log:     s.log,
		config:  cfg,
		http:    s.http,
		headers: headers,
	}, nil
}

func (client *Client) BaseURL() string {
	return client.config.BaseURL
}

// GetDays lists the dates of all recorded days in the order the server returns them.
func (client *Client) GetDays(ctx context.Context) ([]string, error) {
	apiEndpoint := client.config.endpoint(daysEndpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiEndpoint, nil)
	if err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("error creating http request %v", err)}
	}

	for key, values := range client.headers {
		req.Header[key] = append([]string(nil), values...)
	}

	client.log.WithField("url", apiEndpoint).Debug("listing days")

	resp, err := client.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: apiEndpoint, Err: err}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: apiEndpoint, Err: err}
	}

	if !successful(resp.StatusCode) {
		client.log.WithField("status", resp.StatusCode).Debug("days request rejected")
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	daysResponse := &tracking.DaysResponse{}

	err = json.Unmarshal(body, daysResponse)
	if err != nil {
		return nil, &ProtocolError{Message: "error unmarshalling days response body", Err: err}
	}

	if daysResponse.Days == nil {
		return nil, &ProtocolError{Message: "days response body has no days array"}
	}

	dates := daysResponse.Dates()

	client.log.WithField("days", len(dates)).Debug("listed days")

	return dates, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body %w", err)
	}

	return body, nil
}

func successful(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// validHeaderValue rejects control characters other than horizontal tab.
func validHeaderValue(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < ' ' && c != '\t') || c == 0x7f {
			return false
		}
	}

	return true
}
