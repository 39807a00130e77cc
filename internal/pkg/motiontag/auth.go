package motiontag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adiazny/motiontag-days/internal/pkg/tracking"
)

// GetToken exchanges credentials for a bearer token with a password grant.
func GetToken(ctx context.Context, cfg Config, creds Credentials, opts ...Option) (string, error) {
	cfg = cfg.withDefaults()
	s := newSettings(cfg, opts)

	if !validHeaderValue(cfg.UserAgent) {
		return "", &ConfigError{Message: "user agent contains characters not allowed in an HTTP header"}
	}

	payload, err := json.Marshal(tracking.TokenRequest{
		GrantType: tracking.GrantTypePassword,
		Username:  creds.Username,
		Password:  creds.Password,
	})
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("error encoding token request %v", err)}
	}

	apiEndpoint := cfg.endpoint(tokenEndpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("error creating http request %v", err)}
	}

	req.Header.Set(contentTypeHeaderKey, jsonContentType)
	req.Header.Set(userAgentHeaderKey, cfg.UserAgent)

	s.log.WithField("url", apiEndpoint).Debug("requesting token")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", &TransportError{Method: req.Method, URL: apiEndpoint, Err: err}
	}

	body, err := readBody(resp)
	if err != nil {
		return "", &TransportError{Method: req.Method, URL: apiEndpoint, Err: err}
	}

	if !successful(resp.StatusCode) {
		s.log.WithField("status", resp.StatusCode).Debug("token request rejected")
		return "", &AuthError{StatusCode: resp.StatusCode}
	}

	tokenResponse := &tracking.TokenResponse{}

	err = json.Unmarshal(body, tokenResponse)
	if err != nil {
		return "", &ProtocolError{Message: "error unmarshalling token response body", Err: err}
	}

	if tokenResponse.AccessToken == nil || *tokenResponse.AccessToken == "" {
		return "", &ProtocolError{Message: "token response body has no access_token"}
	}

	return *tokenResponse.AccessToken, nil
}

// Login resolves the token for a run and returns a configured client. An
// explicit token wins and no token request is sent. Otherwise both
// credentials must be present.
func Login(ctx context.Context, cfg Config, token string, creds Credentials, opts ...Option) (*Client, error) {
	if token == "" {
		if !creds.complete() {
			return nil, ErrMissingCredentials
		}

		var err error

		token, err = GetToken(ctx, cfg, creds, opts...)
		if err != nil {
			return nil, err
		}
	}

	return NewClient(cfg, token, opts...)
}
