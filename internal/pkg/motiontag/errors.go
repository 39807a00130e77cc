package motiontag

import "fmt"

// ErrMissingCredentials is returned by Login when neither a token nor a full
// username/password pair is given.
var ErrMissingCredentials = &ConfigError{Message: "Username and password is missing."}

// ConfigError reports invalid caller input. No request has been sent when it is returned.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// TransportError wraps a failure to complete an HTTP round-trip.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error performing %s %s request: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError is a non-2xx answer from the token endpoint.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("Failed to retrieve token. Response code: %d", e.StatusCode)
}

// APIError is a non-2xx answer from the days endpoint.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Failed to retrieve days. Response code: %d", e.StatusCode)
}

// ProtocolError is a 2xx answer whose body does not have the expected shape.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
