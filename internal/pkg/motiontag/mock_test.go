package motiontag_test

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

type mockClient struct {
	DoFunc   func(req *http.Request) (*http.Response, error)
	requests []*http.Request
}

func (mc *mockClient) Do(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("error request is nil")
	}

	mc.requests = append(mc.requests, req)

	return mc.DoFunc(req)
}

func newMockClient(doFunc func(req *http.Request) (*http.Response, error)) *mockClient {
	return &mockClient{
		DoFunc: doFunc,
	}
}

func fileResponse(t *testing.T, status int, filePath string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       mustLoadJsonFile(t, filePath),
		}, nil
	}
}

func stringResponse(status int, body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func mustLoadJsonFile(t *testing.T, filePath string) *os.File {
	data, err := os.Open(filePath)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
