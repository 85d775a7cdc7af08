package client

import (
	"net/http"
	"strings"
	"time"
)

// Client is a small HTTP client for the Campusgate API.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

type Option func(*Client)

// WithAuthToken sets a bearer token sent on every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}
