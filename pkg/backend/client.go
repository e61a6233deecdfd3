package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/pkg/pricing"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

const maxResponseBytes = 1 << 20

// Client calls the backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request made by the client. It works on a copy,
// so a client passed to WithHTTPClient is left untouched; apply it last.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// NewClient returns a client for the backend rooted at baseURL,
// e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context) ([]pricing.RawProduct, error) {
	var products []pricing.RawProduct
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	var resp struct {
		User Customer `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/customers/create", req, &resp); err != nil {
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return resp.User, nil
}

func (c *Client) CustomerDetails(ctx context.Context, id string) (CustomerDetails, error) {
	if id == "" {
		return CustomerDetails{}, ErrMissingID
	}
	var details CustomerDetails
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id)+"/details", nil, &details); err != nil {
		return CustomerDetails{}, fmt.Errorf("customer details: %w", err)
	}
	return details, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSessionResponse, error) {
	var resp CheckoutSessionResponse
	if err := c.do(ctx, http.MethodPost, "/checkout-session", req, &resp); err != nil {
		return CheckoutSessionResponse{}, fmt.Errorf("create checkout session: %w", err)
	}
	return resp, nil
}

func (c *Client) CheckoutSession(ctx context.Context, sessionID string) (SessionDetails, error) {
	if sessionID == "" {
		return SessionDetails{}, ErrMissingID
	}
	var details SessionDetails
	if err := c.do(ctx, http.MethodGet, "/checkout-session/"+url.PathEscape(sessionID), nil, &details); err != nil {
		return SessionDetails{}, fmt.Errorf("checkout session: %w", err)
	}
	return details, nil
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if subscriptionID == "" {
		return ErrMissingID
	}
	if err := c.do(ctx, http.MethodPost, "/subscriptions/"+url.PathEscape(subscriptionID)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	return nil
}

// do sends a JSON request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Join(ErrUnexpectedResponse, err)
	}
	return nil
}

// errorMessage extracts the "error" field from a JSON error body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}
