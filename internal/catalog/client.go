// Package catalog is the HTTP client for the remote product API. The
// storefront only consumes this API; it does not implement it.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker/v2"
)

var ErrNotFound = errors.New("product not found")

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Client wraps the product API. Read paths run behind a circuit breaker so
// a dead catalog server fails fast instead of stalling every page load;
// failures surface as plain string messages for the consuming view.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid catalog base url %q: %v", baseURL, err))
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name: "catalog",
			// A missing product is a valid answer, not a server failure
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound)
			},
		}),
	}
}

// List fetches the full product catalog.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, "/products", nil)
	})
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// GetByID fetches a single product. Unknown ids map to ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id string) (*Product, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, "/products/"+id, nil)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return &p, nil
}

// Create adds a product through the admin surface. Ids are allocated as
// zero-padded three-digit strings from the current maximum, the scheme the
// catalog has always used.
func (c *Client) Create(ctx context.Context, p Product) (*Product, error) {
	existing, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, e := range existing {
		if n, err := strconv.Atoi(e.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	p.ID = fmt.Sprintf("%03d", maxID+1)

	body, err := c.do(ctx, http.MethodPost, "/products", p)
	if err != nil {
		return nil, err
	}

	var created Product
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}
	return &created, nil
}

// Update replaces the product with the same id.
func (c *Client) Update(ctx context.Context, p Product) (*Product, error) {
	body, err := c.do(ctx, http.MethodPut, "/products/"+p.ID, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p.ID)
		}
		return nil, err
	}

	var updated Product
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated product: %w", err)
	}
	return &updated, nil
}

// Delete removes a product by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+id, nil)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot reach catalog server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("catalog server error: %d - %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return body, nil
}
