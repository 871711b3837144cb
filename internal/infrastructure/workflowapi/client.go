// Package workflowapi is the read-only client for the remote workflow REST
// API that owns all invoice, project, payment and profile records. The core
// never calls the network itself; the application layer uses this client to
// assemble snapshots and hands the resulting raw records to the domain.
package workflowapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reelworks/backend/internal/domain/shared/rawrecord"
	"github.com/reelworks/backend/internal/infrastructure/config"
)

// Client talks to the workflow API. Base URL and bearer token are fixed at
// construction; nothing is read from global state during a request.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a workflow API client from configuration.
func NewClient(cfg config.WorkflowAPIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// ListInvoices fetches the current user's invoices.
func (c *Client) ListInvoices(ctx context.Context) ([]rawrecord.Record, error) {
	return c.getList(ctx, "/api/invoices", nil)
}

// ListInvoiceItems fetches the line items of one invoice.
func (c *Client) ListInvoiceItems(ctx context.Context, invoiceID string) ([]rawrecord.Record, error) {
	return c.getList(ctx, "/api/invoice-items", url.Values{"invoice_id": {invoiceID}})
}

// ListProjects fetches the projects owned by the current user.
func (c *Client) ListProjects(ctx context.Context) ([]rawrecord.Record, error) {
	return c.getList(ctx, "/api/projects", nil)
}

// ListSharedProjects fetches the projects shared with the current user.
func (c *Client) ListSharedProjects(ctx context.Context) ([]rawrecord.Record, error) {
	return c.getList(ctx, "/api/projects/shared", nil)
}

// ListPayments fetches the current user's billing-history payments.
func (c *Client) ListPayments(ctx context.Context) ([]rawrecord.Record, error) {
	return c.getList(ctx, "/api/payments", nil)
}

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (rawrecord.Record, error) {
	var out map[string]any
	if err := c.get(ctx, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return rawrecord.Record(out), nil
}

func (c *Client) getList(ctx context.Context, path string, query url.Values) ([]rawrecord.Record, error) {
	var out []map[string]any
	if err := c.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	records := make([]rawrecord.Record, len(out))
	for i, m := range out {
		records[i] = rawrecord.Record(m)
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
