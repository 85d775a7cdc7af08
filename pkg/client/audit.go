package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/KartikZCoding/campusgate/internal/api"
	"github.com/KartikZCoding/campusgate/internal/core"
)

// ListAuditsOptions filters the audit entries returned by the server.
type ListAuditsOptions struct {
	Limit         int
	CorrelationID string
	Username      string
	Fingerprint   string
}

// ListAudits retrieves recent audit log entries. Requires an admin token.
func (c *Client) ListAudits(ctx context.Context, opts ListAuditsOptions) ([]core.AuditEntry, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.CorrelationID != "" {
		q.Set("correlation_id", opts.CorrelationID)
	}
	if opts.Username != "" {
		q.Set("username", opts.Username)
	}
	if opts.Fingerprint != "" {
		q.Set("fingerprint", opts.Fingerprint)
	}

	path := api.ListAuditsRoute
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var entries []core.AuditEntry
	if _, err := c.get(ctx, path, &entries); err != nil {
		return nil, fmt.Errorf("listing audits: %w", err)
	}
	return entries, nil
}
