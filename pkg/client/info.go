package client

import (
	"context"
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/api"
	"github.com/KartikZCoding/campusgate/internal/buildinfo"
)

// About fetches service information from the server.
func (c *Client) About(ctx context.Context) (*buildinfo.Info, error) {
	var info buildinfo.Info
	if _, err := c.get(ctx, api.AboutRoute, &info); err != nil {
		return nil, fmt.Errorf("fetching server info: %w", err)
	}
	return &info, nil
}
