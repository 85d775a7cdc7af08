package client

import (
	"context"
	"fmt"

	"github.com/KartikZCoding/campusgate/internal/api"
	"github.com/KartikZCoding/campusgate/internal/service"
)

// Login exchanges policy + credentials for a bearer token.
func (c *Client) Login(ctx context.Context, policy, username, password string) (*service.LoginResponse, string, error) {
	payload := service.LoginRequest{
		Policy:   policy,
		Username: username,
		Password: password,
	}

	var result service.LoginResponse
	correlationID, err := c.post(ctx, api.LoginRoute, payload, &result)
	if err != nil {
		return nil, correlationID, fmt.Errorf("login: %w", err)
	}
	return &result, correlationID, nil
}
