// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package doccenter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// authRequest is the session-creation body. The service expects the
// user name qualified by the host domain.
type authRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// authResponse is the session-creation reply.
type authResponse struct {
	AdditionalInfo string `json:"AdditionalInfo"`
	Success        bool   `json:"Success"`
	APIKey         string `json:"APIKey"`
	UserID         int    `json:"UserId"`
	Message        string `json:"Message"`
}

// Authenticate creates a session against the authenticate endpoint and
// stores the issued user key on the client. Subsequent requests send it
// as the userapikey header.
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	body, err := json.Marshal(authRequest{
		Username: fmt.Sprintf("%s@%s", c.creds.Username, c.creds.Host),
		Password: c.creds.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling auth request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.endpoints.Authenticate, body)
	if err != nil {
		return nil, fmt.Errorf("authenticate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("authenticate", resp)
	}

	var ar authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("parsing auth response: %w", err)
	}
	if !ar.Success || ar.APIKey == "" {
		return nil, fmt.Errorf("authentication rejected: %s", ar.Message)
	}

	c.session = &Session{UserKey: ar.APIKey, UserID: ar.UserID}
	return c.session, nil
}
