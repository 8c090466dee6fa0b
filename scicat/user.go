// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"net/http"
	"net/url"
)

// User is a catalog user account.
type User struct {
	ID            string `json:"id,omitempty"`
	Realm         string `json:"realm,omitempty"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// GetCurrentUser retrieves the account the session token belongs to,
// using the user id returned by the login exchange. It is unavailable
// on clients constructed with a preset token, which never learn their
// user id.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	if c.UserID == "" {
		return nil, &AuthenticationError{Op: "get current user", Message: "no user id: log in first"}
	}
	var u User
	err := c.RequestAndDecode(ctx, &u, http.MethodGet, "Users/"+url.PathEscape(c.UserID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
