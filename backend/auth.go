package backend

import (
	"context"
	"net/http"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
)

// Login exchanges credentials for the account. Wrong credentials are a decline carrying the backend's message.
func (c *Client) Login(ctx context.Context, username, password string) outcome.Outcome[model.User] {
	return send[model.User](ctx, c, call{
		op:     "login",
		method: http.MethodPost,
		path:   "auth/login.php",
		body:   model.LoginRequest{Username: username, Password: password},
	})
}

// Register creates an account. Validation failures are a decline with one entry per field in Errors.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) outcome.Outcome[model.User] {
	return send[model.User](ctx, c, call{
		op:     "register",
		method: http.MethodPost,
		path:   "auth/register.php",
		body:   req,
	})
}
