package auth

import (
	"context"
	"net/http"

	"travelease/repository/backend"
)

// SignInResp is what the backend returns for valid credentials.
type SignInResp struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type Repo interface {
	SignIn(ctx context.Context, username, password string) (*SignInResp, error)
	SignUp(ctx context.Context, username, email, password string) error
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) SignIn(ctx context.Context, username, password string) (*SignInResp, error) {
	var out SignInResp
	err := r.c.Do(ctx, http.MethodPost, "auth.signin", "/api/auth/signin", "",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) SignUp(ctx context.Context, username, email, password string) error {
	return r.c.Do(ctx, http.MethodPost, "auth.signup", "/api/auth/signup", "",
		map[string]string{"username": username, "email": email, "password": password}, nil)
}
