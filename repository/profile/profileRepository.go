package profile

import (
	"context"
	"net/http"
	"net/url"

	"travelease/model"
	"travelease/repository/backend"
)

type Repo interface {
	Get(ctx context.Context, username string) (*model.Profile, error)
	Save(ctx context.Context, p model.Profile) error
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) Get(ctx context.Context, username string) (*model.Profile, error) {
	var row backend.Record
	path := "/api/user-profile/" + url.PathEscape(username)
	if err := r.c.Do(ctx, http.MethodGet, "profile.get", path, "", nil, &row); err != nil {
		return nil, err
	}
	p := backend.ToProfile(row)
	return &p, nil
}

func (r *repo) Save(ctx context.Context, p model.Profile) error {
	return r.c.Do(ctx, http.MethodPost, "profile.save", "/api/user-profile", "", p, nil)
}
