package customer

import (
	"context"
	"net/http"

	"travelease/model"
	"travelease/repository/backend"
)

type Repo interface {
	AdminList(ctx context.Context, token string) ([]model.Customer, error)
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) AdminList(ctx context.Context, token string) ([]model.Customer, error) {
	var rows []backend.Record
	if err := r.c.Do(ctx, http.MethodGet, "admin.customers.list", "/api/admin/customers", token, nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToCustomers(rows), nil
}
