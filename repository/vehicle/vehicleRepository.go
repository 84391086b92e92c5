package vehicle

import (
	"context"
	"net/http"
	"net/url"

	"travelease/model"
	"travelease/repository/backend"
)

type Repo interface {
	List(ctx context.Context) ([]model.Vehicle, error)

	AdminList(ctx context.Context, token string) ([]model.Vehicle, error)
	Create(ctx context.Context, token string, in model.VehicleInput) (*model.Vehicle, error)
	Update(ctx context.Context, token, id string, in model.VehicleInput) (*model.Vehicle, error)
	Delete(ctx context.Context, token, id string) error
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) List(ctx context.Context) ([]model.Vehicle, error) {
	var rows []backend.Record
	if err := r.c.Do(ctx, http.MethodGet, "vehicles.list", "/api/vehicles", "", nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToVehicles(rows), nil
}

func (r *repo) AdminList(ctx context.Context, token string) ([]model.Vehicle, error) {
	var rows []backend.Record
	if err := r.c.Do(ctx, http.MethodGet, "admin.vehicles.list", "/api/admin/vehicles", token, nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToVehicles(rows), nil
}

func (r *repo) Create(ctx context.Context, token string, in model.VehicleInput) (*model.Vehicle, error) {
	var row backend.Record
	if err := r.c.Do(ctx, http.MethodPost, "admin.vehicles.create", "/api/admin/vehicles", token, in, &row); err != nil {
		return nil, err
	}
	v := backend.ToVehicle(row)
	return &v, nil
}

func (r *repo) Update(ctx context.Context, token, id string, in model.VehicleInput) (*model.Vehicle, error) {
	var row backend.Record
	path := "/api/admin/vehicles/" + url.PathEscape(id)
	if err := r.c.Do(ctx, http.MethodPut, "admin.vehicles.update", path, token, in, &row); err != nil {
		return nil, err
	}
	v := backend.ToVehicle(row)
	return &v, nil
}

func (r *repo) Delete(ctx context.Context, token, id string) error {
	path := "/api/admin/vehicles/" + url.PathEscape(id)
	return r.c.Do(ctx, http.MethodDelete, "admin.vehicles.delete", path, token, nil, nil)
}
