package order

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"travelease/model"
	"travelease/repository/backend"
)

type Repo interface {
	Create(ctx context.Context, req model.CreateOrderReq) (*model.Order, error)
	ByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	MyOrders(ctx context.Context, username string) ([]model.Order, error)

	AdminList(ctx context.Context, token string) ([]model.Order, error)
	AdminUpdate(ctx context.Context, token string, o model.Order) error
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) Create(ctx context.Context, req model.CreateOrderReq) (*model.Order, error) {
	var row backend.Record
	if err := r.c.Do(ctx, http.MethodPost, "orders.create", "/api/orders", "", req, &row); err != nil {
		return nil, err
	}
	o := backend.ToOrder(row)
	return &o, nil
}

func (r *repo) ByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var row backend.Record
	path := "/api/orders/" + url.PathEscape(orderID)
	if err := r.c.Do(ctx, http.MethodGet, "orders.get", path, "", nil, &row); err != nil {
		return nil, err
	}
	o := backend.ToOrder(row)
	return &o, nil
}

func (r *repo) MyOrders(ctx context.Context, username string) ([]model.Order, error) {
	var rows []backend.Record
	path := "/api/orders/my-orders?username=" + url.QueryEscape(username)
	if err := r.c.Do(ctx, http.MethodGet, "orders.mine", path, "", nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToOrders(rows), nil
}

func (r *repo) AdminList(ctx context.Context, token string) ([]model.Order, error) {
	var rows []backend.Record
	if err := r.c.Do(ctx, http.MethodGet, "admin.orders.list", "/api/admin/orders", token, nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToOrders(rows), nil
}

func (r *repo) AdminUpdate(ctx context.Context, token string, o model.Order) error {
	path := "/api/admin/orders/" + strconv.FormatInt(o.ID, 10)
	return r.c.Do(ctx, http.MethodPut, "admin.orders.update", path, token, backend.ToOrderWire(o), nil)
}
