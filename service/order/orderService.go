package order

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"travelease/model"
	"travelease/repository/backend"
	orderrepo "travelease/repository/order"
	"travelease/util/eventbus"
)

type Service interface {
	Track(ctx context.Context, orderID string) (*model.OrderView, error)
	// MyOrders lists a customer's orders, latest booking first.
	MyOrders(ctx context.Context, username string) ([]model.OrderView, error)
	AdminOrders(ctx context.Context, token, query string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, token string, id int64, status model.OrderStatus) (*model.Order, error)

	// WatchOrder pushes the tracked order every tracking interval and right
	// after any change to it. Stop the watch when the viewer leaves.
	WatchOrder(ctx context.Context, orderID string, fn func(model.OrderView)) *Watch
	WatchMine(ctx context.Context, username string, fn func([]model.OrderView)) *Watch
}

type Deps struct {
	Repo          orderrepo.Repo
	Bus           *eventbus.Bus[model.OrdersUpdated]
	TrackInterval time.Duration
	MineInterval  time.Duration
	Log           *slog.Logger
}

type service struct {
	Deps
	board Board
}

func New(d Deps) Service {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.TrackInterval <= 0 {
		d.TrackInterval = 10 * time.Second
	}
	if d.MineInterval <= 0 {
		d.MineInterval = 15 * time.Second
	}
	if d.Bus == nil {
		d.Bus = eventbus.New[model.OrdersUpdated](d.Log)
	}
	return &service{Deps: d}
}

func (s *service) Track(ctx context.Context, orderID string) (*model.OrderView, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, makeErr(ErrBadInput, MsgNoOrderID)
	}
	o, err := s.Repo.ByOrderID(ctx, orderID)
	if err != nil {
		if backend.Status(err) == http.StatusNotFound {
			return nil, makeErr(ErrNotFound, MsgNotFound)
		}
		s.Log.Warn("track order failed", "order_id", orderID, "err", err)
		return nil, makeErr(ErrBackend, MsgTrackFailed)
	}
	v := model.NewOrderView(*o)
	return &v, nil
}

func (s *service) MyOrders(ctx context.Context, username string) ([]model.OrderView, error) {
	if username == "" {
		return nil, makeErr(ErrBadInput, "Please sign in to see your bookings.")
	}
	orders, err := s.Repo.MyOrders(ctx, username)
	if err != nil {
		s.Log.Warn("my orders failed", "username", username, "err", err)
		return nil, makeErr(ErrBackend, MsgLoadFailed)
	}
	sorted := model.SortByLatest(orders)
	out := make([]model.OrderView, len(sorted))
	for i, o := range sorted {
		out[i] = model.NewOrderView(o)
	}
	return out, nil
}

func (s *service) AdminOrders(ctx context.Context, token, query string) ([]model.Order, error) {
	orders, err := s.Repo.AdminList(ctx, token)
	if err != nil {
		s.Log.Warn("admin orders failed", "err", err)
		return nil, makeErr(ErrBackend, MsgLoadFailed)
	}
	s.board.Replace(orders)
	return Search(s.board.Snapshot(), query), nil
}

func (s *service) UpdateStatus(ctx context.Context, token string, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Known() {
		return nil, makeErr(ErrBadInput, MsgBadStatus)
	}
	if _, ok := s.board.Find(id); !ok {
		if _, err := s.AdminOrders(ctx, token, ""); err != nil {
			return nil, err
		}
	}
	o, prev, ok := s.board.SetStatus(id, status)
	if !ok {
		return nil, makeErr(ErrNotFound, "Order not found.")
	}

	if err := s.Repo.AdminUpdate(ctx, token, o); err != nil {
		s.board.RestoreStatus(id, status, prev)
		s.Log.Warn("order status update failed", "id", id, "status", status, "err", err)
		return nil, makeErr(ErrUpdateFailed, MsgUpdateFailed)
	}

	s.Bus.Publish(ctx, model.OrdersUpdated{OrderID: o.OrderID, Username: o.Username, Status: status})
	if _, err := s.AdminOrders(ctx, token, ""); err != nil {
		s.Log.Warn("board reload failed", "err", err)
	}
	return &o, nil
}
