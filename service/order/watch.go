package order

import (
	"context"

	"travelease/model"
	"travelease/util/refresh"
)

// Watch is a running refresh loop bound to one viewer.
type Watch struct {
	cancel context.CancelFunc
	unsub  func()
	done   chan struct{}
}

// Stop cancels the refresh loop, drops the bus subscription and waits for
// the loop to exit. Safe to call more than once.
func (w *Watch) Stop() {
	w.unsub()
	w.cancel()
	<-w.done
}

func (s *service) start(ctx context.Context, r *refresh.Refresher, match func(model.OrdersUpdated) bool) *Watch {
	ctx, cancel := context.WithCancel(ctx)
	w := &Watch{cancel: cancel, done: make(chan struct{})}
	w.unsub = s.Bus.Subscribe(func(ev model.OrdersUpdated) {
		if match(ev) {
			r.Trigger()
		}
	})
	go func() {
		defer close(w.done)
		r.Run(ctx)
	}()
	return w
}

func (s *service) WatchOrder(ctx context.Context, orderID string, fn func(model.OrderView)) *Watch {
	r := refresh.New("tracking", s.TrackInterval, func(ctx context.Context) error {
		v, err := s.Track(ctx, orderID)
		if err != nil {
			return err
		}
		fn(*v)
		return nil
	}, s.Log)
	return s.start(ctx, r, func(ev model.OrdersUpdated) bool {
		return ev.OrderID == "" || ev.OrderID == orderID
	})
}

func (s *service) WatchMine(ctx context.Context, username string, fn func([]model.OrderView)) *Watch {
	r := refresh.New("my_bookings", s.MineInterval, func(ctx context.Context) error {
		list, err := s.MyOrders(ctx, username)
		if err != nil {
			return err
		}
		fn(list)
		return nil
	}, s.Log)
	return s.start(ctx, r, func(ev model.OrdersUpdated) bool {
		return ev.Username == "" || ev.Username == username
	})
}
