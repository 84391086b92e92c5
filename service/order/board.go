package order

import (
	"strings"
	"sync"

	"travelease/model"
)

// Board is the admin view of all orders. Status edits are applied to it
// before the backend confirms them and rolled back if the backend refuses.
type Board struct {
	mu     sync.RWMutex
	orders []model.Order
}

// Replace swaps in a freshly fetched list.
func (b *Board) Replace(orders []model.Order) {
	cp := make([]model.Order, len(orders))
	copy(cp, orders)
	b.mu.Lock()
	b.orders = cp
	b.mu.Unlock()
}

func (b *Board) Snapshot() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Board) Find(id int64) (model.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// SetStatus applies status to order id. It returns the updated row and the
// status it replaced.
func (b *Board) SetStatus(id int64, status model.OrderStatus) (updated model.Order, prev model.OrderStatus, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			prev = b.orders[i].OrderStatus
			b.orders[i].OrderStatus = status
			return b.orders[i], prev, true
		}
	}
	return model.Order{}, "", false
}

// RestoreStatus puts prev back on order id, unless a reload has already
// moved the row off applied.
func (b *Board) RestoreStatus(id int64, applied, prev model.OrderStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id && b.orders[i].OrderStatus == applied {
			b.orders[i].OrderStatus = prev
			return true
		}
	}
	return false
}

// Search matches order id, vehicle name and username case-insensitively,
// and mobile number as typed.
func Search(orders []model.Order, query string) []model.Order {
	q := strings.TrimSpace(query)
	if q == "" {
		return orders
	}
	lq := strings.ToLower(q)
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.OrderID), lq) ||
			strings.Contains(strings.ToLower(o.VehicleName), lq) ||
			strings.Contains(strings.ToLower(o.Username), lq) ||
			strings.Contains(o.MobileNumber, q) {
			out = append(out, o)
		}
	}
	return out
}
