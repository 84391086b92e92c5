package model

type OrderStatus string

const (
	StatusBookingConfirmed OrderStatus = "BOOKING_CONFIRMED"
	StatusVehiclePrepared  OrderStatus = "VEHICLE_PREPARED"
	StatusOnTheWay         OrderStatus = "ON_THE_WAY"
	StatusDelivered        OrderStatus = "DELIVERED"
)

// OrderStatuses lists the lifecycle in order. Admin selectors offer exactly these.
var OrderStatuses = []OrderStatus{
	StatusBookingConfirmed,
	StatusVehiclePrepared,
	StatusOnTheWay,
	StatusDelivered,
}

var statusLabels = map[OrderStatus]string{
	StatusBookingConfirmed: "Booking Confirmed",
	StatusVehiclePrepared:  "Vehicle Prepared",
	StatusOnTheWay:         "On The Way",
	StatusDelivered:        "Delivered",
}

// Ordinal is 1..4 for known states and 0 for anything else.
func (s OrderStatus) Ordinal() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i + 1
		}
	}
	return 0
}

// Label falls back to the raw value for unknown states.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s OrderStatus) Known() bool { return s.Ordinal() > 0 }

// Progress is the tracking bar fill in percent: (ordinal-1)/3*100, floored at 0.
func (s OrderStatus) Progress() float64 {
	n := s.Ordinal()
	if n <= 1 {
		return 0
	}
	return float64(n-1) / float64(len(OrderStatuses)-1) * 100
}

type StatusStep struct {
	Status  OrderStatus `json:"status"`
	Label   string      `json:"label"`
	Reached bool        `json:"reached"`
}

// Steps renders the four-step progress indicator for s.
func (s OrderStatus) Steps() []StatusStep {
	n := s.Ordinal()
	out := make([]StatusStep, len(OrderStatuses))
	for i, st := range OrderStatuses {
		out[i] = StatusStep{Status: st, Label: st.Label(), Reached: n >= i+1}
	}
	return out
}

// StatusOption is one entry of the admin status selector.
type StatusOption struct {
	Value OrderStatus `json:"value"`
	Label string      `json:"label"`
}

func StatusOptions() []StatusOption {
	out := make([]StatusOption, len(OrderStatuses))
	for i, st := range OrderStatuses {
		out[i] = StatusOption{Value: st, Label: st.Label()}
	}
	return out
}
