package model

import (
	"regexp"
	"sort"
	"time"

	"travelease/util/datefmt"
)

type Order struct {
	ID              int64       `json:"id"`
	OrderID         string      `json:"orderId"`
	VehicleName     string      `json:"vehicleName"`
	Username        string      `json:"username"`
	DeliveryAddress string      `json:"address"`
	MobileNumber    string      `json:"mobileNumber"`
	PaymentAmount   float64     `json:"paymentAmount"`
	PaymentStatus   string      `json:"paymentStatus"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	StartDate       string      `json:"startDate"`
	EndDate         string      `json:"endDate"`
	BookingDate     string      `json:"bookingDate"`
	OrderStatus     OrderStatus `json:"orderStatus"`
}

// CreateOrderReq is the payload the backend expects on POST /api/orders.
type CreateOrderReq struct {
	VehicleName   string  `json:"vehicleName"`
	Username      string  `json:"username"`
	Address       string  `json:"address"`
	MobileNumber  string  `json:"mobileNumber"`
	PaymentAmount float64 `json:"paymentAmount"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
}

const PaymentCompleted = "COMPLETED"

// OrderView is an order decorated for the tracking and bookings screens.
type OrderView struct {
	Order
	StatusOrdinal int          `json:"statusOrdinal"`
	StatusLabel   string       `json:"statusLabel"`
	Progress      float64      `json:"progress"`
	Steps         []StatusStep `json:"steps"`

	BookingDateText string `json:"bookingDateText"`
	StartDateText   string `json:"startDateText"`
	EndDateText     string `json:"endDateText"`
}

func NewOrderView(o Order) OrderView {
	return OrderView{
		Order:         o,
		StatusOrdinal: o.OrderStatus.Ordinal(),
		StatusLabel:   o.OrderStatus.Label(),
		Progress:      o.OrderStatus.Progress(),
		Steps:         o.OrderStatus.Steps(),

		BookingDateText: datefmt.DDMMYYYY(o.BookingDate),
		StartDateText:   datefmt.DDMMYYYY(o.StartDate),
		EndDateText:     datefmt.DDMMYYYY(o.EndDate),
	}
}

var (
	isoPrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	dmyPrefix = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)
)

// BookingTime parses BookingDate in ISO or DD/MM/YYYY form. Unparseable
// dates sort as the zero time.
func (o Order) BookingTime() time.Time {
	d := o.BookingDate
	if d == "" {
		return time.Time{}
	}
	if isoPrefix.MatchString(d) {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				return t
			}
		}
		if t, err := time.Parse("2006-01-02", d[:10]); err == nil {
			return t
		}
		return time.Time{}
	}
	if m := dmyPrefix.FindStringSubmatch(d); m != nil {
		if t, err := time.Parse("2006-01-02", m[3]+"-"+m[2]+"-"+m[1]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortByLatest returns a copy of orders, most recent booking first.
func SortByLatest(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BookingTime().After(out[j].BookingTime())
	})
	return out
}
