package backend

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"travelease/model"
)

// Record is one backend JSON object before alias resolution.
type Record map[string]json.RawMessage

// str returns the first non-empty alias as a string. Numbers are rendered
// without a trailing ".0".
func (r Record) str(keys ...string) string {
	for _, k := range keys {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

func (r Record) num(keys ...string) float64 {
	for _, k := range keys {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func (r Record) boolean(def bool, keys ...string) bool {
	for _, k := range keys {
		raw, ok := r[k]
		if !ok || isNull(raw) {
			continue
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if b, err := strconv.ParseBool(s); err == nil {
				return b
			}
		}
	}
	return def
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// NormalizeFeatures accepts a JSON array of strings or a comma-joined string.
func NormalizeFeatures(raw json.RawMessage) []string {
	if isNull(raw) {
		return []string{}
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return model.CleanFeatures(arr)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return model.SplitFeatures(s)
	}
	return []string{}
}

func ToVehicle(r Record) model.Vehicle {
	return model.Vehicle{
		ID:          r.str("id", "vehicleId", "vehicle_id"),
		Name:        r.str("name", "vehicleName", "vehicle_name"),
		Type:        r.str("type", "vehicleType", "vehicle_type"),
		Price:       r.num("price", "pricePerDay", "price_per_day"),
		Image:       r.str("image", "imageUrl", "image_url"),
		Description: r.str("description"),
		Available:   r.boolean(true, "available", "isAvailable", "is_available"),
		Capacity:    int(r.num("capacity", "seats")),
		Features:    NormalizeFeatures(r["features"]),
	}
}

func ToOrder(r Record) model.Order {
	o := model.Order{
		ID:              int64(r.num("id")),
		OrderID:         r.str("orderId", "order_id"),
		VehicleName:     r.str("vehicleName", "vehicle_name"),
		Username:        r.str("username", "userName", "user_name"),
		DeliveryAddress: r.str("address", "deliveryAddress", "delivery_address"),
		MobileNumber:    r.str("mobileNumber", "mobile_number", "mobile"),
		PaymentAmount:   r.num("paymentAmount", "payment_amount", "amount"),
		PaymentStatus:   r.str("paymentStatus", "payment_status"),
		PaymentMethod:   r.str("paymentMethod", "payment_method"),
		StartDate:       r.str("startDate", "start_date"),
		EndDate:         r.str("endDate", "end_date"),
		BookingDate:     r.str("bookingDate", "booking_date"),
		OrderStatus:     model.OrderStatus(r.str("orderStatus", "order_status", "status")),
	}
	if o.OrderID == "" && o.ID != 0 {
		o.OrderID = strconv.FormatInt(o.ID, 10)
	}
	return o
}

func ToFeedback(r Record) model.Feedback {
	f := model.Feedback{
		ID:          r.str("id"),
		Name:        r.str("name", "username"),
		Email:       r.str("email"),
		Subject:     r.str("subject"),
		Description: r.str("description", "message", "review"),
	}
	if d := r.str("date", "createdAt", "created_at"); d != "" {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				f.Date = t
				break
			}
		}
	}
	return f
}

func ToCustomer(r Record) model.Customer {
	return model.Customer{
		ID:       r.str("id"),
		Username: r.str("username", "userName", "user_name"),
		Email:    r.str("email"),
		Role:     r.str("role"),
	}
}

func ToProfile(r Record) model.Profile {
	return model.Profile{
		Username:     r.str("username"),
		FullName:     r.str("fullName", "full_name", "name"),
		MobileNumber: r.str("mobileNumber", "mobile_number", "mobile"),
		Address:      r.str("address"),
		City:         r.str("city"),
		State:        r.str("state"),
		Pincode:      r.str("pincode", "pinCode", "pin_code"),
	}
}

// ToOrderWire is the full order body the admin update endpoint expects.
func ToOrderWire(o model.Order) map[string]any {
	return map[string]any{
		"id":            o.ID,
		"orderId":       o.OrderID,
		"vehicleName":   o.VehicleName,
		"username":      o.Username,
		"address":       o.DeliveryAddress,
		"mobileNumber":  o.MobileNumber,
		"paymentAmount": o.PaymentAmount,
		"paymentStatus": o.PaymentStatus,
		"paymentMethod": o.PaymentMethod,
		"startDate":     o.StartDate,
		"endDate":       o.EndDate,
		"bookingDate":   o.BookingDate,
		"orderStatus":   string(o.OrderStatus),
	}
}

func mapAll[T any](rs []Record, fn func(Record) T) []T {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		out = append(out, fn(r))
	}
	return out
}

func ToVehicles(rs []Record) []model.Vehicle   { return mapAll(rs, ToVehicle) }
func ToOrders(rs []Record) []model.Order       { return mapAll(rs, ToOrder) }
func ToFeedbacks(rs []Record) []model.Feedback { return mapAll(rs, ToFeedback) }
func ToCustomers(rs []Record) []model.Customer { return mapAll(rs, ToCustomer) }
