package backend

import (
	"encoding/json"
	"testing"

	"travelease/model"

	"github.com/stretchr/testify/require"
)

func rec(t *testing.T, s string) Record {
	t.Helper()
	var r Record
	require.NoError(t, json.Unmarshal([]byte(s), &r))
	return r
}

func TestNormalizeFeatures_ArrayAndStringAgree(t *testing.T) {
	fromArray := NormalizeFeatures(json.RawMessage(`["GPS Navigation", " Climate Control ", "", "Leather Seats"]`))
	fromString := NormalizeFeatures(json.RawMessage(`"GPS Navigation,  Climate Control,, Leather Seats "`))

	want := []string{"GPS Navigation", "Climate Control", "Leather Seats"}
	require.Equal(t, want, fromArray)
	require.Equal(t, want, fromString)
}

func TestNormalizeFeatures_Missing(t *testing.T) {
	require.Empty(t, NormalizeFeatures(nil))
	require.Empty(t, NormalizeFeatures(json.RawMessage(`null`)))
	require.Empty(t, NormalizeFeatures(json.RawMessage(`42`)))
}

func TestToVehicle(t *testing.T) {
	v := ToVehicle(rec(t, `{"id": 12, "name": "Luxury SUV", "type": "SUV", "price": 8500,
		"capacity": 7, "features": "GPS, Leather Seats"}`))

	require.Equal(t, "12", v.ID)
	require.Equal(t, 8500.0, v.Price)
	require.True(t, v.Available)
	require.Equal(t, 7, v.Capacity)
	require.Equal(t, []string{"GPS", "Leather Seats"}, v.Features)
}

func TestToOrder_SnakeAndCamelAgree(t *testing.T) {
	camel := ToOrder(rec(t, `{"id": 3, "orderId": "ORD-3", "vehicleName": "Luxury SUV",
		"username": "asha", "address": "1 MG Road", "mobileNumber": "9876543210",
		"paymentAmount": 9000, "paymentStatus": "COMPLETED", "startDate": "2030-01-01",
		"endDate": "2030-01-03", "bookingDate": "2029-12-30", "orderStatus": "ON_THE_WAY"}`))
	snake := ToOrder(rec(t, `{"id": 3, "order_id": "ORD-3", "vehicle_name": "Luxury SUV",
		"username": "asha", "delivery_address": "1 MG Road", "mobile_number": "9876543210",
		"payment_amount": "9000", "payment_status": "COMPLETED", "start_date": "2030-01-01",
		"end_date": "2030-01-03", "booking_date": "2029-12-30", "order_status": "ON_THE_WAY"}`))

	require.Equal(t, camel, snake)
	require.Equal(t, model.StatusOnTheWay, camel.OrderStatus)
	require.Equal(t, 9000.0, camel.PaymentAmount)
}

func TestToOrder_OrderIDFallsBackToID(t *testing.T) {
	o := ToOrder(rec(t, `{"id": 44}`))
	require.Equal(t, "44", o.OrderID)
}

func TestToFeedback_Aliases(t *testing.T) {
	f := ToFeedback(rec(t, `{"id": 1, "username": "ravi", "email": "r@x.io", "subject": "Great",
		"review": "Smooth delivery", "created_at": "2025-02-01T10:00:00Z"}`))
	require.Equal(t, "1", f.ID)
	require.Equal(t, "ravi", f.Name)
	require.Equal(t, "Smooth delivery", f.Description)
	require.Equal(t, 2025, f.Date.Year())
}
