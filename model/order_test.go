package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus(t *testing.T) {
	cases := []struct {
		st       OrderStatus
		ordinal  int
		label    string
		progress float64
	}{
		{StatusBookingConfirmed, 1, "Booking Confirmed", 0},
		{StatusVehiclePrepared, 2, "Vehicle Prepared", 100.0 / 3},
		{StatusOnTheWay, 3, "On The Way", 200.0 / 3},
		{StatusDelivered, 4, "Delivered", 100},
		{"LOST_AT_SEA", 0, "LOST_AT_SEA", 0},
		{"", 0, "", 0},
	}
	for _, tc := range cases {
		t.Run(string(tc.st), func(t *testing.T) {
			require.Equal(t, tc.ordinal, tc.st.Ordinal())
			require.Equal(t, tc.label, tc.st.Label())
			require.InDelta(t, tc.progress, tc.st.Progress(), 0.001)
			require.Equal(t, tc.ordinal > 0, tc.st.Known())
		})
	}
}

func TestSteps(t *testing.T) {
	steps := StatusOnTheWay.Steps()
	require.Len(t, steps, 4)
	require.True(t, steps[0].Reached)
	require.True(t, steps[2].Reached)
	require.False(t, steps[3].Reached)
	require.Equal(t, "Delivered", steps[3].Label)

	for _, s := range OrderStatus("nope").Steps() {
		require.False(t, s.Reached)
	}
	require.Len(t, StatusOptions(), 4)
}

func TestBookingTime(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	require.Equal(t, day, Order{BookingDate: "2025-03-14"}.BookingTime())
	require.Equal(t, day, Order{BookingDate: "14/03/2025"}.BookingTime())
	require.Equal(t, day.Add(9*time.Hour+30*time.Minute), Order{BookingDate: "2025-03-14T09:30:00Z"}.BookingTime())
	require.Equal(t, day, Order{BookingDate: "2025-03-14T99:99"}.BookingTime())
	require.True(t, Order{BookingDate: "yesterday"}.BookingTime().IsZero())
	require.True(t, Order{}.BookingTime().IsZero())
}

func TestSortByLatest(t *testing.T) {
	in := []Order{
		{OrderID: "a", BookingDate: "01/01/2025"},
		{OrderID: "b", BookingDate: "garbage"},
		{OrderID: "c", BookingDate: "2025-06-01"},
		{OrderID: "d", BookingDate: "2025-02-10T08:00:00"},
	}
	out := SortByLatest(in)

	var ids []string
	for _, o := range out {
		ids = append(ids, o.OrderID)
	}
	require.Equal(t, []string{"c", "d", "a", "b"}, ids)
	require.Equal(t, "a", in[0].OrderID)
}

func TestNewOrderView(t *testing.T) {
	v := NewOrderView(Order{OrderID: "ORD1", OrderStatus: StatusDelivered, StartDate: "2025-03-14", BookingDate: "14/03/2025"})
	require.Equal(t, 4, v.StatusOrdinal)
	require.Equal(t, "14/03/2025", v.StartDateText)
	require.Equal(t, "14/03/2025", v.BookingDateText)
	require.Equal(t, "N/A", v.EndDateText)
	require.Equal(t, "Delivered", v.StatusLabel)
	require.Equal(t, 100.0, v.Progress)
}
