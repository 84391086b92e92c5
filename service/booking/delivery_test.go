package booking

import (
	"testing"
	"time"

	"travelease/app/echoServer/validation"
	"travelease/model"

	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func validDelivery() model.DeliveryDetails {
	return model.DeliveryDetails{
		Name:          "Asha Rao",
		Mobile:        "9876543210",
		Address:       "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		StartDate:     "2026-03-10",
		EndDate:       "2026-03-12",
		AcceptedTerms: true,
	}
}

func TestValidateDelivery(t *testing.T) {
	v := validation.NewValidate()
	require.NoError(t, ValidateDelivery(v, validDelivery(), today))

	cases := []struct {
		name  string
		edit  func(d *model.DeliveryDetails)
		field string
		msg   string
	}{
		{"missing city", func(d *model.DeliveryDetails) { d.City = " " }, "city", MsgFillAll},
		{"short mobile", func(d *model.DeliveryDetails) { d.Mobile = "987654321" }, "mobile", MsgMobile},
		{"alpha mobile", func(d *model.DeliveryDetails) { d.Mobile = "98765a3210" }, "mobile", MsgMobile},
		{"long pincode", func(d *model.DeliveryDetails) { d.Pincode = "5600011" }, "pincode", MsgPincode},
		{"no end date", func(d *model.DeliveryDetails) { d.EndDate = "" }, "startDate", MsgDatesMissing},
		{"end before start", func(d *model.DeliveryDetails) { d.EndDate = "2026-03-09" }, "endDate", MsgDateOrder},
		{"garbage date", func(d *model.DeliveryDetails) { d.StartDate = "tomorrow" }, "endDate", MsgDateOrder},
		{"start in past", func(d *model.DeliveryDetails) { d.StartDate = "2026-03-09" }, "startDate", MsgStartPast},
		{"terms", func(d *model.DeliveryDetails) { d.AcceptedTerms = false }, "acceptedTerms", MsgTerms},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDelivery()
			tc.edit(&d)
			err := ValidateDelivery(v, d, today)
			require.Error(t, err)
			require.Equal(t, ErrValidation, Code(err))
			require.Equal(t, tc.field, Field(err))
			require.Equal(t, tc.msg, Message(err))
		})
	}
}

func TestValidateDelivery_SameDay(t *testing.T) {
	d := validDelivery()
	d.EndDate = d.StartDate
	require.NoError(t, ValidateDelivery(validation.NewValidate(), d, today))
}
