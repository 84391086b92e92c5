package booking

import (
	"strings"
	"time"

	"travelease/model"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// ValidateDelivery checks the delivery form in the order the form reports
// problems and returns the first one. today is compared by calendar date.
func ValidateDelivery(v *validator.Validate, d model.DeliveryDetails, today time.Time) error {
	required := []struct{ field, val string }{
		{"name", d.Name},
		{"mobile", d.Mobile},
		{"address", d.Address},
		{"city", d.City},
		{"state", d.State},
		{"pincode", d.Pincode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return fieldErr(r.field, MsgFillAll)
		}
	}
	if v.Var(d.Mobile, "mobile") != nil {
		return fieldErr("mobile", MsgMobile)
	}
	if v.Var(d.Pincode, "pincode") != nil {
		return fieldErr("pincode", MsgPincode)
	}

	if d.StartDate == "" || d.EndDate == "" {
		return fieldErr("startDate", MsgDatesMissing)
	}
	start, err1 := time.Parse(dateLayout, d.StartDate)
	end, err2 := time.Parse(dateLayout, d.EndDate)
	if err1 != nil || err2 != nil || start.After(end) {
		return fieldErr("endDate", MsgDateOrder)
	}
	y, m, dd := today.Date()
	if start.Before(time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)) {
		return fieldErr("startDate", MsgStartPast)
	}

	if !d.AcceptedTerms {
		return fieldErr("acceptedTerms", MsgTerms)
	}
	return nil
}
