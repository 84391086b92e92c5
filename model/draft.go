package model

// DeliveryDetails is the delivery/date form staged between the booking screens.
// swagger:model DeliveryDetails
type DeliveryDetails struct {
	Name          string `json:"name" validate:"required"`
	Mobile        string `json:"mobile" validate:"required,mobile"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	Pincode       string `json:"pincode" validate:"required,pincode"`
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	AcceptedTerms bool   `json:"acceptedTerms"`
}

// FullAddress is the single-line address sent with the order.
func (d DeliveryDetails) FullAddress() string {
	return d.Address + ", " + d.City + ", " + d.State + " - " + d.Pincode
}

// DraftBooking is the in-progress booking owned by the booking flow.
type DraftBooking struct {
	Vehicle  *Vehicle         `json:"vehicle,omitempty"`
	Delivery *DeliveryDetails `json:"delivery,omitempty"`
}

// ReadyForPayment reports whether both steps before payment are done.
func (d DraftBooking) ReadyForPayment() bool {
	return d.Vehicle != nil && d.Delivery != nil && d.Delivery.AcceptedTerms
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Card Payment"
	case PaymentUPI:
		return "UPI Payment"
	}
	return string(m)
}

// PaymentReq carries the simulated card or UPI details.
// swagger:model PaymentReq
type PaymentReq struct {
	Method         PaymentMethod `json:"method" validate:"required,oneof=card upi"`
	CardName       string        `json:"cardName"`
	CardNumber     string        `json:"cardNumber"`
	Expiry         string        `json:"expiry"`
	CVV            string        `json:"cvv"`
	BillingAddress string        `json:"billingAddress"`
	UPIID          string        `json:"upiId"`
	ScannedQR      bool          `json:"scannedQr"`
}
