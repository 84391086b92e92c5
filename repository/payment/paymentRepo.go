package payment

import (
	"context"
	"time"

	"travelease/model"
)

type ChargeReq struct {
	Reference string
	Amount    float64
	Details   model.PaymentReq
}

type Receipt struct {
	Reference string
	Method    model.PaymentMethod
	Amount    float64
	Status    string
	PaidAt    time.Time
}

// Repo charges a customer. The only implementation is a simulator; card
// and UPI details are checked for presence but never sent anywhere.
type Repo interface {
	Charge(ctx context.Context, req ChargeReq) (*Receipt, error)
}
