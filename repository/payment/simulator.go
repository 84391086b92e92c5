package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"travelease/model"
)

var (
	ErrCardDetails = errors.New("card details incomplete")
	ErrUPIDetails  = errors.New("upi id or qr scan required")
	ErrMethod      = errors.New("unsupported payment method")
)

type simulator struct {
	delay time.Duration
	now   func() time.Time
}

// NewSimulator waits delay before approving every well-formed payment.
func NewSimulator(delay time.Duration) Repo {
	return &simulator{delay: delay, now: time.Now}
}

func (s *simulator) Charge(ctx context.Context, req ChargeReq) (*Receipt, error) {
	if err := CheckDetails(req.Details); err != nil {
		return nil, err
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return &Receipt{
		Reference: req.Reference,
		Method:    req.Details.Method,
		Amount:    req.Amount,
		Status:    model.PaymentCompleted,
		PaidAt:    s.now().UTC(),
	}, nil
}

// CheckDetails enforces the per-method required fields.
func CheckDetails(d model.PaymentReq) error {
	switch d.Method {
	case model.PaymentCard:
		for _, f := range []string{d.CardName, d.CardNumber, d.Expiry, d.CVV, d.BillingAddress} {
			if strings.TrimSpace(f) == "" {
				return ErrCardDetails
			}
		}
		return nil
	case model.PaymentUPI:
		if strings.TrimSpace(d.UPIID) == "" && !d.ScannedQR {
			return ErrUPIDetails
		}
		return nil
	}
	return ErrMethod
}
