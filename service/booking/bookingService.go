package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travelease/model"
	orderrepo "travelease/repository/order"
	paymentrepo "travelease/repository/payment"
	profilerepo "travelease/repository/profile"
	"travelease/repository/storage"
	vehiclerepo "travelease/repository/vehicle"
	"travelease/util/eventbus"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// Quote is what the payment screen shows before the customer pays.
type Quote struct {
	Vehicle     model.Vehicle         `json:"vehicle"`
	Delivery    model.DeliveryDetails `json:"delivery"`
	DeliveryFee float64               `json:"deliveryFee"`
	Total       float64               `json:"total"`
}

type Service interface {
	// Vehicles lists the fleet, filtered by name, type or description when
	// query is set. A failed fetch falls back to the last good list.
	Vehicles(ctx context.Context, query string) ([]model.Vehicle, error)
	SelectVehicle(ctx context.Context, sid, vehicleID string) (*model.Vehicle, error)
	Draft(ctx context.Context, sid string) (*model.DraftBooking, error)
	ProfilePrefill(ctx context.Context, sid, username string) (*model.DeliveryDetails, error)
	SaveDelivery(ctx context.Context, sid, username string, d model.DeliveryDetails) error
	Quote(ctx context.Context, sid string) (*Quote, error)
	Pay(ctx context.Context, sid string, u model.User, req model.PaymentReq) (*model.Order, error)
}

type Deps struct {
	VehicleRepo vehiclerepo.Repo
	OrderRepo   orderrepo.Repo
	ProfileRepo profilerepo.Repo
	Payments    paymentrepo.Repo
	Store       storage.Store
	OrdersBus   *eventbus.Bus[model.OrdersUpdated]
	Validate    *validator.Validate
	DeliveryFee float64
	Log         *slog.Logger
}

type service struct {
	Deps
	now func() time.Time

	// one payment in flight per session; a repeat submit joins it
	paying singleflight.Group
}

func New(d Deps) Service {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return &service{Deps: d, now: time.Now}
}

func (s *service) Vehicles(ctx context.Context, query string) ([]model.Vehicle, error) {
	list, err := s.VehicleRepo.List(ctx)
	if err == nil {
		if cerr := storage.SetJSON(ctx, s.Store, storage.SharedSession, storage.KeyVehicles, list); cerr != nil {
			s.Log.Warn("vehicle cache write failed", "err", cerr)
		}
	} else {
		s.Log.Warn("vehicle fetch failed, using cached list", "err", err)
		if cerr := storage.GetJSON(ctx, s.Store, storage.SharedSession, storage.KeyVehicles, &list); cerr != nil {
			return nil, makeErr(ErrBackend, MsgNoVehicles)
		}
	}
	return filterVehicles(list, query), nil
}

func filterVehicles(list []model.Vehicle, query string) []model.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]model.Vehicle, 0, len(list))
	for _, v := range list {
		if strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Type), q) ||
			strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, v)
		}
	}
	return out
}

func (s *service) SelectVehicle(ctx context.Context, sid, vehicleID string) (*model.Vehicle, error) {
	list, err := s.Vehicles(ctx, "")
	if err != nil {
		return nil, err
	}
	var picked *model.Vehicle
	for i := range list {
		if list[i].ID == vehicleID {
			picked = &list[i]
			break
		}
	}
	if picked == nil {
		return nil, makeErr(ErrVehicleNotFound, "Vehicle not found.")
	}
	if !picked.Available {
		return nil, makeErr(ErrVehicleUnavailable, MsgUnavailable)
	}

	// a new selection always starts a fresh delivery form
	if err := s.Store.Delete(ctx, sid, storage.KeyDeliveryDetails); err != nil {
		return nil, err
	}
	if err := storage.SetJSON(ctx, s.Store, sid, storage.KeySelectedVehicle, picked); err != nil {
		return nil, err
	}
	return picked, nil
}

func (s *service) Draft(ctx context.Context, sid string) (*model.DraftBooking, error) {
	var d model.DraftBooking

	var v model.Vehicle
	switch err := storage.GetJSON(ctx, s.Store, sid, storage.KeySelectedVehicle, &v); {
	case err == nil:
		d.Vehicle = &v
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	var del model.DeliveryDetails
	switch err := storage.GetJSON(ctx, s.Store, sid, storage.KeyDeliveryDetails, &del); {
	case err == nil:
		d.Delivery = &del
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}
	return &d, nil
}

func (s *service) ProfilePrefill(ctx context.Context, sid, username string) (*model.DeliveryDetails, error) {
	d, err := s.Draft(ctx, sid)
	if err != nil {
		return nil, err
	}
	if d.Vehicle == nil {
		return nil, makeErr(ErrNoVehicle, "Please select a vehicle first.")
	}
	if d.Delivery != nil {
		return d.Delivery, nil
	}

	out := &model.DeliveryDetails{}
	if username == "" {
		return out, nil
	}
	p, err := s.ProfileRepo.Get(ctx, username)
	if err != nil {
		s.Log.Debug("no saved profile", "username", username, "err", err)
		return out, nil
	}
	out.Name = p.FullName
	out.Mobile = p.MobileNumber
	out.Address = p.Address
	out.City = p.City
	out.State = p.State
	out.Pincode = p.Pincode
	return out, nil
}

func (s *service) SaveDelivery(ctx context.Context, sid, username string, d model.DeliveryDetails) error {
	draft, err := s.Draft(ctx, sid)
	if err != nil {
		return err
	}
	if draft.Vehicle == nil {
		return makeErr(ErrNoVehicle, "Please select a vehicle first.")
	}
	if err := ValidateDelivery(s.Validate, d, s.now()); err != nil {
		return err
	}

	if err := storage.SetJSON(ctx, s.Store, sid, storage.KeyDeliveryDetails, d); err != nil {
		return err
	}

	if username != "" {
		p := model.Profile{
			Username:     username,
			FullName:     d.Name,
			MobileNumber: d.Mobile,
			Address:      d.Address,
			City:         d.City,
			State:        d.State,
			Pincode:      d.Pincode,
		}
		if err := s.ProfileRepo.Save(ctx, p); err != nil {
			s.Log.Warn("profile save failed", "username", username, "err", err)
		}
	}
	return nil
}

func (s *service) Quote(ctx context.Context, sid string) (*Quote, error) {
	d, err := s.Draft(ctx, sid)
	if err != nil {
		return nil, err
	}
	if d.Vehicle == nil {
		return nil, makeErr(ErrNoVehicle, "Please select a vehicle first.")
	}
	if d.Delivery == nil || !d.Delivery.AcceptedTerms {
		return nil, makeErr(ErrNoDelivery, "Please enter delivery details first.")
	}
	return &Quote{
		Vehicle:     *d.Vehicle,
		Delivery:    *d.Delivery,
		DeliveryFee: s.DeliveryFee,
		Total:       d.Vehicle.Price + s.DeliveryFee,
	}, nil
}

func (s *service) Pay(ctx context.Context, sid string, u model.User, req model.PaymentReq) (*model.Order, error) {
	v, err, shared := s.paying.Do(sid, func() (any, error) {
		return s.pay(ctx, sid, u, req)
	})
	if shared {
		s.Log.Info("payment already in flight", "sid", sid)
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.Order), nil
}

func (s *service) pay(ctx context.Context, sid string, u model.User, req model.PaymentReq) (*model.Order, error) {
	q, err := s.Quote(ctx, sid)
	if err != nil {
		return nil, err
	}

	_, err = s.Payments.Charge(ctx, paymentrepo.ChargeReq{
		Reference: fmt.Sprintf("booking:%s:%d", sid, s.now().UnixNano()),
		Amount:    q.Total,
		Details:   req,
	})
	switch {
	case errors.Is(err, paymentrepo.ErrCardDetails):
		return nil, fieldErr("card", MsgCardDetails)
	case errors.Is(err, paymentrepo.ErrUPIDetails):
		return nil, fieldErr("upiId", MsgUPIDetails)
	case errors.Is(err, paymentrepo.ErrMethod):
		return nil, fieldErr("method", "Please choose card or UPI payment.")
	case err != nil:
		return nil, err
	}

	username := u.Username
	if username == "" {
		username = "guest"
	}
	o, err := s.OrderRepo.Create(ctx, model.CreateOrderReq{
		VehicleName:   q.Vehicle.Name,
		Username:      username,
		Address:       q.Delivery.FullAddress(),
		MobileNumber:  q.Delivery.Mobile,
		PaymentAmount: q.Total,
		PaymentStatus: model.PaymentCompleted,
		PaymentMethod: req.Method.Label(),
		StartDate:     q.Delivery.StartDate,
		EndDate:       q.Delivery.EndDate,
	})
	if err != nil {
		s.Log.Error("order create failed", "username", username, "err", err)
		return nil, makeErr(ErrBackend, MsgPayFailed)
	}

	if err := s.Store.Delete(ctx, sid, storage.KeySelectedVehicle, storage.KeyDeliveryDetails); err != nil {
		s.Log.Warn("draft clear failed", "sid", sid, "err", err)
	}
	if s.OrdersBus != nil {
		s.OrdersBus.Publish(ctx, model.OrdersUpdated{OrderID: o.OrderID, Username: o.Username, Status: o.OrderStatus})
	}
	return o, nil
}
