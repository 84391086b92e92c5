package vehicle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"travelease/model"
	"travelease/repository/backend"
	"travelease/repository/storage"
	vehiclerepo "travelease/repository/vehicle"
	"travelease/util/eventbus"
)

type ErrCode string

const (
	ErrForbidden ErrCode = "FORBIDDEN"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrBackend   ErrCode = "BACKEND"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string   { return string(e.code) + ": " + e.msg }
func (e codedError) Code() ErrCode   { return e.code }
func (e codedError) Message() string { return e.msg }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

func Message(err error) string {
	var ce interface{ Message() string }
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Something went wrong. Please try again."
}

type Service interface {
	List(ctx context.Context, token, query string) ([]model.Vehicle, error)
	Create(ctx context.Context, token string, in model.VehicleInput) (*model.Vehicle, error)
	Update(ctx context.Context, token, id string, in model.VehicleInput) (*model.Vehicle, error)
	ToggleAvailability(ctx context.Context, token, id string) (*model.Vehicle, error)
	Delete(ctx context.Context, token, id string) error
}

type service struct {
	r   vehiclerepo.Repo
	st  storage.Store
	bus *eventbus.Bus[model.VehiclesUpdated]
	log *slog.Logger
}

func New(r vehiclerepo.Repo, st storage.Store, bus *eventbus.Bus[model.VehiclesUpdated], log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{r: r, st: st, bus: bus, log: log}
}

func mapErr(err error, fallback string) error {
	switch backend.Status(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return makeErr(ErrForbidden, "Admin access required.")
	case http.StatusNotFound:
		return makeErr(ErrNotFound, "Vehicle not found.")
	}
	return makeErr(ErrBackend, fallback)
}

func (s *service) List(ctx context.Context, token, query string) ([]model.Vehicle, error) {
	list, err := s.r.AdminList(ctx, token)
	if err != nil {
		s.log.Warn("admin vehicle list failed", "err", err)
		return nil, mapErr(err, "Failed to load vehicles.")
	}
	s.cache(ctx, list)

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list, nil
	}
	out := make([]model.Vehicle, 0, len(list))
	for _, v := range list {
		if strings.Contains(strings.ToLower(v.Name), q) || strings.Contains(strings.ToLower(v.Type), q) {
			out = append(out, v)
		}
	}
	return out, nil
}

func normalize(in model.VehicleInput) model.VehicleInput {
	in = in.WithDefaults()
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Features = model.JoinFeatures(model.SplitFeatures(in.Features))
	return in
}

func (s *service) Create(ctx context.Context, token string, in model.VehicleInput) (*model.Vehicle, error) {
	v, err := s.r.Create(ctx, token, normalize(in))
	if err != nil {
		s.log.Warn("vehicle create failed", "err", err)
		return nil, mapErr(err, "Failed to add vehicle")
	}
	s.changed(ctx, token, v.ID, "created")
	return v, nil
}

func (s *service) Update(ctx context.Context, token, id string, in model.VehicleInput) (*model.Vehicle, error) {
	v, err := s.r.Update(ctx, token, id, normalize(in))
	if err != nil {
		s.log.Warn("vehicle update failed", "id", id, "err", err)
		return nil, mapErr(err, "Failed to update vehicle")
	}
	s.changed(ctx, token, id, "updated")
	return v, nil
}

func (s *service) ToggleAvailability(ctx context.Context, token, id string) (*model.Vehicle, error) {
	list, err := s.r.AdminList(ctx, token)
	if err != nil {
		return nil, mapErr(err, "Failed to update vehicle availability")
	}
	for _, cur := range list {
		if cur.ID != id {
			continue
		}
		avail := !cur.Available
		in := model.VehicleInput{
			Name:        cur.Name,
			Type:        cur.Type,
			Price:       cur.Price,
			Image:       cur.Image,
			Description: cur.Description,
			Capacity:    cur.Capacity,
			Features:    model.JoinFeatures(cur.Features),
			Available:   &avail,
		}
		v, err := s.r.Update(ctx, token, id, in)
		if err != nil {
			return nil, mapErr(err, "Failed to update vehicle availability")
		}
		s.changed(ctx, token, id, "availability")
		return v, nil
	}
	return nil, makeErr(ErrNotFound, "Vehicle not found.")
}

func (s *service) Delete(ctx context.Context, token, id string) error {
	if err := s.r.Delete(ctx, token, id); err != nil {
		s.log.Warn("vehicle delete failed", "id", id, "err", err)
		return mapErr(err, "Failed to delete vehicle")
	}
	s.changed(ctx, token, id, "deleted")
	return nil
}

// changed refreshes the shared vehicle cache and tells listeners.
func (s *service) changed(ctx context.Context, token, id, action string) {
	if list, err := s.r.AdminList(ctx, token); err == nil {
		s.cache(ctx, list)
	} else {
		s.log.Warn("vehicle cache refresh failed", "err", err)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, model.VehiclesUpdated{VehicleID: id, Action: action})
	}
}

func (s *service) cache(ctx context.Context, list []model.Vehicle) {
	if err := storage.SetJSON(ctx, s.st, storage.SharedSession, storage.KeyVehicles, list); err != nil {
		s.log.Warn("vehicle cache write failed", "err", err)
	}
}
