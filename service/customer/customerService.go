package customer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"travelease/model"
	"travelease/repository/backend"
	customerrepo "travelease/repository/customer"
)

var (
	ErrForbidden = errors.New("admin access required")
	ErrBackend   = errors.New("failed to load customers")
)

type Service interface {
	// List returns registered customers whose username or email contains query.
	List(ctx context.Context, token, query string) ([]model.Customer, error)
}

type service struct{ r customerrepo.Repo }

func New(r customerrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, token, query string) ([]model.Customer, error) {
	all, err := s.r.AdminList(ctx, token)
	if err != nil {
		switch backend.Status(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, ErrForbidden
		}
		return nil, ErrBackend
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	out := make([]model.Customer, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Username), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out, nil
}
