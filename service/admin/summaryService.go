package admin

import (
	"context"

	"travelease/model"
	customerrepo "travelease/repository/customer"
	feedbackrepo "travelease/repository/feedback"
	orderrepo "travelease/repository/order"
	vehiclerepo "travelease/repository/vehicle"

	"golang.org/x/sync/errgroup"
)

// Summary is the admin console landing counts.
type Summary struct {
	Vehicles  int `json:"vehicles"`
	Orders    int `json:"orders"`
	Customers int `json:"customers"`
	Feedback  int `json:"feedback"`
}

type Service interface {
	Summary(ctx context.Context, token string) (*Summary, error)
}

type service struct {
	v vehiclerepo.Repo
	o orderrepo.Repo
	c customerrepo.Repo
	f feedbackrepo.Repo
}

func New(v vehiclerepo.Repo, o orderrepo.Repo, c customerrepo.Repo, f feedbackrepo.Repo) Service {
	return &service{v: v, o: o, c: c, f: f}
}

func (s *service) Summary(ctx context.Context, token string) (*Summary, error) {
	var out Summary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.v.AdminList(ctx, token)
		out.Vehicles = len(list)
		return err
	})
	g.Go(func() error {
		list, err := s.o.AdminList(ctx, token)
		out.Orders = len(list)
		return err
	})
	g.Go(func() error {
		list, err := s.c.AdminList(ctx, token)
		for _, c := range list {
			if c.Role != model.RoleAdmin {
				out.Customers++
			}
		}
		return err
	})
	g.Go(func() error {
		list, err := s.f.AdminList(ctx, token)
		out.Feedback = len(list)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
