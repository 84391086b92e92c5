package feedback

import (
	"context"
	"net/http"

	"travelease/model"
	"travelease/repository/backend"
)

type Repo interface {
	Submit(ctx context.Context, req model.FeedbackReq) (id string, err error)
	AdminList(ctx context.Context, token string) ([]model.Feedback, error)
}

type repo struct{ c *backend.Client }

func New(c *backend.Client) Repo { return &repo{c: c} }

func (r *repo) Submit(ctx context.Context, req model.FeedbackReq) (string, error) {
	var row backend.Record
	if err := r.c.Do(ctx, http.MethodPost, "feedback.create", "/api/feedback", "", req, &row); err != nil {
		return "", err
	}
	return backend.ToFeedback(row).ID, nil
}

func (r *repo) AdminList(ctx context.Context, token string) ([]model.Feedback, error) {
	var rows []backend.Record
	if err := r.c.Do(ctx, http.MethodGet, "admin.feedback.list", "/api/admin/feedback", token, nil, &rows); err != nil {
		return nil, err
	}
	return backend.ToFeedbacks(rows), nil
}
