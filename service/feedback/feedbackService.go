package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"travelease/model"
	"travelease/repository/backend"
	feedbackrepo "travelease/repository/feedback"
	"travelease/repository/storage"
)

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrForbidden ErrCode = "FORBIDDEN"
	ErrBackend   ErrCode = "BACKEND"
)

const MsgFillAll = "Please fill in all fields."

// maxRecent caps the per-session list of submissions.
const maxRecent = 20

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
	Submit(ctx context.Context, sid string, req model.FeedbackReq) (*model.Feedback, error)
	// Recent is what this session has submitted, newest first.
	Recent(ctx context.Context, sid string) ([]model.Feedback, error)
	AdminList(ctx context.Context, token string) ([]model.Feedback, error)
}

type service struct {
	r   feedbackrepo.Repo
	st  storage.Store
	log *slog.Logger
	now func() time.Time

	mu sync.Mutex
}

func New(r feedbackrepo.Repo, st storage.Store, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{r: r, st: st, log: log, now: time.Now}
}

func (s *service) Submit(ctx context.Context, sid string, req model.FeedbackReq) (*model.Feedback, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Description == "" {
		return nil, makeErr(ErrBadInput, MsgFillAll)
	}

	id, err := s.r.Submit(ctx, req)
	if err != nil {
		s.log.Warn("feedback submit failed", "err", err)
		if body := backend.Body(err); body != "" {
			return nil, makeErr(ErrBackend, body)
		}
		return nil, makeErr(ErrBackend, "Failed to submit feedback")
	}

	now := s.now().UTC()
	if id == "" {
		id = fmt.Sprintf("f%d", now.UnixMilli())
	}
	f := model.Feedback{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Description: req.Description,
		Date:        now,
	}

	s.remember(ctx, sid, f)
	return &f, nil
}

func (s *service) remember(ctx context.Context, sid string, f model.Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Recent(ctx, sid)
	if err != nil {
		s.log.Warn("feedback cache read failed", "sid", sid, "err", err)
	}
	list = append([]model.Feedback{f}, list...)
	if len(list) > maxRecent {
		list = list[:maxRecent]
	}
	if err := storage.SetJSON(ctx, s.st, sid, storage.KeyFeedbacks, list); err != nil {
		s.log.Warn("feedback cache write failed", "sid", sid, "err", err)
	}
}

func (s *service) Recent(ctx context.Context, sid string) ([]model.Feedback, error) {
	var list []model.Feedback
	err := storage.GetJSON(ctx, s.st, sid, storage.KeyFeedbacks, &list)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.Feedback{}, nil
	}
	return list, err
}

func (s *service) AdminList(ctx context.Context, token string) ([]model.Feedback, error) {
	list, err := s.r.AdminList(ctx, token)
	if err != nil {
		switch backend.Status(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, makeErr(ErrForbidden, "Admin access required.")
		}
		return nil, makeErr(ErrBackend, "Failed to load feedback.")
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}
