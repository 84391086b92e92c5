package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"travelease/model"
	authrepo "travelease/repository/auth"
	"travelease/repository/backend"
	"travelease/repository/storage"
	jwtutil "travelease/util/jwt"

	"github.com/google/uuid"
)

const (
	msgSignInFailed = "Sign in failed. Please try again."
	msgSignInDown   = "Sign in failed. Something went wrong. Please ensure the backend is running."
	msgSignUpFailed = "Sign up failed. Please try again."
	msgSignUpDown   = "Sign up failed. Something went wrong. Please ensure the backend is running."
	msgNotSignedIn  = "Please sign in to continue."
)

// Session is a freshly opened visitor session.
type Session struct {
	ID    string
	User  model.User
	Token string
}

type Service interface {
	// SignIn opens a new session. A live session named by prevSID is
	// closed once the new one is stored.
	SignIn(ctx context.Context, prevSID string, req model.SignInReq) (*Session, error)
	SignUp(ctx context.Context, req model.SignUpReq) error
	SignOut(ctx context.Context, sid string) error
	// Current returns nil, nil when sid carries no signed-in user.
	Current(ctx context.Context, sid string) (*model.User, error)
	// BackendToken is the bearer token the backend issued at sign-in.
	BackendToken(ctx context.Context, sid string) (string, error)
}

type service struct {
	r        authrepo.Repo
	st       storage.Store
	secret   string
	ttlHours int
	log      *slog.Logger
	newID    func() string
}

func New(r authrepo.Repo, st storage.Store, secret string, ttlHours int, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{r: r, st: st, secret: secret, ttlHours: ttlHours, log: log, newID: uuid.NewString}
}

func (s *service) SignIn(ctx context.Context, prevSID string, req model.SignInReq) (*Session, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, makeErr(ErrBadInput, MsgFillAll)
	}

	resp, err := s.r.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return nil, mapBackendErr(err, http.StatusUnauthorized, ErrInvalidCreds, MsgInvalidCreds, msgSignInFailed, msgSignInDown)
	}

	u := model.User{
		Username:   resp.Username,
		Email:      resp.Email,
		IsAdmin:    resp.Role == model.RoleAdmin,
		ProfilePic: model.AvatarURL(resp.Username),
	}
	if u.Username == "" {
		u.Username = req.Username
		u.ProfilePic = model.AvatarURL(req.Username)
	}
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}

	sid := s.newID()
	tok, err := jwtutil.Issue(s.secret, sid, role, s.ttlHours)
	if err != nil {
		return nil, err
	}
	if err := storage.SetJSON(ctx, s.st, sid, storage.KeyUser, u); err != nil {
		return nil, err
	}
	if err := s.st.Set(ctx, sid, storage.KeyToken, []byte(resp.Token)); err != nil {
		if cerr := s.st.Clear(ctx, sid); cerr != nil {
			s.log.Warn("session rollback failed", "sid", sid, "err", cerr)
		}
		return nil, err
	}
	if prevSID != "" && prevSID != sid {
		if err := s.st.Clear(ctx, prevSID); err != nil {
			s.log.Warn("previous session clear failed", "sid", prevSID, "err", err)
		}
	}

	s.log.Info("signed in", "username", u.Username, "admin", u.IsAdmin)
	return &Session{ID: sid, User: u, Token: tok}, nil
}

func (s *service) SignUp(ctx context.Context, req model.SignUpReq) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return makeErr(ErrBadInput, MsgFillAll)
	}
	if len(req.Password) < 6 {
		return makeErr(ErrBadInput, MsgShortPassword)
	}

	if err := s.r.SignUp(ctx, req.Username, req.Email, req.Password); err != nil {
		return mapBackendErr(err, http.StatusConflict, ErrUsernameTaken, MsgUsernameTaken, msgSignUpFailed, msgSignUpDown)
	}
	return nil
}

// SignOut tears the whole session down. The backend token is left to expire
// on its own since the backend has no revocation endpoint.
func (s *service) SignOut(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.st.Clear(ctx, sid)
}

func (s *service) Current(ctx context.Context, sid string) (*model.User, error) {
	if sid == "" {
		return nil, nil
	}
	var u model.User
	if err := storage.GetJSON(ctx, s.st, sid, storage.KeyUser, &u); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *service) BackendToken(ctx context.Context, sid string) (string, error) {
	raw, err := s.st.Get(ctx, sid, storage.KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", makeErr(ErrNoSession, msgNotSignedIn)
		}
		return "", err
	}
	return string(raw), nil
}

// mapBackendErr turns a backend failure into a coded error. The status
// named by special gets its fixed message; other statuses surface the
// backend's body text.
func mapBackendErr(err error, special int, code ErrCode, specialMsg, fallback, down string) error {
	switch st := backend.Status(err); {
	case st == special:
		return makeErr(code, specialMsg)
	case st == 0:
		return makeErr(ErrUnavailable, down)
	default:
		if body := backend.Body(err); body != "" {
			return makeErr(ErrRejected, body)
		}
		return makeErr(ErrRejected, fallback)
	}
}
