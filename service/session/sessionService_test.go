package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"travelease/model"
	authrepo "travelease/repository/auth"
	"travelease/repository/backend"
	"travelease/repository/storage"
	jwtutil "travelease/util/jwt"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	signInFn func(ctx context.Context, username, password string) (*authrepo.SignInResp, error)
	signUpFn func(ctx context.Context, username, email, password string) error
}

var _ authrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) SignIn(ctx context.Context, username, password string) (*authrepo.SignInResp, error) {
	if m.signInFn == nil {
		return &authrepo.SignInResp{Username: username}, nil
	}
	return m.signInFn(ctx, username, password)
}

func (m *mockRepo) SignUp(ctx context.Context, username, email, password string) error {
	if m.signUpFn == nil {
		return nil
	}
	return m.signUpFn(ctx, username, email, password)
}

func newSvc(r authrepo.Repo) (Service, *storage.Memory) {
	st := storage.NewMemory(0)
	svc := New(r, st, "test-secret", 1, nil)
	svc.(*service).newID = func() string { return "sid-1" }
	return svc, st
}

func TestSignIn_Success(t *testing.T) {
	ctx := context.Background()
	svc, st := newSvc(&mockRepo{
		signInFn: func(ctx context.Context, username, password string) (*authrepo.SignInResp, error) {
			return &authrepo.SignInResp{Username: "root", Email: "root@x.io", Role: "ADMIN", Token: "bearer-1"}, nil
		},
	})

	sess, err := svc.SignIn(ctx, "", model.SignInReq{Username: "root", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "sid-1", sess.ID)
	require.True(t, sess.User.IsAdmin)
	require.Equal(t, model.AvatarURL("root"), sess.User.ProfilePic)

	claims, err := jwtutil.Parse(sess.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "sid-1", claims["sub"])

	u, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, sess.User, *u)

	tok, err := svc.BackendToken(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "bearer-1", tok)

	raw, err := st.Get(ctx, "sid-1", storage.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "bearer-1", string(raw))
}

func TestSignIn_NonAdminRole(t *testing.T) {
	svc, _ := newSvc(&mockRepo{
		signInFn: func(ctx context.Context, username, password string) (*authrepo.SignInResp, error) {
			return &authrepo.SignInResp{Username: "asha", Role: "USER"}, nil
		},
	})
	sess, err := svc.SignIn(context.Background(), "", model.SignInReq{Username: "asha", Password: "pw"})
	require.NoError(t, err)
	require.False(t, sess.User.IsAdmin)
}

func TestSignIn_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrCode
		msg  string
	}{
		{"unauthorized", &backend.StatusError{Status: http.StatusUnauthorized}, ErrInvalidCreds, MsgInvalidCreds},
		{"server body", &backend.StatusError{Status: 500, Body: "Database offline"}, ErrRejected, "Database offline"},
		{"server empty", &backend.StatusError{Status: 502}, ErrRejected, "Sign in failed. Please try again."},
		{"transport", fmt.Errorf("%w: refused", backend.ErrUnavailable), ErrUnavailable, "Sign in failed. Something went wrong. Please ensure the backend is running."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			svc, st := newSvc(&mockRepo{
				signInFn: func(ctx context.Context, username, password string) (*authrepo.SignInResp, error) {
					return nil, tc.err
				},
			})
			_, err := svc.SignIn(ctx, "", model.SignInReq{Username: "asha", Password: "wrong"})
			require.Error(t, err)
			require.Equal(t, tc.code, Code(err))
			require.Equal(t, tc.msg, Message(err))

			_, err = st.Get(ctx, "sid-1", storage.KeyUser)
			require.ErrorIs(t, err, storage.ErrNotFound)
			_, err = st.Get(ctx, "sid-1", storage.KeyToken)
			require.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestSignIn_BadInput(t *testing.T) {
	svc, _ := newSvc(&mockRepo{})
	_, err := svc.SignIn(context.Background(), "", model.SignInReq{Username: " "})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	var got string
	svc, _ := newSvc(&mockRepo{
		signUpFn: func(ctx context.Context, username, email, password string) error {
			got = username + "|" + email
			return nil
		},
	})
	require.NoError(t, svc.SignUp(ctx, model.SignUpReq{Username: " asha ", Email: "a@x.io", Password: "123456"}))
	require.Equal(t, "asha|a@x.io", got)

	err := svc.SignUp(ctx, model.SignUpReq{Username: "asha", Email: "a@x.io", Password: "12345"})
	require.Equal(t, ErrBadInput, Code(err))
	require.Equal(t, MsgShortPassword, Message(err))

	err = svc.SignUp(ctx, model.SignUpReq{Username: "asha", Password: "123456"})
	require.Equal(t, MsgFillAll, Message(err))
}

func TestSignUp_Conflict(t *testing.T) {
	svc, _ := newSvc(&mockRepo{
		signUpFn: func(ctx context.Context, username, email, password string) error {
			return &backend.StatusError{Status: http.StatusConflict, Body: "taken"}
		},
	})
	err := svc.SignUp(context.Background(), model.SignUpReq{Username: "asha", Email: "a@x.io", Password: "123456"})
	require.Equal(t, ErrUsernameTaken, Code(err))
	require.Equal(t, MsgUsernameTaken, Message(err))
}

func TestSignUp_Unavailable(t *testing.T) {
	svc, _ := newSvc(&mockRepo{
		signUpFn: func(ctx context.Context, username, email, password string) error {
			return backend.ErrUnavailable
		},
	})
	err := svc.SignUp(context.Background(), model.SignUpReq{Username: "asha", Email: "a@x.io", Password: "123456"})
	require.Equal(t, ErrUnavailable, Code(err))
	require.Equal(t, "Sign up failed. Something went wrong. Please ensure the backend is running.", Message(err))
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	svc, st := newSvc(&mockRepo{})
	_, err := svc.SignIn(ctx, "", model.SignInReq{Username: "asha", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, "sid-1", storage.KeySelectedVehicle, []byte(`{}`)))

	require.NoError(t, svc.SignOut(ctx, "sid-1"))

	u, err := svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.Nil(t, u)
	_, err = svc.BackendToken(ctx, "sid-1")
	require.Equal(t, ErrNoSession, Code(err))
	_, err = st.Get(ctx, "sid-1", storage.KeySelectedVehicle)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCurrent_Unknown(t *testing.T) {
	svc, _ := newSvc(&mockRepo{})
	u, err := svc.Current(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestMessage_Uncoded(t *testing.T) {
	require.Equal(t, ErrCode(""), Code(errors.New("boom")))
	require.NotEmpty(t, Message(errors.New("boom")))
}

func TestSignIn_ReplacesPreviousSession(t *testing.T) {
	ctx := context.Background()
	svc, st := newSvc(&mockRepo{})
	require.NoError(t, storage.SetJSON(ctx, st, "sid-old", storage.KeyUser, model.User{Username: "asha"}))
	require.NoError(t, st.Set(ctx, "sid-old", storage.KeySelectedVehicle, []byte(`{}`)))

	sess, err := svc.SignIn(ctx, "sid-old", model.SignInReq{Username: "ravi", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "sid-1", sess.ID)

	u, err := svc.Current(ctx, "sid-old")
	require.NoError(t, err)
	require.Nil(t, u)
	_, err = st.Get(ctx, "sid-old", storage.KeySelectedVehicle)
	require.ErrorIs(t, err, storage.ErrNotFound)

	u, err = svc.Current(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, "ravi", u.Username)
}

func TestSignIn_FailureKeepsPreviousSession(t *testing.T) {
	ctx := context.Background()
	svc, st := newSvc(&mockRepo{
		signInFn: func(ctx context.Context, username, password string) (*authrepo.SignInResp, error) {
			return nil, &backend.StatusError{Status: http.StatusUnauthorized}
		},
	})
	require.NoError(t, storage.SetJSON(ctx, st, "sid-old", storage.KeyUser, model.User{Username: "asha"}))

	_, err := svc.SignIn(ctx, "sid-old", model.SignInReq{Username: "asha", Password: "bad"})
	require.Equal(t, ErrInvalidCreds, Code(err))

	u, err := svc.Current(ctx, "sid-old")
	require.NoError(t, err)
	require.Equal(t, "asha", u.Username)
}
