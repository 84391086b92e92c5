package auth

import (
	"log/slog"
	"net/http"
	"time"

	"travelease/app/echoServer/jwtx"
	"travelease/model"
	sessionsvc "travelease/service/session"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc       sessionsvc.Service
	V         *validator.Validate
	Log       *slog.Logger
	CookieTTL time.Duration
	Secure    bool
}

func (ct *Controller) setCookie(c echo.Context, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     jwtx.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ct.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (ct *Controller) fail(c echo.Context, action string, err error) error {
	var status int
	switch sessionsvc.Code(err) {
	case sessionsvc.ErrBadInput:
		status = http.StatusBadRequest
	case sessionsvc.ErrInvalidCreds:
		status = http.StatusUnauthorized
	case sessionsvc.ErrUsernameTaken:
		status = http.StatusConflict
	case sessionsvc.ErrRejected:
		status = http.StatusBadGateway
	case sessionsvc.ErrUnavailable:
		status = http.StatusServiceUnavailable
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		ct.Log.Error(action+" failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": action + " failed"})
	}
	return c.JSON(status, echo.Map{"message": sessionsvc.Message(err)})
}

// SignIn
// @Summary      Sign in
// @Description  Checks credentials with the backend and opens a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignInReq  true  "Sign in payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any "invalid username or password"
// @Failure      503  {object}  map[string]any "backend unreachable"
// @Router       /v1/auth/signin [post]
func (ct *Controller) SignIn(c echo.Context) error {
	var req model.SignInReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": sessionsvc.MsgFillAll})
	}

	prev, _ := jwtx.SessionIDFromContext(c)
	sess, err := ct.Svc.SignIn(c.Request().Context(), prev, req)
	if err != nil {
		return ct.fail(c, "sign in", err)
	}

	ct.setCookie(c, sess.Token, int(ct.CookieTTL.Seconds()))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "signed in",
		"token":    sess.Token,
		"user":     sess.User,
		"redirect": sessionsvc.Home(&sess.User),
	})
}

// SignUp
// @Summary      Sign up
// @Description  Registers a new account; the caller signs in separately
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignUpReq  true  "Sign up payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "username already exists"
// @Router       /v1/auth/signup [post]
func (ct *Controller) SignUp(c echo.Context) error {
	var req model.SignUpReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := ct.Svc.SignUp(c.Request().Context(), req); err != nil {
		return ct.fail(c, "sign up", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Account created. Please sign in.",
		"redirect": sessionsvc.PathSignIn,
	})
}

// SignOut
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/auth/signout [post]
func (ct *Controller) SignOut(c echo.Context) error {
	if sid, err := jwtx.SessionIDFromContext(c); err == nil {
		if err := ct.Svc.SignOut(c.Request().Context(), sid); err != nil {
			return ct.fail(c, "sign out", err)
		}
	}
	ct.setCookie(c, "", -1)
	return c.JSON(http.StatusOK, echo.Map{"message": "signed out", "redirect": sessionsvc.PathSignIn})
}

// Session
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/session [get]
func (ct *Controller) Session(c echo.Context) error {
	u := jwtx.UserFromContext(c)
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": u != nil,
		"user":          u,
		"home":          sessionsvc.Home(u),
	})
}

// Navigate
// @Summary      Route access check
// @Description  Applies the page access rules to path for the current visitor
// @Tags         auth
// @Produce      json
// @Param        path  query  string  true  "page path"
// @Success      200  {object}  map[string]any
// @Router       /v1/navigate [get]
func (ct *Controller) Navigate(c echo.Context) error {
	u := jwtx.UserFromContext(c)
	path := c.QueryParam("path")
	d := sessionsvc.Decide(path, u)
	return c.JSON(http.StatusOK, echo.Map{
		"allow":    d.Allow,
		"redirect": d.Redirect,
		"resolved": sessionsvc.Resolve(path, u),
	})
}
