package echoServer

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"travelease/app/echoServer/jwtx"
	sessionsvc "travelease/service/session"
	jwtutil "travelease/util/jwt"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelease_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travelease_http_request_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

func RegisterMiddlewares(e *echo.Echo, log *slog.Logger) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(log))
	e.Use(Metrics())
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			httpRequests.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			httpLatency.WithLabelValues(c.Path()).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// SessionToken verifies the session token from the Authorization header or
// the session cookie. Missing or bad tokens leave the visitor anonymous.
func SessionToken(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,cookie:" + jwtx.CookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtutil.Parse(auth, secret)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// LoadSession resolves the signed-in user for the verified session id.
func LoadSession(svc sessionsvc.Service, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, err := jwtx.SessionIDFromContext(c)
			if err != nil {
				return next(c)
			}
			u, err := svc.Current(c.Request().Context(), sid)
			if err != nil {
				log.Error("session load failed",
					"err", err,
					"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
					"path", c.Path(),
				)
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "session unavailable"})
			}
			jwtx.SetUser(c, u)
			return next(c)
		}
	}
}

// Gate applies the page access rules for page to every request of a group.
func Gate(page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := jwtx.UserFromContext(c)
			d := sessionsvc.Decide(page, u)
			if d.Allow {
				return next(c)
			}
			status := http.StatusForbidden
			msg := "forbidden"
			if u == nil {
				status = http.StatusUnauthorized
				msg = "unauthorized"
			}
			return c.JSON(status, echo.Map{"message": msg, "redirect": d.Redirect})
		}
	}
}
