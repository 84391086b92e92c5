package order

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"travelease/app/echoServer/jwtx"
	"travelease/model"
	ordersvc "travelease/service/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc      ordersvc.Service
	Log      *slog.Logger
	Upgrader websocket.Upgrader

	// base ends every open stream when the server shuts down
	base context.Context
}

func New(base context.Context, svc ordersvc.Service, log *slog.Logger) *Controller {
	return &Controller{
		base: base,
		Svc:  svc,
		Log:  log,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Controller) fail(c echo.Context, err error) error {
	switch ordersvc.Code(err) {
	case ordersvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ordersvc.Message(err)})
	case ordersvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": ordersvc.Message(err)})
	case ordersvc.ErrBackend:
		return c.JSON(http.StatusBadGateway, echo.Map{"message": ordersvc.Message(err)})
	default:
		h.Log.Error("orders", "err", err, "path", c.Path(), "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// Track
// @Summary      Track an order
// @Tags         orders
// @Produce      json
// @Param        orderId  path  string  true  "order id"
// @Success      200  {object}  model.OrderView
// @Failure      404  {object}  map[string]any
// @Router       /v1/orders/{orderId} [get]
func (h *Controller) Track(c echo.Context) error {
	v, err := h.Svc.Track(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Mine
// @Summary      My bookings
// @Description  The signed-in customer's orders, latest booking first
// @Tags         orders
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /v1/orders/mine [get]
func (h *Controller) Mine(c echo.Context) error {
	u := jwtx.UserFromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "redirect": "/signin"})
	}
	list, err := h.Svc.MyOrders(c.Request().Context(), u.Username)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// GET /v1/orders/:orderId/stream (websocket)
func (h *Controller) TrackStream(c echo.Context) error {
	orderID := c.Param("orderId")
	if _, err := h.Svc.Track(c.Request().Context(), orderID); err != nil {
		return h.fail(c, err)
	}
	return h.stream(c, func(ctx context.Context, push func(any)) *ordersvc.Watch {
		return h.Svc.WatchOrder(ctx, orderID, func(v model.OrderView) { push(v) })
	})
}

// GET /v1/orders/mine/stream (websocket)
func (h *Controller) MineStream(c echo.Context) error {
	u := jwtx.UserFromContext(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "redirect": "/signin"})
	}
	return h.stream(c, func(ctx context.Context, push func(any)) *ordersvc.Watch {
		return h.Svc.WatchMine(ctx, u.Username, func(list []model.OrderView) { push(echo.Map{"data": list}) })
	})
}

// stream upgrades the request and forwards every watch update until the
// client goes away.
func (h *Controller) stream(c echo.Context, watch func(ctx context.Context, push func(any)) *ordersvc.Watch) error {
	conn, err := h.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", "path", c.Path(), "err", err)
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()

	var mu sync.Mutex
	push := func(v any) {
		mu.Lock()
		defer mu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(v); err != nil {
			cancel()
		}
	}

	w := watch(ctx, push)
	defer w.Stop()

	// reads only detect the close; clients send nothing
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	if h.base.Err() != nil {
		mu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		mu.Unlock()
	}
	return nil
}
