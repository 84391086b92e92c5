package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"travelease/app/echoServer/jwtx"
	"travelease/model"
	adminsvc "travelease/service/admin"
	customersvc "travelease/service/customer"
	feedbacksvc "travelease/service/feedback"
	ordersvc "travelease/service/order"
	sessionsvc "travelease/service/session"
	vehiclesvc "travelease/service/vehicle"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Session   sessionsvc.Service
	Summary   adminsvc.Service
	Vehicles  vehiclesvc.Service
	Orders    ordersvc.Service
	Customers customersvc.Service
	Feedback  feedbacksvc.Service
	V         *validator.Validate
	Log       *slog.Logger
}

// token is the backend bearer token stored at sign-in.
func (h *Controller) token(c echo.Context) (string, error) {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return "", err
	}
	return h.Session.BackendToken(c.Request().Context(), sid)
}

func (h *Controller) internal(c echo.Context, what string, err error) error {
	h.Log.Error(what,
		"err", err,
		"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

// Overview
// @Summary      Admin landing counts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminsvc.Summary
// @Router       /v1/admin/summary [get]
func (h *Controller) Overview(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "redirect": sessionsvc.PathSignIn})
	}
	s, err := h.Summary.Summary(c.Request().Context(), tok)
	if err != nil {
		h.Log.Warn("admin summary failed", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Failed to load summary."})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Controller) vehicleErr(c echo.Context, err error) error {
	switch vehiclesvc.Code(err) {
	case vehiclesvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": vehiclesvc.Message(err)})
	case vehiclesvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": vehiclesvc.Message(err)})
	case vehiclesvc.ErrBackend:
		return c.JSON(http.StatusBadGateway, echo.Map{"message": vehiclesvc.Message(err)})
	}
	return h.internal(c, "admin vehicles", err)
}

// ListVehicles
// @Summary      Fleet
// @Tags         admin
// @Produce      json
// @Param        q  query  string  false  "search by name or type"
// @Success      200  {object}  map[string]any
// @Router       /v1/admin/vehicles [get]
func (h *Controller) ListVehicles(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	list, err := h.Vehicles.List(c.Request().Context(), tok, c.QueryParam("q"))
	if err != nil {
		return h.vehicleErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// CreateVehicle
// @Summary      Add vehicle
// @Description  Blank fields get defaults (Untitled Vehicle, Unknown, capacity 4)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        payload  body  model.VehicleInput  true  "vehicle"
// @Success      201  {object}  model.Vehicle
// @Router       /v1/admin/vehicles [post]
func (h *Controller) CreateVehicle(c echo.Context) error {
	var in model.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	v, err := h.Vehicles.Create(c.Request().Context(), tok, in)
	if err != nil {
		return h.vehicleErr(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// PUT /v1/admin/vehicles/:id
func (h *Controller) UpdateVehicle(c echo.Context) error {
	var in model.VehicleInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	v, err := h.Vehicles.Update(c.Request().Context(), tok, c.Param("id"), in)
	if err != nil {
		return h.vehicleErr(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// POST /v1/admin/vehicles/:id/toggle
func (h *Controller) ToggleVehicle(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	v, err := h.Vehicles.ToggleAvailability(c.Request().Context(), tok, c.Param("id"))
	if err != nil {
		return h.vehicleErr(c, err)
	}
	state := "unavailable"
	if v.Available {
		state = "available"
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle marked " + state, "vehicle": v})
}

// DELETE /v1/admin/vehicles/:id
func (h *Controller) DeleteVehicle(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Vehicles.Delete(c.Request().Context(), tok, c.Param("id")); err != nil {
		return h.vehicleErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vehicle deleted"})
}

// ListOrders
// @Summary      All orders
// @Tags         admin
// @Produce      json
// @Param        q  query  string  false  "search by order id, vehicle, username or mobile"
// @Success      200  {object}  map[string]any
// @Router       /v1/admin/orders [get]
func (h *Controller) ListOrders(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	list, err := h.Orders.AdminOrders(c.Request().Context(), tok, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"message": ordersvc.Message(err)})
	}
	views := make([]model.OrderView, len(list))
	for i, o := range list {
		views[i] = model.NewOrderView(o)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": views, "statuses": model.StatusOptions()})
}

// UpdateOrderStatus
// @Summary      Change order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  int              true  "order row id"
// @Param        payload  body  UpdateStatusReq  true  "new status"
// @Success      200  {object}  map[string]any
// @Failure      502  {object}  map[string]any "backend refused; change reverted"
// @Router       /v1/admin/orders/{id}/status [put]
func (h *Controller) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": ordersvc.MsgBadStatus})
	}
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	o, err := h.Orders.UpdateStatus(c.Request().Context(), tok, id, req.OrderStatus)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": ordersvc.Message(err)})
		case ordersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": ordersvc.Message(err)})
		case ordersvc.ErrUpdateFailed, ordersvc.ErrBackend:
			return c.JSON(http.StatusBadGateway, echo.Map{"message": ordersvc.Message(err)})
		}
		return h.internal(c, "order status", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Order status has been updated successfully",
		"order":   model.NewOrderView(*o),
	})
}

// ListCustomers
// @Summary      Customers
// @Tags         admin
// @Produce      json
// @Param        q  query  string  false  "search by username or email"
// @Success      200  {object}  map[string]any
// @Router       /v1/admin/customers [get]
func (h *Controller) ListCustomers(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	list, err := h.Customers.List(c.Request().Context(), tok, c.QueryParam("q"))
	switch {
	case errors.Is(err, customersvc.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin access required."})
	case errors.Is(err, customersvc.ErrBackend):
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Failed to load customers."})
	case err != nil:
		return h.internal(c, "admin customers", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// GET /v1/admin/feedback
func (h *Controller) ListFeedback(c echo.Context) error {
	tok, err := h.token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	list, err := h.Feedback.AdminList(c.Request().Context(), tok)
	if err != nil {
		switch feedbacksvc.Code(err) {
		case feedbacksvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": feedbacksvc.Message(err)})
		case feedbacksvc.ErrBackend:
			return c.JSON(http.StatusBadGateway, echo.Map{"message": feedbacksvc.Message(err)})
		}
		return h.internal(c, "admin feedback", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}
