package booking

import (
	"log/slog"
	"net/http"

	"travelease/app/echoServer/jwtx"
	"travelease/model"
	bs "travelease/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, err error) error {
	switch bs.Code(err) {
	case bs.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": bs.Message(err), "field": bs.Field(err)})
	case bs.ErrNoVehicle, bs.ErrNoDelivery:
		redirect := "/booking"
		if bs.Code(err) == bs.ErrNoDelivery {
			redirect = "/delivery-details"
		}
		return c.JSON(http.StatusConflict, echo.Map{"message": bs.Message(err), "redirect": redirect})
	case bs.ErrVehicleNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": bs.Message(err)})
	case bs.ErrVehicleUnavailable:
		return c.JSON(http.StatusConflict, echo.Map{"message": bs.Message(err)})
	case bs.ErrBackend:
		return c.JSON(http.StatusBadGateway, echo.Map{"message": bs.Message(err)})
	default:
		h.Log.Error("booking",
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// sessionInfo returns the session id and signed-in user; the gate guarantees both.
func sessionInfo(c echo.Context) (string, model.User) {
	sid, _ := jwtx.SessionIDFromContext(c)
	var u model.User
	if p := jwtx.UserFromContext(c); p != nil {
		u = *p
	}
	return sid, u
}

// Vehicles
// @Summary      List vehicles
// @Tags         booking
// @Produce      json
// @Param        q  query  string  false  "search by name, type or description"
// @Success      200  {object}  map[string]any
// @Router       /v1/booking/vehicles [get]
func (h *Controller) Vehicles(c echo.Context) error {
	list, err := h.Svc.Vehicles(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}

// Select
// @Summary      Select a vehicle
// @Description  Starts a new draft booking; clears any earlier delivery details
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        payload  body  SelectVehicleReq  true  "vehicle"
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any "vehicle unavailable"
// @Router       /v1/booking/select [post]
func (h *Controller) Select(c echo.Context) error {
	var req SelectVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	sid, _ := sessionInfo(c)
	v, err := h.Svc.SelectVehicle(c.Request().Context(), sid, req.VehicleID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  v.Name + " has been selected. Please enter delivery details.",
		"vehicle":  v,
		"redirect": "/delivery-details",
	})
}

// GET /v1/booking/draft
func (h *Controller) Draft(c echo.Context) error {
	sid, _ := sessionInfo(c)
	d, err := h.Svc.Draft(c.Request().Context(), sid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Delivery
// @Summary      Delivery form
// @Description  Saved delivery details, or the customer's profile as a prefill
// @Tags         booking
// @Produce      json
// @Success      200  {object}  model.DeliveryDetails
// @Failure      409  {object}  map[string]any "no vehicle selected"
// @Router       /v1/booking/delivery [get]
func (h *Controller) Delivery(c echo.Context) error {
	sid, u := sessionInfo(c)
	d, err := h.Svc.ProfilePrefill(c.Request().Context(), sid, u.Username)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// SaveDelivery
// @Summary      Save delivery details
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        payload  body  model.DeliveryDetails  true  "delivery form"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any "field validation"
// @Router       /v1/booking/delivery [put]
func (h *Controller) SaveDelivery(c echo.Context) error {
	var req model.DeliveryDetails
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	sid, u := sessionInfo(c)
	if err := h.Svc.SaveDelivery(c.Request().Context(), sid, u.Username, req); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Details Saved", "redirect": "/payment"})
}

// GET /v1/booking/payment
func (h *Controller) Quote(c echo.Context) error {
	sid, _ := sessionInfo(c)
	q, err := h.Svc.Quote(c.Request().Context(), sid)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

// Pay
// @Summary      Pay and place the order
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        payload  body  model.PaymentReq  true  "card or upi details"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      502  {object}  map[string]any "order creation failed"
// @Router       /v1/booking/payment [post]
func (h *Controller) Pay(c echo.Context) error {
	var req model.PaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please choose card or UPI payment.", "field": "method"})
	}
	sid, u := sessionInfo(c)
	o, err := h.Svc.Pay(c.Request().Context(), sid, u, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"order":    o,
		"redirect": "/payment-success",
	})
}
