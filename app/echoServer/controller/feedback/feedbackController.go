package feedback

import (
	"log/slog"
	"net/http"

	"travelease/app/echoServer/jwtx"
	"travelease/model"
	fs "travelease/service/feedback"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc fs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Submit
// @Summary      Send feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        payload  body  model.FeedbackReq  true  "feedback form"
// @Success      201  {object}  model.Feedback
// @Failure      400  {object}  map[string]any
// @Router       /v1/feedback [post]
func (h *Controller) Submit(c echo.Context) error {
	var req model.FeedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fs.MsgFillAll})
	}

	sid, _ := jwtx.SessionIDFromContext(c)
	f, err := h.Svc.Submit(c.Request().Context(), sid, req)
	if err != nil {
		switch fs.Code(err) {
		case fs.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": fs.Message(err)})
		case fs.ErrBackend:
			return c.JSON(http.StatusBadGateway, echo.Map{"message": fs.Message(err)})
		}
		h.Log.Error("feedback submit", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, f)
}

// GET /v1/feedback
func (h *Controller) Recent(c echo.Context) error {
	sid, _ := jwtx.SessionIDFromContext(c)
	list, err := h.Svc.Recent(c.Request().Context(), sid)
	if err != nil {
		h.Log.Error("feedback list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": list})
}
