package echoServer

import (
	"log/slog"

	"travelease/app/echoServer/controller/admin"
	"travelease/app/echoServer/controller/auth"
	"travelease/app/echoServer/controller/booking"
	"travelease/app/echoServer/controller/feedback"
	"travelease/app/echoServer/controller/order"
	sessionsvc "travelease/service/session"

	"github.com/labstack/echo/v4"
)

type C struct {
	Auth     *auth.Controller
	Booking  *booking.Controller
	Order    *order.Controller
	Feedback *feedback.Controller
	Admin    *admin.Controller

	Sessions  sessionsvc.Service
	JWTSecret string
	Log       *slog.Logger
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")
	v1.Use(SessionToken(c.JWTSecret))
	v1.Use(LoadSession(c.Sessions, c.Log))

	// Public
	v1.POST("/auth/signin", c.Auth.SignIn)
	v1.POST("/auth/signup", c.Auth.SignUp)
	v1.POST("/auth/signout", c.Auth.SignOut)
	v1.GET("/session", c.Auth.Session)
	v1.GET("/navigate", c.Auth.Navigate)

	// Booking flow
	v1.GET("/booking/vehicles", c.Booking.Vehicles, Gate("/booking"))
	v1.POST("/booking/select", c.Booking.Select, Gate("/booking"))
	v1.GET("/booking/draft", c.Booking.Draft, Gate("/booking"))
	v1.GET("/booking/delivery", c.Booking.Delivery, Gate("/delivery-details"))
	v1.PUT("/booking/delivery", c.Booking.SaveDelivery, Gate("/delivery-details"))
	v1.GET("/booking/payment", c.Booking.Quote, Gate("/payment"))
	v1.POST("/booking/payment", c.Booking.Pay, Gate("/payment"))

	// Orders
	v1.GET("/orders/mine", c.Order.Mine, Gate("/my-bookings"))
	v1.GET("/orders/mine/stream", c.Order.MineStream, Gate("/my-bookings"))
	v1.GET("/orders/:orderId", c.Order.Track, Gate("/tracking"))
	v1.GET("/orders/:orderId/stream", c.Order.TrackStream, Gate("/tracking"))

	// Feedback
	v1.GET("/feedback", c.Feedback.Recent, Gate("/feedback"))
	v1.POST("/feedback", c.Feedback.Submit, Gate("/feedback"))

	// Admin console
	adm := v1.Group("/admin", Gate("/admin"))
	adm.GET("/summary", c.Admin.Overview)
	adm.GET("/vehicles", c.Admin.ListVehicles)
	adm.POST("/vehicles", c.Admin.CreateVehicle)
	adm.PUT("/vehicles/:id", c.Admin.UpdateVehicle)
	adm.POST("/vehicles/:id/toggle", c.Admin.ToggleVehicle)
	adm.DELETE("/vehicles/:id", c.Admin.DeleteVehicle)
	adm.GET("/orders", c.Admin.ListOrders)
	adm.PUT("/orders/:id/status", c.Admin.UpdateOrderStatus)
	adm.GET("/customers", c.Admin.ListCustomers)
	adm.GET("/feedback", c.Admin.ListFeedback)
}
