// Package main TravelEase web application server.
//
// @title           TravelEase API
// @version         1.0
// @description     Vehicle rental front service: sessions, booking flow, order tracking and admin console over the TravelEase REST backend.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <session token>
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelease/app/echoServer"
	adminctrl "travelease/app/echoServer/controller/admin"
	authctrl "travelease/app/echoServer/controller/auth"
	bookingctrl "travelease/app/echoServer/controller/booking"
	feedbackctrl "travelease/app/echoServer/controller/feedback"
	orderctrl "travelease/app/echoServer/controller/order"
	"travelease/app/echoServer/validation"
	"travelease/config"
	"travelease/model"
	authrepo "travelease/repository/auth"
	"travelease/repository/backend"
	customerrepo "travelease/repository/customer"
	feedbackrepo "travelease/repository/feedback"
	"travelease/repository/kafka"
	orderrepo "travelease/repository/order"
	paymentrepo "travelease/repository/payment"
	profilerepo "travelease/repository/profile"
	"travelease/repository/storage"
	vehiclerepo "travelease/repository/vehicle"
	adminsvc "travelease/service/admin"
	bookingsvc "travelease/service/booking"
	customersvc "travelease/service/customer"
	feedbacksvc "travelease/service/feedback"
	ordersvc "travelease/service/order"
	sessionsvc "travelease/service/session"
	vehiclesvc "travelease/service/vehicle"
	"travelease/util/eventbus"
	"travelease/util/httpx"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	// session store
	ttl := time.Duration(cfg.SessionTTL) * time.Hour
	store, err := storage.Open(ctx, storage.Config{
		Driver:      cfg.StorageDriver,
		TTL:         ttl,
		RedisAddr:   cfg.RedisAddr,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		log.Error("session store open failed", "driver", cfg.StorageDriver, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	// event buses, mirrored to kafka when brokers are set
	ordersBus := eventbus.New[model.OrdersUpdated](log)
	vehiclesBus := eventbus.New[model.VehiclesUpdated](log)
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
		defer producer.Close()
		ordersBus.WithSink(kafka.Sink[model.OrdersUpdated]{P: producer})
		vehiclesBus.WithSink(kafka.Sink[model.VehiclesUpdated]{P: producer})
		log.Info("kafka event sink enabled", "topic", cfg.KafkaTopic)
	}
	vehiclesBus.Subscribe(func(ev model.VehiclesUpdated) {
		log.Info("vehicles updated", "vehicle_id", ev.VehicleID, "action", ev.Action)
	})

	// repos
	bc := backend.New(cfg.BackendURL, httpx.New(cfg.BackendTimeout))
	ar := authrepo.New(bc)
	vr := vehiclerepo.New(bc)
	or := orderrepo.New(bc)
	fr := feedbackrepo.New(bc)
	cr := customerrepo.New(bc)
	pr := profilerepo.New(bc)
	pay := paymentrepo.NewSimulator(cfg.PaymentDelay)

	// services
	v := validation.NewValidate()
	ss := sessionsvc.New(ar, store, cfg.SessionSecret, cfg.SessionTTL, log)
	bs := bookingsvc.New(bookingsvc.Deps{
		VehicleRepo: vr,
		OrderRepo:   or,
		ProfileRepo: pr,
		Payments:    pay,
		Store:       store,
		OrdersBus:   ordersBus,
		Validate:    v,
		DeliveryFee: cfg.DeliveryFee,
		Log:         log,
	})
	osvc := ordersvc.New(ordersvc.Deps{
		Repo:          or,
		Bus:           ordersBus,
		TrackInterval: cfg.TrackingInterval,
		MineInterval:  cfg.MyBookingsInterval,
		Log:           log,
	})
	vs := vehiclesvc.New(vr, store, vehiclesBus, log)
	fs := feedbacksvc.New(fr, store, log)
	cs := customersvc.New(cr)
	as := adminsvc.New(vr, or, cr, fr)

	go sessionsvc.RunCleaner(ctx, sessionsvc.NewCleaner(store), 10*time.Minute, log)

	// controllers
	authC := &authctrl.Controller{Svc: ss, V: v, Log: log, CookieTTL: ttl, Secure: cfg.Env == "prod"}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	orderC := orderctrl.New(ctx, osvc, log)
	feedbackC := &feedbackctrl.Controller{Svc: fs, V: v, Log: log}
	adminC := &adminctrl.Controller{
		Session:   ss,
		Summary:   as,
		Vehicles:  vs,
		Orders:    osvc,
		Customers: cs,
		Feedback:  fs,
		V:         v,
		Log:       log,
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = validation.Wrap(v)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
			"backend": cfg.BackendURL,
			"storage": cfg.StorageDriver,
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Booking:  bookingC,
		Order:    orderC,
		Feedback: feedbackC,
		Admin:    adminC,

		Sessions:  ss,
		JWTSecret: cfg.SessionSecret,
		Log:       log,
	})

	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
