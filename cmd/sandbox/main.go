package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "bdvail/internal/config"
	router "bdvail/internal/http"
	h "bdvail/internal/http/handlers"
	"bdvail/internal/http/middleware"
	"bdvail/internal/projectors"
	"bdvail/internal/services"
	"bdvail/internal/storage"
	"bdvail/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(utils.LogOptions{Level: env.LogLevel, Format: env.LogFormat, File: env.LogFile})
	log := utils.Log.WithField("module", "sandbox")

	policy, err := projectors.NewBookingPolicy(env.ContactRule, env.RequireTime)
	if err != nil {
		log.WithError(err).Fatal("invalid booking policy")
	}
	log.WithFields(logrus.Fields{"contact_rule": policy.Contact.String(), "require_time": policy.RequireTime}).Info("booking policy")

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer intconfig.CloseDB()

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := storage.EnsureSchema(setupCtx, db); err != nil {
		cancel()
		log.WithError(err).Fatal("schema setup failed")
	}
	if n, err := storage.SeedRoutes(setupCtx, db, storage.DefaultRoutes); err != nil {
		log.WithError(err).Warn("route seeding failed")
	} else if n > 0 {
		log.WithField("routes", n).Info("seeded default routes")
	}
	cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	routes := storage.RouteStore{DB: db}
	bookings := storage.BookingStore{DB: db}
	app := h.App{
		Routes: routes,
		Bookings: services.BookingService{
			Routes:   routes,
			Bookings: bookings,
			Policy:   policy,
		},
		Support: services.SupportService{Tickets: storage.SupportStore{DB: db}},
		Metrics: metrics,
	}

	sweep, err := services.StartStatusSweep(env.SweepSchedule, services.JobService{Bookings: bookings})
	if err != nil {
		log.WithError(err).Fatal("status sweep not scheduled")
	}

	r := router.NewRouter(env, router.Deps{App: app, Gatherer: reg, Ping: intconfig.PingDB})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", env.AppAddr).Info("sandbox listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	<-sweep.Stop().Done()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
		return
	}
	log.Info("server stopped")
}
