package router

import (
	"context"
	stdhttp "net/http"

	intconfig "bdvail/internal/config"
	h "bdvail/internal/http/handlers"
	"bdvail/internal/http/middleware"
	"bdvail/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AppPrefix is where the WordPress plugin mounts the app endpoints.
const AppPrefix = "/wp-json/bdvail/v1/app"

type Deps struct {
	App      h.App
	Gatherer prometheus.Gatherer
	Ping     func(ctx context.Context) error
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))
	if deps.App.Metrics != nil {
		r.Use(deps.App.Metrics.Middleware())
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		h.RespondError(c, stdhttp.StatusNotFound, "No route was found matching the URL and request method.", nil)
	})

	r.GET("/health", h.Health(deps.Ping))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	app := r.Group(AppPrefix)
	{
		app.GET("/routes", deps.App.ListRoutes)
		app.POST("/booking", deps.App.CreateBooking)
		app.GET("/bookings", deps.App.ListBookings)
		app.POST("/support", deps.App.SendSupport)
	}

	return r
}
