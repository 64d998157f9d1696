package router

import (
	"log/slog"
	"net/http"
	"time"

	"orderpilot/internal/menu"
	"orderpilot/internal/metrics"
	"orderpilot/internal/middleware"
	"orderpilot/internal/order"
	"orderpilot/internal/restaurant"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Orders      *order.Handler
	Menus       *menu.Handler
	Restaurants *restaurant.Handler
	Metrics     *metrics.Registry
	Log         *slog.Logger

	// Guard scopes /restaurants/:id routes to the caller's restaurants.
	// Nil allows only the restaurant named in the token.
	Guard *middleware.RestaurantGuard

	WebhookSecret  string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var rejecter middleware.Rejecter
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
		rejecter = d.Metrics
	}

	api := r.Group("/api")

	// ───────────────────────── VOICE AGENT ─────────────────────────
	api.POST("/vapi/orders",
		middleware.WebhookAuth(d.WebhookSecret, rejecter, d.Log),
		d.Orders.VoiceWebhook,
	)

	// ───────────────────────── DASHBOARD ─────────────────────────
	guard := d.Guard
	if guard == nil {
		guard = middleware.NewRestaurantGuard(nil)
	}

	dash := api.Group("")
	dash.Use(middleware.AuthMiddleware())
	{
		// the handlers check the body / order restaurant themselves
		dash.POST("/orders", d.Orders.CreateManual)
		dash.PATCH("/orders/:id/status", d.Orders.UpdateStatus)

		if d.Restaurants != nil {
			dash.POST("/restaurants", d.Restaurants.CreateRestaurant)
		}
	}

	owned := dash.Group("/restaurants/:id")
	owned.Use(guard.Param("id"))
	{
		owned.GET("/orders", d.Orders.List)

		if d.Restaurants != nil {
			owned.POST("/channels", d.Restaurants.AttachChannel)
			owned.GET("/channels", d.Restaurants.ListChannels)
		}

		if d.Menus != nil {
			owned.POST("/menu", d.Menus.Upload)
			owned.GET("/menu", d.Menus.List)
		}
	}

	return r
}
