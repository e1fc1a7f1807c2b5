package router

import (
	"time"

	"go-stock-ledger/internal/handler"
	"go-stock-ledger/internal/middleware"
	"go-stock-ledger/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups the route handlers wired by New.
type Handlers struct {
	Inventory *handler.InventoryHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

type Options struct {
	AppName            string
	JWTSecret          string // empty disables auth on mutating routes
	RateLimitPerMinute int    // 0 disables the limiter
	RequestLogging     bool
}

// New builds the fiber app. hub may be nil, in which case /ws is not mounted.
func New(h Handlers, hub *ws.Hub, opts Options, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	// UnescapePath stays off, handlers decode :part themselves
	app := fiber.New(fiber.Config{
		AppName: opts.AppName,
	})

	// Middleware
	if opts.RequestLogging {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{"status": "OK"}
		if hub != nil {
			resp["ws_clients"] = hub.ClientCount()
		}
		return c.JSON(resp)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// mutations pass through auth and the limiter, reads stay open
	guards := []fiber.Handler{}
	if opts.JWTSecret != "" {
		guards = append(guards, middleware.RequireAuth(opts.JWTSecret))
	}
	if opts.RateLimitPerMinute > 0 {
		guards = append(guards, limiter.New(limiter.Config{
			Max:        opts.RateLimitPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(429).JSON(fiber.Map{"error": "Rate limit exceeded"})
			},
		}))
	}
	guarded := func(final fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guards...), final)
	}

	// Stock Routes
	api.Get("/stocks", h.Inventory.GetStocks)
	api.Get("/stocks/:part", h.Inventory.GetStock)
	api.Post("/stocks", guarded(h.Inventory.RegisterStock)...)
	api.Post("/stocks/:part/inbound", guarded(h.Inventory.Inbound)...)
	api.Post("/stocks/:part/outbound", guarded(h.Inventory.Outbound)...)
	api.Delete("/stocks/:part", guarded(h.Inventory.DeleteStock)...)

	// History Routes
	api.Get("/history", h.Inventory.GetHistory)

	// Dashboard Routes
	if h.Dashboard != nil {
		api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
		api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)
	}

	// Export Routes
	if h.Export != nil {
		api.Get("/export/stocks.xlsx", h.Export.ExportStocks)
		api.Get("/export/history.xlsx", h.Export.ExportHistory)
	}

	// WebSocket Route
	if hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			hub.Register <- c
			defer func() { hub.Unregister <- c }()

			for {
				// Keep alive loop
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}

	log.Info("router initialized", zap.Bool("auth", opts.JWTSecret != ""), zap.Int("rate_limit", opts.RateLimitPerMinute))
	return app
}
