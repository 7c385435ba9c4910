package server

import (
	"log"

	"text-summarizer-be/internal/bootstrap"
	"text-summarizer-be/internal/config"
	"text-summarizer-be/internal/pkg/logger"
	"text-summarizer-be/internal/pkg/serverutils"
	"text-summarizer-be/web"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := newApp(cfg, container.Logger)

	// Static
	app.Static("/assets", cfg.Assets.Dir)

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// newApp builds the Fiber app with the shared middleware chain and no routes.
func newApp(cfg *config.Config, log logger.ILogger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadBytes(),
		Views:        web.NewViews(),
		ErrorHandler: serverutils.ErrorHandler(log),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: cfg.App.CorsAllowedOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, " + serverutils.SessionHeader,
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(log))
	app.Use(recover.New())

	return app
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	sessionMiddleware := serverutils.SessionMiddleware(c.Tokens, c.SessionCookieName)

	api := app.Group("/api")
	c.SessionController.RegisterRoutes(api, sessionMiddleware)
	c.SummarizerController.RegisterRoutes(api, sessionMiddleware)
	c.StatsController.RegisterRoutes(api)

	c.PageController.RegisterRoutes(app)
}
