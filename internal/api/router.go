package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/decision-service/docs"
	"github.com/99minutos/decision-service/internal/api/handler"
	"github.com/99minutos/decision-service/internal/api/middleware"
	"github.com/99minutos/decision-service/internal/api/render"
	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
	"github.com/99minutos/decision-service/internal/pkg/config"
	"github.com/99minutos/decision-service/web"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Config    *config.Config
	Log       zerolog.Logger
	Auth      ports.AuthService
	Decisions ports.DecisionService
	// Accounts backs the admin-only account listing.
	Accounts handler.AccountDirectory
	Cookies  *middleware.SessionCookie
	// Pingers are checked by /health/ready, keyed by backend name.
	Pingers map[string]handler.Pinger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	if deps.Config == nil || deps.Auth == nil || deps.Decisions == nil || deps.Accounts == nil || deps.Cookies == nil {
		return nil, errors.New("api: config, auth, decisions, accounts and cookies are required")
	}
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	cfg, log := deps.Config, deps.Log

	views, err := render.New(web.Views, "views/*.html")
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = views
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	promMiddleware, err := echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(promMiddleware)
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root: cfg.PublicDir,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/swagger/") || strings.HasPrefix(p, "/pruebas/")
		},
	}))
	e.Use(middleware.Sessions(deps.Auth, deps.Cookies, log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookies, log)
	decisionHandler := handler.NewDecisionHandler(deps.Decisions, log)
	pageHandler := handler.NewPageHandler()
	accountHandler := handler.NewAccountHandler(deps.Accounts)

	// --- Session routes ---
	e.GET("/session", authHandler.Session)
	e.GET("/", pageHandler.Index, middleware.RedirectAnonymous("/login"))
	e.GET("/login", pageHandler.Login, middleware.RedirectAuthenticated("/"))
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Decision routes ---
	// The guard is attached per route so unknown paths under /decisiones
	// still answer 404. Ownership is enforced by the role-scoped store.
	requireSession := middleware.RequireSession()
	decisions := e.Group("/decisiones")
	decisions.GET("", decisionHandler.List, requireSession)
	decisions.POST("/nueva", decisionHandler.Create, requireSession)
	decisions.DELETE("/borrar/:id", decisionHandler.Delete, requireSession)
	decisions.PUT("/editar/resultado/:id", decisionHandler.UpdateResult, requireSession)
	decisions.PUT("/editar/texto/:id", decisionHandler.UpdateText, requireSession)
	decisions.PUT("/editar/exito/:id", decisionHandler.UpdateSucceeded, requireSession)

	// --- Admin routes ---
	e.GET("/cuentas", accountHandler.List, requireSession, middleware.RBAC(domain.RoleAdmin))

	if cfg.Fixtures {
		e.Static("/pruebas", cfg.FixturesDir)
	}

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

// requestLogger feeds Echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
