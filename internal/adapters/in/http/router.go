package http

import (
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BasePath = "/api/v1"

// RouterConfig carries what the router needs besides the use case handlers.
type RouterConfig struct {
	OpenAPI *openapi3.T
	Logger  zerolog.Logger
	// EchoLogLevel is applied to echo's own gommon logger.
	EchoLogLevel log.Lvl
}

// NewRouter builds the echo instance with middleware, API routes, /health and /swagger/*.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.EchoLogLevel)
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger))

	if cfg.OpenAPI != nil {
		validator, err := OpenAPIValidator(cfg.OpenAPI)
		if err != nil {
			return nil, err
		}
		e.Use(validator)

		if err = RegisterSwagger(cfg.OpenAPI); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	RegisterRoutes(e.Group(BasePath), server)
	return e, nil
}

// RegisterRoutes binds every API endpoint to its server method.
func RegisterRoutes(g *echo.Group, s *Server) {
	g.POST("/shipments", s.CreateShipment)
	g.GET("/shipments/:id", s.GetShipment)
	g.GET("/shipments/code/:code", s.GetShipmentByCode)
	g.PUT("/shipments/:id/assign", s.AssignShipment)
	g.POST("/shipments/:id/accept", s.AcceptAssignment)
	g.POST("/shipments/:id/reject", s.RejectAssignment)
	g.POST("/shipments/:id/start-transit", s.StartTransit)
	g.POST("/shipments/:id/deliver", s.DeliverShipment)
	g.POST("/shipments/:id/cancel", s.CancelShipment)
	g.GET("/shipments/:id/tracking", s.GetTracking)
	g.GET("/shipments/:id/sales-note", s.GetSalesNote)
	g.GET("/shipments/:id/checklists", s.ListShipmentChecklists)

	g.GET("/carriers/:id/shipments", s.ListCarrierShipments)

	g.POST("/checklists", s.CreateChecklist)
	g.GET("/checklists/:id", s.GetChecklist)
	g.PUT("/checklists/:id", s.UpdateChecklist)
}

// RequestLogger writes one zerolog line per request.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = logger.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	})
}
