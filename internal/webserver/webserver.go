// Package webserver owns the echo instance, shared middleware and route
// registration helpers used by the public and admin API packages.
package webserver

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/supercomputers/shopd/internal/app"
)

// AppContextKey is the echo context key holding the application handle.
const AppContextKey = "shopd_app_context"

// AdminKeyHeader carries the shared admin secret on privileged requests.
const AdminKeyHeader = "x-admin-key"

var (
	server     *echo.Echo
	appCtx     app.AppContext
	apiGroup   *echo.Group
	adminGroup *echo.Group
)

type webValidator struct {
	validate *validator.Validate
}

func (v *webValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Init builds the echo server: recover, CORS, zap request logging, the app
// context injector, the public /api group and the admin-key guarded
// /api/admin group, plus static serving of generated invoice PDFs.
func Init(application app.AppContext) {
	appCtx = application

	server = echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Validator = &webValidator{validate: validator.New()}

	server.Use(middleware.Recover())
	server.Use(middleware.CORS())
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("http request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
			} else {
				zap.L().Info("http request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status))
			}
			return nil
		},
	}))
	server.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	server.Static("/pdfs", appCtx.Config().GetPdfDir())

	apiGroup = server.Group("/api")
	adminGroup = server.Group("/api/admin", adminKeyMiddleware)
}

// adminKeyMiddleware rejects requests whose x-admin-key header does not match
// the configured shared secret.
func adminKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		serverKey := appCtx.Config().Web.AdminKey
		clientKey := c.Request().Header.Get(AdminKeyHeader)
		if serverKey == "" || clientKey == "" ||
			subtle.ConstantTimeCompare([]byte(clientKey), []byte(serverKey)) != 1 {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Unauthorized: invalid admin key",
			})
		}
		return next(c)
	}
}

// Instance exposes the echo server (tests drive it through httptest).
func Instance() *echo.Echo {
	return server
}

// Listen starts the HTTP listener and blocks.
func Listen() error {
	cfg := appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.Start(addr)
}

// Shutdown stops the HTTP listener gracefully.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Public API route registration

func ApiGET(path string, h echo.HandlerFunc)  { apiGroup.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc) { apiGroup.POST(path, h) }

// Admin API route registration

func AdminGET(path string, h echo.HandlerFunc)   { adminGroup.GET(path, h) }
func AdminPOST(path string, h echo.HandlerFunc)  { adminGroup.POST(path, h) }
func AdminPUT(path string, h echo.HandlerFunc)   { adminGroup.PUT(path, h) }
func AdminPATCH(path string, h echo.HandlerFunc) { adminGroup.PATCH(path, h) }

// GetAppContext returns the application handle injected into the request.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}
