// Package shopapi serves the customer-facing REST routes.
package shopapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/common"
)

// InitRouter registers the public API routes.
func InitRouter() {
	webserver.ApiGET("/health", health)
	registerProductRoutes()
	registerBookingRoutes()
	registerIntakeRoutes()
	registerInvoiceRoutes()
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "shopd API running"})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// serviceError maps a service failure to the uniform envelope: validation
// errors become a 400 with their message, store failures a logged 500 with a
// generic message. Not-found handling stays with the caller.
func serviceError(c echo.Context, err error, logMsg, storeMsg string) error {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return fail(c, http.StatusBadRequest, ve.Message)
	}
	zap.L().Error(logMsg, zap.Error(err))
	return fail(c, http.StatusInternalServerError, storeMsg)
}
