// Package adminapi serves the privileged admin-panel routes. Every route in
// this package sits behind the x-admin-key guard installed by the webserver.
package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/common"
)

// InitRouter registers the admin API routes.
func InitRouter() {
	registerDashboardRoutes()
	registerProductRoutes()
	registerBookingRoutes()
	registerIntakeRoutes()
	registerSettingRoutes()
}

func ok(c echo.Context, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

func failValidation(c echo.Context, ve *common.ValidationError) error {
	body := echo.Map{"success": false, "message": ve.Message}
	if ve.Field != "" {
		body["errors"] = echo.Map{ve.Field: ve.Message}
	}
	return c.JSON(http.StatusBadRequest, body)
}

// serviceError maps service failures onto the admin envelope.
func serviceError(c echo.Context, err error, logMsg, notFoundMsg string) error {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return failValidation(c, ve)
	case errors.Is(err, common.ErrNotFound):
		return fail(c, http.StatusNotFound, notFoundMsg)
	default:
		zap.L().Error(logMsg, zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// listLimit is the admin listing row cap, tunable through settings.
func listLimit(c echo.Context) int {
	limit := webserver.GetAppContext(c).GetSettingsInt64Value("booking", "AdminListLimit")
	if limit <= 0 {
		limit = 300
	}
	return int(limit)
}

// writeOprLog appends one row to the admin audit trail.
func writeOprLog(c echo.Context, action, desc string) {
	log := domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   "admin",
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := webserver.GetDB(c).Create(&log).Error; err != nil {
		zap.L().Warn("failed to write operation log", zap.String("action", action), zap.Error(err))
	}
}
