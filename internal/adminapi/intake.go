package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/internal/webserver"
)

// Intake records are immutable; the admin panel only reads them.
func registerIntakeRoutes() {
	webserver.AdminGET("/c2c", listC2CRequests)
	webserver.AdminGET("/csc", listCscBookings)
	webserver.AdminGET("/contacts", listContactMessages)
}

func listC2CRequests(c echo.Context) error {
	items := make([]domain.C2CRequest, 0)
	err := webserver.GetDB(c).Order("created_at DESC").Limit(listLimit(c)).Find(&items).Error
	if err != nil {
		zap.L().Error("admin c2c listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"items": items})
}

func listCscBookings(c echo.Context) error {
	items := make([]domain.CscBooking, 0)
	err := webserver.GetDB(c).Order("created_at DESC").Limit(listLimit(c)).Find(&items).Error
	if err != nil {
		zap.L().Error("admin csc listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"items": items})
}

func listContactMessages(c echo.Context) error {
	items := make([]domain.ContactMessage, 0)
	err := webserver.GetDB(c).Order("created_at DESC").Limit(listLimit(c)).Find(&items).Error
	if err != nil {
		zap.L().Error("admin contact listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"items": items})
}
