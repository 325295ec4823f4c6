package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/metrics"
)

func registerDashboardRoutes() {
	webserver.AdminGET("/summary", getSummary)
	webserver.AdminGET("/metrics", getMetrics)
}

// getSummary returns per-entity record counts for the dashboard.
func getSummary(c echo.Context) error {
	db := webserver.GetDB(c)

	counts := map[string]interface{}{}
	for name, model := range map[string]interface{}{
		"bookingCount": &domain.Booking{},
		"c2cCount":     &domain.C2CRequest{},
		"cscCount":     &domain.CscBooking{},
		"contactCount": &domain.ContactMessage{},
		"productCount": &domain.Product{},
	} {
		var total int64
		if err := db.Model(model).Count(&total).Error; err != nil {
			zap.L().Error("admin summary count failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Server error")
		}
		counts[name] = total
	}

	return ok(c, echo.Map{"data": counts})
}

// getMetrics returns recent data points of a named gauge, default last hour.
func getMetrics(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return fail(c, http.StatusBadRequest, "Metric name required")
	}

	seconds := int64(3600)
	if raw := c.QueryParam("last"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			seconds = v
		}
	}

	end := time.Now().Unix()
	points, err := metrics.Select(name, end-seconds, end)
	if err != nil {
		zap.L().Error("metrics query failed", zap.String("name", name), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"name": name, "points": points})
}
