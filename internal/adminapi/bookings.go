package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/booking"
	"github.com/supercomputers/shopd/internal/webserver"
)

func registerBookingRoutes() {
	webserver.AdminGET("/bookings", listBookings)
	webserver.AdminPATCH("/bookings/:id", updateBooking)
}

// listBookings returns the newest bookings first.
func listBookings(c echo.Context) error {
	items, err := webserver.GetAppContext(c).Booking().ListRecent(c.Request().Context(), listLimit(c))
	if err != nil {
		zap.L().Error("admin booking listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"bookings": items})
}

// updateBooking applies a status/estimate/final-amount update by internal id.
func updateBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid booking ID")
	}

	var payload booking.UpdateInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse booking update")
	}

	record, err := webserver.GetAppContext(c).Booking().Update(c.Request().Context(), id, payload)
	if err != nil {
		return serviceError(c, err, "booking update failed", "Booking not found")
	}

	writeOprLog(c, "update_booking", fmt.Sprintf("updated booking %s status=%s", record.TicketID, record.Status))
	return ok(c, echo.Map{"booking": record})
}
