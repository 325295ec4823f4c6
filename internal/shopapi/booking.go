package shopapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supercomputers/shopd/internal/booking"
	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/common"
)

func registerBookingRoutes() {
	webserver.ApiPOST("/book", bookRepair)
	webserver.ApiGET("/track", trackTicket)
}

// bookRepair accepts the repair intake form and returns the ticket ID the
// customer tracks with.
func bookRepair(c echo.Context) error {
	var in booking.IntakeInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}

	record, err := webserver.GetAppContext(c).Booking().Book(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err, "booking intake failed", "Server error while booking")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   fmt.Sprintf("Booking created with Ticket ID: %s", record.TicketID),
		"bookingId": record.TicketID,
	})
}

// trackTicket resolves a ticket ID or phone number to a booking. A miss is a
// 200 with success=false, not a 404.
func trackTicket(c echo.Context) error {
	record, err := webserver.GetAppContext(c).Booking().Track(c.Request().Context(), c.QueryParam("phone"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "No booking found"})
		}
		return serviceError(c, err, "ticket tracking failed", "Server error while tracking")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": record})
}
