package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/webserver"
)

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
}

// listProducts returns the visible catalog, ordered by category then title.
func listProducts(c echo.Context) error {
	items, err := webserver.GetAppContext(c).Catalog().ListPublic(c.Request().Context())
	if err != nil {
		zap.L().Error("public product listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error while loading products")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items})
}
