package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/catalog"
	"github.com/supercomputers/shopd/internal/webserver"
)

// registerProductRoutes registers the catalog management endpoints
func registerProductRoutes() {
	webserver.AdminGET("/products", listProducts)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPATCH("/products/:id", updateProduct)
}

// listProducts returns the full catalog including hidden products.
func listProducts(c echo.Context) error {
	items, err := webserver.GetAppContext(c).Catalog().ListAdmin(c.Request().Context())
	if err != nil {
		zap.L().Error("admin product listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"items": items})
}

func createProduct(c echo.Context) error {
	var payload catalog.CreateInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}

	product, err := webserver.GetAppContext(c).Catalog().Create(c.Request().Context(), payload)
	if err != nil {
		return serviceError(c, err, "product create failed", "Product not found")
	}

	writeOprLog(c, "create_product", fmt.Sprintf("created product %d (%s)", product.ID, product.Title))
	return ok(c, echo.Map{"product": product})
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}

	var payload catalog.UpdateInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}

	product, err := webserver.GetAppContext(c).Catalog().Update(c.Request().Context(), id, payload)
	if err != nil {
		return serviceError(c, err, "product update failed", "Product not found")
	}

	writeOprLog(c, "update_product", fmt.Sprintf("updated product %d (%s)", product.ID, product.Title))
	return ok(c, echo.Map{"item": product})
}
