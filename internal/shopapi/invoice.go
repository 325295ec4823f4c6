package shopapi

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/common"
	"github.com/supercomputers/shopd/pkg/invoice"
)

func registerInvoiceRoutes() {
	webserver.ApiPOST("/cart-pdf", renderCartInvoice)
}

type cartPayload struct {
	Items     []invoice.Item `json:"items"`
	Subtotal  float64        `json:"subtotal"`
	Timestamp string         `json:"timestamp"`
}

// renderCartInvoice writes an invoice PDF under the workdir and returns its
// public URL. The letterhead comes from the settings table.
func renderCartInvoice(c echo.Context) error {
	var payload cartPayload
	if err := c.Bind(&payload); err != nil || len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "Cart is empty.")
	}

	appCtx := webserver.GetAppContext(c)
	orderID := common.NewRefID("ORD-", false)

	timestamp := payload.Timestamp
	if timestamp == "" {
		timestamp = time.Now().Format("02/01/2006, 15:04:05")
	}

	order := invoice.Order{
		ID:        orderID,
		Timestamp: timestamp,
		Items:     payload.Items,
		Subtotal:  payload.Subtotal,
		Shop: invoice.ShopInfo{
			Name:     appCtx.GetSettingsStringValue("system", "SiteName"),
			Address1: appCtx.GetSettingsStringValue("system", "SiteAddress1"),
			Address2: appCtx.GetSettingsStringValue("system", "SiteAddress2"),
			Phone:    appCtx.GetSettingsStringValue("system", "SitePhone"),
		},
	}

	filename := orderID + ".pdf"
	file, err := os.Create(filepath.Join(appCtx.Config().GetPdfDir(), filename))
	if err != nil {
		zap.L().Error("invoice file create failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Failed to generate PDF.")
	}
	defer file.Close()

	if err := invoice.Render(file, order); err != nil {
		zap.L().Error("invoice render failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Failed to generate PDF.")
	}

	base := appCtx.Config().Web.PublicURL
	if base == "" {
		base = fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"pdfUrl":  fmt.Sprintf("%s/pdfs/%s", base, filename),
		"orderId": orderID,
	})
}
