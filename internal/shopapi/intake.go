package shopapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/internal/webserver"
	"github.com/supercomputers/shopd/pkg/common"
)

func registerIntakeRoutes() {
	webserver.ApiPOST("/c2c", createC2CRequest)
	webserver.ApiPOST("/csc-booking", createCscBooking)
	webserver.ApiPOST("/contact", createContactMessage)
}

type c2cPayload struct {
	Brand  string       `json:"c2c_brand"`
	Amount common.Field `json:"c2c_amount"`
	Name   string       `json:"c2c_name"`
	Phone  string       `json:"c2c_phone"`
}

func createC2CRequest(c echo.Context) error {
	var payload c2cPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}
	payload.Brand = strings.TrimSpace(payload.Brand)
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Brand == "" || payload.Name == "" || payload.Phone == "" || payload.Amount.Blank() || !payload.Amount.Present() {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}
	amount, err := cast.ToFloat64E(payload.Amount.Value())
	if err != nil {
		return fail(c, http.StatusBadRequest, "Amount must be a number")
	}

	request := domain.C2CRequest{
		ID:        common.UUIDint64(),
		RefID:     common.NewRefID("C2C-", false),
		Brand:     payload.Brand,
		Amount:    amount,
		Name:      payload.Name,
		Phone:     payload.Phone,
		CreatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&request).Error; err != nil {
		zap.L().Error("c2c create failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error while C2C")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "refId": request.RefID})
}

type cscPayload struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func createCscBooking(c echo.Context) error {
	var payload cscPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}
	payload.Service = strings.TrimSpace(payload.Service)
	payload.Date = strings.TrimSpace(payload.Date)
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Service == "" || payload.Date == "" || payload.Name == "" || payload.Phone == "" {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}

	entry := domain.CscBooking{
		ID:        common.UUIDint64(),
		RefID:     common.NewRefID("CSC-", false),
		Service:   payload.Service,
		Date:      payload.Date,
		Name:      payload.Name,
		Phone:     payload.Phone,
		Notes:     strings.TrimSpace(payload.Notes),
		CreatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&entry).Error; err != nil {
		zap.L().Error("csc booking create failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error while CSC")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": entry.RefID})
}

type contactPayload struct {
	Name    string `json:"c_name"`
	Email   string `json:"c_email"`
	Phone   string `json:"c_phone"`
	Subject string `json:"c_subject"`
	Message string `json:"c_message"`
}

func createContactMessage(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Subject = strings.TrimSpace(payload.Subject)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Subject == "" || payload.Message == "" {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}

	msg := domain.ContactMessage{
		ID:        common.UUIDint64(),
		RefID:     common.NewRefID("CT-", false),
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     strings.TrimSpace(payload.Phone),
		Subject:   payload.Subject,
		Message:   payload.Message,
		CreatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(&msg).Error; err != nil {
		zap.L().Error("contact create failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error while contact")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "refId": msg.RefID})
}
