package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/internal/webserver"
)

func registerSettingRoutes() {
	webserver.AdminGET("/settings", listSettings)
	webserver.AdminPUT("/settings", updateSetting)
}

func listSettings(c echo.Context) error {
	rows := make([]domain.SysConfig, 0)
	err := webserver.GetDB(c).Order("type ASC, sort ASC").Find(&rows).Error
	if err != nil {
		zap.L().Error("settings listing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}
	return ok(c, echo.Map{"items": rows})
}

type settingPayload struct {
	Type  string `json:"type" validate:"required,min=1,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=128"`
	Value string `json:"value" validate:"max=2000"`
}

func updateSetting(c echo.Context) error {
	var payload settingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse setting")
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Setting type and name are required")
	}

	if err := webserver.GetAppContext(c).Settings().Set(payload.Type, payload.Name, payload.Value); err != nil {
		zap.L().Error("setting update failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error")
	}

	writeOprLog(c, "update_setting", fmt.Sprintf("set %s/%s", payload.Type, payload.Name))
	return ok(c, echo.Map{"type": payload.Type, "name": payload.Name, "value": payload.Value})
}
