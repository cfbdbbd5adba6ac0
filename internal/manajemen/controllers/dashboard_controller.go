package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/internal/manajemen/services"
)

type DashboardController struct {
	DashboardService *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: service}
}

func (dc *DashboardController) GetDashboard(c echo.Context) error {
	dashboard, err := dc.DashboardService.GetDashboard()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to fetch dashboard: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dashboard berhasil diambil",
		"data":    dashboard,
	})
}
