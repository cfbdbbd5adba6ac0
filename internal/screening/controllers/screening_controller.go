package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/internal/screening/models"
	"github.com/kliniksentosa/klinik-backend/internal/screening/services"
	"github.com/kliniksentosa/klinik-backend/ws"
)

type ScreeningController struct {
	ScreeningService *services.ScreeningService
}

func NewScreeningController(service *services.ScreeningService) *ScreeningController {
	return &ScreeningController{ScreeningService: service}
}

// InputScreening menerima hasil screening suster untuk satu kunjungan.
func (sc *ScreeningController) InputScreening(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	var scr models.Screening
	if err := c.Bind(&scr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	kunjungan, err := sc.ScreeningService.InputScreening(idKunjungan, scr)
	if err != nil {
		var invalid *kmodels.ErrInvalidTransition
		switch {
		case errors.Is(err, services.ErrKunjunganNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to input screening: " + err.Error(),
				"data":    nil,
			})
		}
	}

	ws.BroadcastStatusKunjungan(kunjungan.ID, kunjungan.NomorAntrian, string(kunjungan.Status))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Screening berhasil disimpan",
		"data":    kunjungan,
	})
}
