package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kliniksentosa/klinik-backend/internal/dokter/models"
	"github.com/kliniksentosa/klinik-backend/internal/dokter/services"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/ws"
)

type PemeriksaanController struct {
	PemeriksaanService *services.PemeriksaanService
}

func NewPemeriksaanController(service *services.PemeriksaanService) *PemeriksaanController {
	return &PemeriksaanController{PemeriksaanService: service}
}

// InputPemeriksaan menerima hasil konsultasi dokter untuk satu kunjungan.
func (pc *PemeriksaanController) InputPemeriksaan(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	idDokter, err := strconv.Atoi(c.QueryParam("id_dokter"))
	if err != nil || idDokter <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id_dokter parameter is required",
			"data":    nil,
		})
	}

	var req models.PemeriksaanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	kunjungan, err := pc.PemeriksaanService.InputPemeriksaan(idKunjungan, idDokter, req)
	if err != nil {
		var invalid *kmodels.ErrInvalidTransition
		switch {
		case errors.Is(err, services.ErrKunjunganNotFound), errors.Is(err, services.ErrDokterNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.As(err, &invalid), errors.Is(err, services.ErrResepTanpaItem):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		case strings.Contains(err.Error(), "item resep"), strings.Contains(err.Error(), "tidak aktif"):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to input pemeriksaan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	log.Info().
		Int("id_kunjungan", kunjungan.ID).
		Int("id_dokter", idDokter).
		Bool("perlu_resep", kunjungan.PerluResep).
		Str("status", string(kunjungan.Status)).
		Msg("pemeriksaan tersimpan")
	ws.BroadcastStatusKunjungan(kunjungan.ID, kunjungan.NomorAntrian, string(kunjungan.Status))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Pemeriksaan berhasil disimpan",
		"data":    kunjungan,
	})
}
