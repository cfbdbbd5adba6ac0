package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kliniksentosa/klinik-backend/internal/pendaftaran/services"
	"github.com/kliniksentosa/klinik-backend/ws"
)

type PendaftaranController struct {
	PendaftaranService *services.PendaftaranService
}

func NewPendaftaranController(service *services.PendaftaranService) *PendaftaranController {
	return &PendaftaranController{PendaftaranService: service}
}

// RegisterKunjungan memasukkan pasien ke antrian hari ini.
func (pc *PendaftaranController) RegisterKunjungan(c echo.Context) error {
	var req struct {
		IDPasien int `json:"id_pasien"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if req.IDPasien <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id_pasien is required",
			"data":    nil,
		})
	}

	kunjungan, err := pc.PendaftaranService.RegisterKunjungan(req.IDPasien)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasienNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrSudahDalamAntrian):
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"status":  http.StatusConflict,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to register kunjungan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	log.Info().
		Int("id_kunjungan", kunjungan.ID).
		Int("id_pasien", kunjungan.IDPasien).
		Int("nomor_antrian", kunjungan.NomorAntrian).
		Msg("kunjungan terdaftar")
	ws.BroadcastStatusKunjungan(kunjungan.ID, kunjungan.NomorAntrian, string(kunjungan.Status))

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Pasien berhasil masuk antrian",
		"data":    kunjungan,
	})
}
