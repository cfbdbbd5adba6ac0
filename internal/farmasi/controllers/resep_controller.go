package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kliniksentosa/klinik-backend/internal/common/middlewares"
	"github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
	"github.com/kliniksentosa/klinik-backend/internal/farmasi/services"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/pkg/utils"
	"github.com/kliniksentosa/klinik-backend/ws"
)

type ResepController struct {
	ResepService *services.ResepService
}

func NewResepController(service *services.ResepService) *ResepController {
	return &ResepController{ResepService: service}
}

// ListResepPending mengembalikan antrian resep yang menunggu diproses.
func (rc *ResepController) ListResepPending(c echo.Context) error {
	list, err := rc.ResepService.ListResepPending()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve resep: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Daftar resep pending berhasil diambil",
		"data":    list,
	})
}

// GetResepByKunjungan mengembalikan resep sebuah kunjungan beserta itemnya.
func (rc *ResepController) GetResepByKunjungan(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	resep, err := rc.ResepService.GetResepByKunjungan(idKunjungan)
	if err != nil {
		if errors.Is(err, services.ErrResepTidakAda) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve resep: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data resep berhasil diambil",
		"data":    resep,
	})
}

// ProsesResep menjalankan dispense: validasi stok seluruh item, kurangi stok,
// tandai resep processed, geser kunjungan ke Kasir.
func (rc *ResepController) ProsesResep(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	idPetugas := 0
	if claims, ok := c.Get(string(middlewares.ContextKeyClaims)).(*utils.Claims); ok && claims != nil {
		idPetugas = claims.IDUser
	}

	hasil, err := rc.ResepService.ProsesResep(idKunjungan, idPetugas)
	if err != nil {
		var kurang *models.ErrStokTidakCukup
		var invalid *kmodels.ErrInvalidTransition
		switch {
		case errors.Is(err, services.ErrKunjunganNotFound), errors.Is(err, services.ErrObatNotFound), errors.Is(err, services.ErrResepTidakAda):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrResepSudahDiproses):
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"status":  http.StatusConflict,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.As(err, &kurang):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data": map[string]interface{}{
					"id_obat":  kurang.IDObat,
					"nama":     kurang.NamaObat,
					"diminta":  kurang.Diminta,
					"tersedia": kurang.Tersedia,
				},
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
				"message": "Failed to process resep: " + err.Error(),
				"data":    nil,
			})
		}
	}

	log.Info().
		Int("id_kunjungan", hasil.IDKunjungan).
		Int("id_resep", hasil.IDResep).
		Int("jumlah_item", len(hasil.Items)).
		Msg("resep diproses")
	ws.BroadcastStatusKunjungan(hasil.IDKunjungan, hasil.NomorAntrian, hasil.StatusKunjungan)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Resep berhasil diproses",
		"data":    hasil,
	})
}

// SelesaikanPengambilan mencatat penyerahan obat dan menutup kunjungan.
func (rc *ResepController) SelesaikanPengambilan(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	kunjungan, err := rc.ResepService.SelesaikanPengambilan(idKunjungan)
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
				"message": "Failed to complete pengambilan: " + err.Error(),
				"data":    nil,
			})
		}
	}

	ws.BroadcastStatusKunjungan(kunjungan.ID, kunjungan.NomorAntrian, string(kunjungan.Status))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Pengambilan obat selesai, kunjungan ditutup",
		"data":    kunjungan,
	})
}
