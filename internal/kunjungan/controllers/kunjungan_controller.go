package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/internal/kunjungan/services"
)

type KunjunganController struct {
	KunjunganService *services.KunjunganService
}

func NewKunjunganController(service *services.KunjunganService) *KunjunganController {
	return &KunjunganController{KunjunganService: service}
}

// ListKunjungan mengembalikan daftar kunjungan, difilter opsional via query param
// status dan tanggal (format 2006-01-02). Tanpa filter, hanya kunjungan aktif.
func (kc *KunjunganController) ListKunjungan(c echo.Context) error {
	var status *models.Status
	if raw := c.QueryParam("status"); raw != "" {
		st := models.Status(raw)
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "status tidak dikenal: " + raw,
				"data":    nil,
			})
		}
		status = &st
	}

	var tanggal *time.Time
	if raw := c.QueryParam("tanggal"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": "tanggal harus berformat YYYY-MM-DD",
				"data":    nil,
			})
		}
		tanggal = &t
	}

	list, err := kc.KunjunganService.ListKunjungan(status, tanggal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve kunjungan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data kunjungan berhasil diambil",
		"data":    list,
	})
}

// AntrianToday mengembalikan antrian hari ini untuk papan antrian.
func (kc *KunjunganController) AntrianToday(c echo.Context) error {
	now := time.Now()
	list, err := kc.KunjunganService.ListKunjungan(nil, &now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve antrian: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Antrian hari ini berhasil diambil",
		"data":    list,
	})
}

func (kc *KunjunganController) GetKunjungan(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	k, err := kc.KunjunganService.GetKunjungan(id)
	if err != nil {
		if errors.Is(err, services.ErrKunjunganNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve kunjungan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data kunjungan berhasil diambil",
		"data":    k,
	})
}

// RiwayatKunjungan mengembalikan riwayat kunjungan seorang pasien.
func (kc *KunjunganController) RiwayatKunjungan(c echo.Context) error {
	idPasien, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	list, err := kc.KunjunganService.RiwayatKunjungan(idPasien)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve riwayat kunjungan: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Riwayat kunjungan berhasil diambil",
		"data":    list,
	})
}
