package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kliniksentosa/klinik-backend/internal/kasir/services"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/ws"
)

type BillingController struct {
	BillingService *services.BillingService
}

func NewBillingController(service *services.BillingService) *BillingController {
	return &BillingController{BillingService: service}
}

// ComputeTagihan mengembalikan rincian tagihan berjalan seorang pasien.
func (bc *BillingController) ComputeTagihan(c echo.Context) error {
	idPasien, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	rincian, err := bc.BillingService.ComputeTagihan(idPasien)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasienNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrTidakAdaTagihan):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to compute tagihan: " + err.Error(),
				"data":    nil,
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Rincian tagihan berhasil dihitung",
		"data":    rincian,
	})
}

// Pay mencatat pembayaran sebuah kunjungan.
func (bc *BillingController) Pay(c echo.Context) error {
	idKunjungan, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	var req struct {
		JumlahBayar      float64 `json:"jumlah_bayar"`
		MetodePembayaran string  `json:"metode_pembayaran"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	trx, err := bc.BillingService.Pay(idKunjungan, req.JumlahBayar, req.MetodePembayaran)
	if err != nil {
		var invalid *kmodels.ErrInvalidTransition
		switch {
		case errors.Is(err, services.ErrKunjunganNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrTidakAdaTagihan), errors.Is(err, services.ErrBayarKurang), errors.As(err, &invalid):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to record pembayaran: " + err.Error(),
				"data":    nil,
			})
		}
	}

	log.Info().
		Int("id_kunjungan", trx.IDKunjungan).
		Str("no_kwitansi", trx.NoKwitansi).
		Float64("total", trx.Total).
		Msg("pembayaran tercatat")
	ws.BroadcastStatusKunjungan(trx.IDKunjungan, trx.NomorAntrian, string(kmodels.StatusPengambilanObat))

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Pembayaran berhasil dicatat",
		"data":    trx,
	})
}

// ListTransaksi mengembalikan transaksi, difilter opsional via query param tanggal.
func (bc *BillingController) ListTransaksi(c echo.Context) error {
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

	list, err := bc.BillingService.ListTransaksi(tanggal)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve transaksi: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data transaksi berhasil diambil",
		"data":    list,
	})
}
