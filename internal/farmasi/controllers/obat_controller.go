package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
	"github.com/kliniksentosa/klinik-backend/internal/farmasi/services"
)

type ObatController struct {
	ObatService *services.ObatService
}

func NewObatController(service *services.ObatService) *ObatController {
	return &ObatController{ObatService: service}
}

func (oc *ObatController) CreateObat(c echo.Context) error {
	var o models.Obat
	if err := c.Bind(&o); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if o.Nama == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "nama is required",
			"data":    nil,
		})
	}

	id, err := oc.ObatService.CreateObat(&o)
	if err != nil {
		if errors.Is(err, services.ErrNilaiNegatif) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to create obat: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Obat berhasil ditambahkan",
		"data":    map[string]interface{}{"id_obat": id},
	})
}

func (oc *ObatController) ListObat(c echo.Context) error {
	includeNonAktif := c.QueryParam("semua") == "true"
	list, err := oc.ObatService.ListObat(includeNonAktif)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve obat: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data obat berhasil diambil",
		"data":    list,
	})
}

func (oc *ObatController) GetObat(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	o, err := oc.ObatService.GetObat(id)
	if err != nil {
		if errors.Is(err, services.ErrObatNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve obat: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data obat berhasil diambil",
		"data": map[string]interface{}{
			"obat":        o,
			"status_stok": o.StatusStok(),
		},
	})
}

func (oc *ObatController) UpdateObat(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	var o models.Obat
	if err := c.Bind(&o); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	o.ID = id

	if err := oc.ObatService.UpdateObat(&o); err != nil {
		switch {
		case errors.Is(err, services.ErrObatNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.Is(err, services.ErrNilaiNegatif):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to update obat: " + err.Error(),
				"data":    nil,
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data obat berhasil diperbarui",
		"data":    o,
	})
}

// SoftDeleteObat menonaktifkan obat (soft delete).
func (oc *ObatController) SoftDeleteObat(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	if err := oc.ObatService.SoftDeleteObat(id); err != nil {
		if errors.Is(err, services.ErrObatNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to deactivate obat: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Obat berhasil dinonaktifkan",
		"data":    nil,
	})
}

// AdjustStok menambah, mengurangi, atau menetapkan stok obat.
// Body: {"op": "tambah"|"kurang"|"set", "jumlah": n}
func (oc *ObatController) AdjustStok(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	var req struct {
		Op     string `json:"op"`
		Jumlah int    `json:"jumlah"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	var o *models.Obat
	switch req.Op {
	case "tambah":
		o, err = oc.ObatService.TambahStok(id, req.Jumlah)
	case "kurang":
		o, err = oc.ObatService.KurangiStok(id, req.Jumlah)
	case "set":
		o, err = oc.ObatService.SetStok(id, req.Jumlah)
	default:
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "op harus tambah, kurang, atau set",
			"data":    nil,
		})
	}

	if err != nil {
		var kurang *models.ErrStokTidakCukup
		switch {
		case errors.Is(err, services.ErrObatNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		case errors.As(err, &kurang), errors.Is(err, services.ErrJumlahInvalid), errors.Is(err, services.ErrNilaiNegatif):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to adjust stok: " + err.Error(),
				"data":    nil,
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Stok berhasil diperbarui",
		"data": map[string]interface{}{
			"obat":        o,
			"status_stok": o.StatusStok(),
		},
	})
}
