package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/internal/dokter/models"
	"github.com/kliniksentosa/klinik-backend/internal/dokter/services"
)

type DokterController struct {
	DokterService *services.DokterService
}

func NewDokterController(service *services.DokterService) *DokterController {
	return &DokterController{DokterService: service}
}

func (dc *DokterController) CreateDokter(c echo.Context) error {
	var d models.Dokter
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	if d.Nama == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "nama is required",
			"data":    nil,
		})
	}

	id, err := dc.DokterService.CreateDokter(&d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to create dokter: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Dokter berhasil ditambahkan",
		"data":    map[string]interface{}{"id_dokter": id},
	})
}

func (dc *DokterController) ListDokter(c echo.Context) error {
	includeNonAktif := c.QueryParam("semua") == "true"
	list, err := dc.DokterService.ListDokter(includeNonAktif)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve dokter: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data dokter berhasil diambil",
		"data":    list,
	})
}

func (dc *DokterController) GetDokter(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	d, err := dc.DokterService.GetDokter(id)
	if err != nil {
		if errors.Is(err, services.ErrDokterNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to retrieve dokter: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data dokter berhasil diambil",
		"data":    d,
	})
}

func (dc *DokterController) UpdateDokter(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	var d models.Dokter
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}
	d.ID = id

	if err := dc.DokterService.UpdateDokter(&d); err != nil {
		if errors.Is(err, services.ErrDokterNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to update dokter: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Data dokter berhasil diperbarui",
		"data":    d,
	})
}

// SoftDeleteDokter menonaktifkan dokter (soft delete).
func (dc *DokterController) SoftDeleteDokter(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "id must be a number",
			"data":    nil,
		})
	}

	if err := dc.DokterService.SoftDeleteDokter(id); err != nil {
		if errors.Is(err, services.ErrDokterNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": err.Error(),
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to deactivate dokter: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Dokter berhasil dinonaktifkan",
		"data":    nil,
	})
}
