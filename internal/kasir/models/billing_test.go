package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pmodels "github.com/kliniksentosa/klinik-backend/internal/pendaftaran/models"
)

func TestHitungTagihan(t *testing.T) {
	// Subtotal 65000: konsultasi 15000 + obat 50000.
	items := []ItemTagihan{
		{NamaObat: "Paracetamol", Jumlah: 10, HargaSatuan: 2000, Subtotal: 20000},
		{NamaObat: "Amoxicillin", Jumlah: 10, HargaSatuan: 3000, Subtotal: 30000},
	}

	t.Run("pasien bpjs ditanggung penuh", func(t *testing.T) {
		r := HitungTagihan(pmodels.StatusPasienBPJS, 15000, items)
		assert.Equal(t, 65000.0, r.Subtotal)
		assert.Equal(t, 65000.0, r.Diskon)
		assert.Equal(t, 0.0, r.Total)
	})

	t.Run("pasien asuransi ditanggung 80 persen", func(t *testing.T) {
		r := HitungTagihan(pmodels.StatusPasienAsuransi, 15000, items)
		assert.Equal(t, 65000.0, r.Subtotal)
		assert.Equal(t, 52000.0, r.Diskon)
		assert.Equal(t, 13000.0, r.Total)
	})

	t.Run("pasien umum tanpa diskon", func(t *testing.T) {
		r := HitungTagihan(pmodels.StatusPasienUmum, 15000, items)
		assert.Equal(t, 0.0, r.Diskon)
		assert.Equal(t, 65000.0, r.Total)
	})

	t.Run("status tak dikenal diperlakukan sebagai umum", func(t *testing.T) {
		r := HitungTagihan("", 15000, items)
		assert.Equal(t, 0.0, r.Diskon)
		assert.Equal(t, 65000.0, r.Total)
	})

	t.Run("rincian tetap utuh untuk kwitansi", func(t *testing.T) {
		r := HitungTagihan(pmodels.StatusPasienUmum, 15000, items)
		assert.Equal(t, 15000.0, r.BiayaKonsultasi)
		assert.Equal(t, 50000.0, r.BiayaObat)
		assert.Len(t, r.Items, 2)
	})

	t.Run("tanpa item obat hanya biaya konsultasi", func(t *testing.T) {
		r := HitungTagihan(pmodels.StatusPasienUmum, 15000, nil)
		assert.Equal(t, 0.0, r.BiayaObat)
		assert.Equal(t, 15000.0, r.Total)
	})
}
