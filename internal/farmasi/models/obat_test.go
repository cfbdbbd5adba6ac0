package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKlasifikasiStok(t *testing.T) {
	cases := []struct {
		stok   int
		status string
	}{
		{100, StokAman},
		{21, StokAman},
		{20, StokMenipis},
		{11, StokMenipis},
		{10, StokHabis},
		{1, StokHabis},
		{0, StokHabis},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, KlasifikasiStok(tc.stok), "stok %d", tc.stok)
	}
}

func TestErrStokTidakCukup(t *testing.T) {
	err := &ErrStokTidakCukup{IDObat: 3, NamaObat: "Paracetamol 500mg", Diminta: 5, Tersedia: 3}
	assert.Contains(t, err.Error(), "Paracetamol 500mg")
	assert.Contains(t, err.Error(), "diminta 5")
	assert.Contains(t, err.Error(), "tersedia 3")
}
