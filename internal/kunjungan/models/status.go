package models

import "fmt"

// Status adalah tahapan kunjungan pasien. Alurnya satu arah:
//
//	Menunggu → Diperiksa → Farmasi → Kasir → Pengambilan_Obat → Selesai
//
// Kunjungan tanpa resep melompat dari Diperiksa langsung ke Selesai.
type Status string

const (
	StatusMenunggu        Status = "Menunggu"
	StatusDiperiksa       Status = "Diperiksa"
	StatusFarmasi         Status = "Farmasi"
	StatusKasir           Status = "Kasir"
	StatusPengambilanObat Status = "Pengambilan_Obat"
	StatusSelesai         Status = "Selesai"
)

// transitions memetakan setiap status ke status lanjutan yang diizinkan.
var transitions = map[Status][]Status{
	StatusMenunggu:        {StatusDiperiksa},
	StatusDiperiksa:       {StatusFarmasi, StatusSelesai},
	StatusFarmasi:         {StatusKasir},
	StatusKasir:           {StatusPengambilanObat},
	StatusPengambilanObat: {StatusSelesai},
	StatusSelesai:         {},
}

// Valid melaporkan apakah s adalah salah satu status yang dikenal.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal melaporkan apakah kunjungan sudah selesai dan tidak boleh berubah lagi.
func (s Status) Terminal() bool {
	return s == StatusSelesai
}

// CanAdvanceTo melaporkan apakah transisi dari s ke next diizinkan.
// Tidak ada transisi mundur.
func (s Status) CanAdvanceTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ErrInvalidTransition dikembalikan saat sebuah operasi dipanggil pada kunjungan
// yang statusnya tidak mengizinkan transisi tersebut. Kunjungan tidak berubah.
type ErrInvalidTransition struct {
	IDKunjungan int
	Dari        Status
	Ke          Status
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("kunjungan %d: transisi status tidak valid dari %s ke %s",
		e.IDKunjungan, e.Dari, e.Ke)
}

// Advance memvalidasi lalu mengembalikan status tujuan. Dipakai di dalam transaksi
// setiap service yang menggeser status kunjungan.
func Advance(idKunjungan int, dari, ke Status) (Status, error) {
	if !dari.CanAdvanceTo(ke) {
		return dari, &ErrInvalidTransition{IDKunjungan: idKunjungan, Dari: dari, Ke: ke}
	}
	return ke, nil
}
