package models

import "fmt"

// Status stok turunan, hanya klasifikasi sisi baca dan tidak pernah disimpan.
const (
	StokAman    = "aman"    // stok > 20
	StokMenipis = "menipis" // 10 < stok <= 20
	StokHabis   = "habis"   // stok <= 10
)

// Obat merepresentasikan record di tabel Obat. Stok tidak pernah negatif;
// obat tidak dihapus permanen, hanya dinonaktifkan.
type Obat struct {
	ID          int     `json:"id_obat" db:"ID_Obat"`
	Nama        string  `json:"nama" db:"Nama"`
	Stok        int     `json:"stok" db:"Stok"`
	HargaSatuan float64 `json:"harga_satuan" db:"Harga_Satuan"`
	Satuan      string  `json:"satuan" db:"Satuan"`
	Jenis       string  `json:"jenis" db:"Jenis"`
	Aktif       bool    `json:"aktif" db:"Aktif"`
}

// StatusStok mengklasifikasikan level stok untuk tampilan farmasi.
func (o *Obat) StatusStok() string {
	return KlasifikasiStok(o.Stok)
}

func KlasifikasiStok(stok int) string {
	switch {
	case stok > 20:
		return StokAman
	case stok > 10:
		return StokMenipis
	default:
		return StokHabis
	}
}

// ErrStokTidakCukup dikembalikan saat pengurangan stok akan membuat stok negatif.
// Stok yang tersimpan tidak berubah.
type ErrStokTidakCukup struct {
	IDObat   int
	NamaObat string
	Diminta  int
	Tersedia int
}

func (e *ErrStokTidakCukup) Error() string {
	return fmt.Sprintf("stok obat %s tidak mencukupi: diminta %d, tersedia %d",
		e.NamaObat, e.Diminta, e.Tersedia)
}
