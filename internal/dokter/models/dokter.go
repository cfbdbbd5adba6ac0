package models

// Dokter mewakili data dokter. Dokter tidak pernah dihapus permanen,
// hanya dinonaktifkan (soft delete) supaya riwayat kunjungan tetap utuh.
type Dokter struct {
	ID           int    `json:"id_dokter" db:"ID_Dokter"`
	Nama         string `json:"nama" db:"Nama"`
	Spesialisasi string `json:"spesialisasi" db:"Spesialisasi"`
	NoTelp       string `json:"no_telp" db:"No_Telp"`
	Aktif        bool   `json:"aktif" db:"Aktif"`
}
