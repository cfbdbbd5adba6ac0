package models

import "time"

// Kunjungan mewakili satu kedatangan pasien ke klinik, dari pendaftaran sampai selesai.
type Kunjungan struct {
	ID           int        `json:"id_kunjungan" db:"ID_Kunjungan"`
	IDPasien     int        `json:"id_pasien" db:"ID_Pasien"`
	IDDokter     *int       `json:"id_dokter" db:"ID_Dokter"`
	NomorAntrian int        `json:"nomor_antrian" db:"Nomor_Antrian"`
	Status       Status     `json:"status" db:"Status"`

	// Hasil screening suster
	TinggiBadan   *float64 `json:"tinggi_badan,omitempty" db:"Tinggi_Badan"`
	BeratBadan    *float64 `json:"berat_badan,omitempty" db:"Berat_Badan"`
	Tensi         *string  `json:"tensi,omitempty" db:"Tensi"`
	SuhuTubuh     *float64 `json:"suhu_tubuh,omitempty" db:"Suhu_Tubuh"`
	KeluhanSuster *string  `json:"keluhan_suster,omitempty" db:"Keluhan_Suster"`

	// Hasil pemeriksaan dokter
	Keluhan          *string `json:"keluhan,omitempty" db:"Keluhan"`
	HasilPemeriksaan *string `json:"hasil_pemeriksaan,omitempty" db:"Hasil_Pemeriksaan"`
	CatatanDokter    *string `json:"catatan_dokter,omitempty" db:"Catatan_Dokter"`
	PerluResep       bool    `json:"perlu_resep" db:"Perlu_Resep"`

	CreatedAt time.Time `json:"created_at" db:"Created_At"`
	UpdatedAt time.Time `json:"updated_at" db:"Updated_At"`
}
