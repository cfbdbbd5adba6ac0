package models

// Screening berisi hasil pemeriksaan awal oleh suster sebelum pasien masuk ke dokter.
type Screening struct {
	TinggiBadan   *float64 `json:"tinggi_badan"`
	BeratBadan    *float64 `json:"berat_badan"`
	Tensi         *string  `json:"tensi"`
	SuhuTubuh     *float64 `json:"suhu_tubuh"`
	KeluhanSuster *string  `json:"keluhan_suster"`
}
