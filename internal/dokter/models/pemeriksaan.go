package models

// ItemResepRequest adalah satu baris resep yang ditulis dokter. IDObat boleh kosong
// untuk obat luar yang tidak terdaftar; baris seperti itu tidak menyentuh stok.
type ItemResepRequest struct {
	IDObat     *int   `json:"id_obat,omitempty"`
	NamaObat   string `json:"nama_obat,omitempty"`
	Jumlah     int    `json:"jumlah"`
	AturanPakai string `json:"aturan_pakai"`
}

// PemeriksaanRequest berisi hasil konsultasi dokter untuk satu kunjungan.
type PemeriksaanRequest struct {
	Keluhan          string             `json:"keluhan"`
	HasilPemeriksaan string             `json:"hasil_pemeriksaan"`
	CatatanDokter    string             `json:"catatan_dokter"`
	PerluResep       bool               `json:"perlu_resep"`
	ItemResep        []ItemResepRequest `json:"item_resep,omitempty"`
}
