package models

import "time"

// Status resep: pending saat ditulis dokter, processed setelah farmasi
// mengurangi stok. Resep diproses tepat satu kali.
const (
	ResepPending   = "pending"
	ResepProcessed = "processed"
)

type Resep struct {
	ID          int         `json:"id_resep" db:"ID_Resep"`
	IDKunjungan int         `json:"id_kunjungan" db:"ID_Kunjungan"`
	IDPasien    int         `json:"id_pasien" db:"ID_Pasien"`
	IDDokter    *int        `json:"id_dokter" db:"ID_Dokter"`
	Status      string      `json:"status" db:"Status"`
	ProcessedAt *time.Time  `json:"processed_at,omitempty" db:"Processed_At"`
	ProcessedBy *int        `json:"processed_by,omitempty" db:"Processed_By"`
	CreatedAt   time.Time   `json:"created_at" db:"Created_At"`
	Items       []ResepItem `json:"items,omitempty"`
}

// ResepItem adalah satu baris resep. IDObat null berarti obat luar yang tidak
// terdaftar; baris seperti itu informatif saja dan tidak menyentuh stok.
type ResepItem struct {
	ID          int    `json:"id_item" db:"ID_Item"`
	IDResep     int    `json:"id_resep" db:"ID_Resep"`
	IDObat      *int   `json:"id_obat" db:"ID_Obat"`
	NamaObat    string `json:"nama_obat" db:"Nama_Obat"`
	Jumlah      int    `json:"jumlah" db:"Jumlah"`
	AturanPakai string `json:"aturan_pakai" db:"Aturan_Pakai"`
}

// HasilDispense merangkum satu pemrosesan resep untuk respons API.
type HasilDispense struct {
	IDResep       int        `json:"id_resep"`
	IDKunjungan   int        `json:"id_kunjungan"`
	StatusResep   string     `json:"status_resep"`
	StatusKunjungan string   `json:"status_kunjungan"`
	NomorAntrian  int        `json:"nomor_antrian"`
	ProcessedAt   time.Time  `json:"processed_at"`
	Items         []ResepItem `json:"items"`
}
