package models

import (
	pmodels "github.com/kliniksentosa/klinik-backend/internal/pendaftaran/models"
)

// ItemTagihan adalah satu baris obat pada tagihan, dinilai dengan harga obat
// saat ini (bukan snapshot harga saat resep ditulis).
type ItemTagihan struct {
	NamaObat    string  `json:"nama_obat"`
	Jumlah      int     `json:"jumlah"`
	HargaSatuan float64 `json:"harga_satuan"`
	Subtotal    float64 `json:"subtotal"`
}

// RincianTagihan menyimpan pecahan tagihan untuk kwitansi dan laporan,
// bukan hanya angka akhirnya.
type RincianTagihan struct {
	StatusPasien    string        `json:"status_pasien"`
	BiayaKonsultasi float64       `json:"biaya_konsultasi"`
	BiayaObat       float64       `json:"biaya_obat"`
	Subtotal        float64       `json:"subtotal"`
	Diskon          float64       `json:"diskon"`
	Total           float64       `json:"total"`
	Items           []ItemTagihan `json:"items"`
}

// persenDiskon mengembalikan porsi subtotal yang ditanggung penjamin
// berdasarkan status pasien.
func persenDiskon(statusPasien string) float64 {
	switch statusPasien {
	case pmodels.StatusPasienBPJS:
		return 1.0
	case pmodels.StatusPasienAsuransi:
		return 0.8
	default: // umum
		return 0
	}
}

// HitungTagihan menghitung tagihan satu peristiwa pembayaran: total harga obat
// dari seluruh resep processed yang belum dibayar, ditambah biaya konsultasi
// sekali, dikurangi diskon sesuai status pasien.
func HitungTagihan(statusPasien string, biayaKonsultasi float64, items []ItemTagihan) RincianTagihan {
	var biayaObat float64
	for _, item := range items {
		biayaObat += item.Subtotal
	}

	subtotal := biayaObat + biayaKonsultasi
	diskon := subtotal * persenDiskon(statusPasien)

	return RincianTagihan{
		StatusPasien:    statusPasien,
		BiayaKonsultasi: biayaKonsultasi,
		BiayaObat:       biayaObat,
		Subtotal:        subtotal,
		Diskon:          diskon,
		Total:           subtotal - diskon,
		Items:           items,
	}
}
