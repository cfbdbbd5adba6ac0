package models

import "time"

// StatusLunas adalah satu-satunya status transaksi: record dibuat sekali saat
// pembayaran dan tidak pernah diubah.
const StatusLunas = "Lunas"

type Transaksi struct {
	ID              int       `json:"id_transaksi" db:"ID_Transaksi"`
	NoKwitansi      string    `json:"no_kwitansi" db:"No_Kwitansi"`
	IDKunjungan     int       `json:"id_kunjungan" db:"ID_Kunjungan"`
	IDPasien        int       `json:"id_pasien" db:"ID_Pasien"`
	BiayaKonsultasi float64   `json:"biaya_konsultasi" db:"Biaya_Konsultasi"`
	BiayaObat       float64   `json:"biaya_obat" db:"Biaya_Obat"`
	Diskon          float64   `json:"diskon" db:"Diskon"`
	Total           float64   `json:"total" db:"Total"`
	JumlahBayar     float64   `json:"jumlah_bayar" db:"Jumlah_Bayar"`
	Kembalian       float64   `json:"kembalian" db:"Kembalian"`
	MetodePembayaran string   `json:"metode_pembayaran" db:"Metode_Pembayaran"`
	Status          string    `json:"status" db:"Status"`
	CreatedAt       time.Time `json:"created_at" db:"Created_At"`

	// NomorAntrian disertakan di respons pembayaran untuk papan antrian; tidak disimpan.
	NomorAntrian int `json:"nomor_antrian,omitempty" db:"-"`
}
