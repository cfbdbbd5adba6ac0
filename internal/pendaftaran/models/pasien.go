package models

import "time"

// Status pasien menentukan kebijakan diskon saat pembayaran.
const (
	StatusPasienUmum     = "umum"
	StatusPasienBPJS     = "bpjs"
	StatusPasienAsuransi = "asuransi"
)

// Pasien mewakili data pasien.
type Pasien struct {
	ID                int        `json:"id_pasien" db:"ID_Pasien"`
	Nama              string     `json:"nama" db:"Nama"`
	Alamat            string     `json:"alamat" db:"Alamat"`
	NoTelp            string     `json:"no_telp" db:"No_Telp"`
	TanggalLahir      *time.Time `json:"tanggal_lahir,omitempty" db:"Tanggal_Lahir"`
	JenisKelamin      *string    `json:"jenis_kelamin,omitempty" db:"Jenis_Kelamin"`
	StatusPasien      string     `json:"status_pasien" db:"Status_Pasien"`
	TanggalRegistrasi time.Time  `json:"tanggal_registrasi" db:"Tanggal_Registrasi"`
}

// StatusPasienValid melaporkan apakah status termasuk kategori yang dikenal.
func StatusPasienValid(status string) bool {
	switch status {
	case StatusPasienUmum, StatusPasienBPJS, StatusPasienAsuransi:
		return true
	}
	return false
}
