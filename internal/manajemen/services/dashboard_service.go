package services

import (
	"database/sql"
	"time"

	farmasiModels "github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
	kunjunganModels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

type RingkasanObat struct {
	ID   int    `json:"id_obat"`
	Nama string `json:"nama"`
	Stok int    `json:"stok"`
}

type Dashboard struct {
	Tanggal            string          `json:"tanggal"`
	KunjunganPerStatus map[string]int  `json:"kunjungan_per_status"`
	TotalKunjungan     int             `json:"total_kunjungan"`
	ObatMenipis        []RingkasanObat `json:"obat_menipis"`
	ObatHabis          []RingkasanObat `json:"obat_habis"`
	PendapatanHariIni  float64         `json:"pendapatan_hari_ini"`
	PendapatanBulanIni float64         `json:"pendapatan_bulan_ini"`
}

type DashboardService struct {
	DB *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// GetDashboard merangkum kondisi klinik hari ini: antrian per status,
// obat yang perlu diwaspadai, dan pendapatan kasir.
func (s *DashboardService) GetDashboard() (*Dashboard, error) {
	now := time.Now()
	awalHari := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	awalBulan := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	d := &Dashboard{
		Tanggal:            awalHari.Format("2006-01-02"),
		KunjunganPerStatus: make(map[string]int),
		ObatMenipis:        []RingkasanObat{},
		ObatHabis:          []RingkasanObat{},
	}

	rows, err := s.DB.Query(`
		SELECT Status, COUNT(*) FROM Kunjungan
		WHERE Created_At >= ? AND Created_At < ?
		GROUP BY Status`, awalHari, awalHari.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var jumlah int
		if err := rows.Scan(&status, &jumlah); err != nil {
			return nil, err
		}
		d.KunjunganPerStatus[status] = jumlah
		d.TotalKunjungan += jumlah
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Pastikan setiap status muncul di ringkasan walau nol.
	for _, status := range []kunjunganModels.Status{
		kunjunganModels.StatusMenunggu,
		kunjunganModels.StatusDiperiksa,
		kunjunganModels.StatusFarmasi,
		kunjunganModels.StatusKasir,
		kunjunganModels.StatusPengambilanObat,
		kunjunganModels.StatusSelesai,
	} {
		if _, ok := d.KunjunganPerStatus[string(status)]; !ok {
			d.KunjunganPerStatus[string(status)] = 0
		}
	}

	obatRows, err := s.DB.Query(`
		SELECT ID_Obat, Nama, Stok FROM Obat
		WHERE Aktif = TRUE AND Stok <= ? ORDER BY Stok ASC, Nama ASC`, 20)
	if err != nil {
		return nil, err
	}
	defer obatRows.Close()
	for obatRows.Next() {
		var o RingkasanObat
		if err := obatRows.Scan(&o.ID, &o.Nama, &o.Stok); err != nil {
			return nil, err
		}
		switch farmasiModels.KlasifikasiStok(o.Stok) {
		case farmasiModels.StokHabis:
			d.ObatHabis = append(d.ObatHabis, o)
		default:
			d.ObatMenipis = append(d.ObatMenipis, o)
		}
	}
	if err := obatRows.Err(); err != nil {
		return nil, err
	}

	if err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(Total), 0) FROM Transaksi
		WHERE Created_At >= ? AND Created_At < ?`, awalHari, awalHari.AddDate(0, 0, 1),
	).Scan(&d.PendapatanHariIni); err != nil {
		return nil, err
	}

	if err := s.DB.QueryRow(`
		SELECT COALESCE(SUM(Total), 0) FROM Transaksi
		WHERE Created_At >= ? AND Created_At < ?`, awalBulan, awalBulan.AddDate(0, 1, 0),
	).Scan(&d.PendapatanBulanIni); err != nil {
		return nil, err
	}

	return d, nil
}
