package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kliniksentosa/klinik-backend/internal/kasir/models"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

var (
	ErrKunjunganNotFound = errors.New("kunjungan tidak ditemukan")
	ErrPasienNotFound    = errors.New("pasien tidak ditemukan")
	// ErrTidakAdaTagihan: tidak ada resep processed yang belum dibayar.
	ErrTidakAdaTagihan = errors.New("tidak ada tagihan yang harus dibayar")
	ErrBayarKurang     = errors.New("jumlah bayar kurang dari total tagihan")
)

type BillingService struct {
	DB              *sql.DB
	BiayaKonsultasi float64
}

func NewBillingService(db *sql.DB, biayaKonsultasi float64) *BillingService {
	return &BillingService{DB: db, BiayaKonsultasi: biayaKonsultasi}
}

// itemTagihanPasien mengambil seluruh item resep processed milik pasien yang
// kunjungannya belum punya transaksi, dinilai dengan harga obat saat ini.
// Item obat luar (id_obat NULL) tercantum tanpa harga.
func itemTagihanPasien(q interface {
	Query(string, ...interface{}) (*sql.Rows, error)
}, idPasien int) ([]models.ItemTagihan, error) {
	rows, err := q.Query(`
		SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan
		FROM Resep r
		JOIN Resep_Item ri ON ri.ID_Resep = r.ID_Resep
		LEFT JOIN Obat o ON o.ID_Obat = ri.ID_Obat
		WHERE r.ID_Pasien = ?
			AND r.Status = 'processed'
			AND NOT EXISTS (SELECT 1 FROM Transaksi t WHERE t.ID_Kunjungan = r.ID_Kunjungan)
		ORDER BY r.Created_At ASC, ri.ID_Item ASC`, idPasien)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ItemTagihan
	for rows.Next() {
		var namaItem string
		var namaObat sql.NullString
		var jumlah int
		var harga sql.NullFloat64
		if err := rows.Scan(&namaItem, &namaObat, &jumlah, &harga); err != nil {
			return nil, err
		}

		item := models.ItemTagihan{NamaObat: namaItem, Jumlah: jumlah}
		if namaObat.Valid {
			item.NamaObat = namaObat.String
		}
		if harga.Valid {
			item.HargaSatuan = harga.Float64
			item.Subtotal = harga.Float64 * float64(jumlah)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ComputeTagihan menghitung tagihan berjalan seorang pasien tanpa mencatat apa pun.
func (s *BillingService) ComputeTagihan(idPasien int) (*models.RincianTagihan, error) {
	var statusPasien string
	err := s.DB.QueryRow(`SELECT Status_Pasien FROM Pasien WHERE ID_Pasien = ?`, idPasien).Scan(&statusPasien)
	if err == sql.ErrNoRows {
		return nil, ErrPasienNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := itemTagihanPasien(s.DB, idPasien)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrTidakAdaTagihan
	}

	rincian := models.HitungTagihan(statusPasien, s.BiayaKonsultasi, items)
	return &rincian, nil
}

// Pay mencatat pembayaran satu kunjungan: menghitung ulang tagihan di dalam
// transaksi, menulis Transaksi berstatus Lunas, dan menggeser kunjungan dari
// Kasir ke Pengambilan_Obat. Transaksi tidak pernah diubah setelah dibuat.
func (s *BillingService) Pay(idKunjungan int, jumlahBayar float64, metode string) (*models.Transaksi, error) {
	if metode == "" {
		metode = "tunai"
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	var statusLama string
	var idPasien, nomorAntrian int
	err = tx.QueryRow(`SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan WHERE ID_Kunjungan = ? FOR UPDATE`,
		idKunjungan).Scan(&statusLama, &idPasien, &nomorAntrian)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrKunjunganNotFound
		}
		return nil, err
	}

	if kmodels.Status(statusLama) != kmodels.StatusKasir {
		tx.Rollback()
		return nil, fmt.Errorf("%w: kunjungan %d berstatus %s", ErrTidakAdaTagihan, idKunjungan, statusLama)
	}

	var statusPasien string
	if err := tx.QueryRow(`SELECT Status_Pasien FROM Pasien WHERE ID_Pasien = ?`, idPasien).Scan(&statusPasien); err != nil {
		tx.Rollback()
		return nil, err
	}

	items, err := itemTagihanPasien(tx, idPasien)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	rincian := models.HitungTagihan(statusPasien, s.BiayaKonsultasi, items)

	if jumlahBayar < rincian.Total {
		tx.Rollback()
		return nil, fmt.Errorf("%w: total %.0f, dibayar %.0f", ErrBayarKurang, rincian.Total, jumlahBayar)
	}

	statusBaru, err := kmodels.Advance(idKunjungan, kmodels.Status(statusLama), kmodels.StatusPengambilanObat)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	trx := &models.Transaksi{
		NoKwitansi:       uuid.NewString(),
		IDKunjungan:      idKunjungan,
		IDPasien:         idPasien,
		BiayaKonsultasi:  rincian.BiayaKonsultasi,
		BiayaObat:        rincian.BiayaObat,
		Diskon:           rincian.Diskon,
		Total:            rincian.Total,
		JumlahBayar:      jumlahBayar,
		Kembalian:        jumlahBayar - rincian.Total,
		MetodePembayaran: metode,
		Status:           models.StatusLunas,
		CreatedAt:        now,
		NomorAntrian:     nomorAntrian,
	}

	res, err := tx.Exec(`
		INSERT INTO Transaksi
			(No_Kwitansi, ID_Kunjungan, ID_Pasien, Biaya_Konsultasi, Biaya_Obat, Diskon, Total,
			 Jumlah_Bayar, Kembalian, Metode_Pembayaran, Status, Created_At)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trx.NoKwitansi, trx.IDKunjungan, trx.IDPasien, trx.BiayaKonsultasi, trx.BiayaObat,
		trx.Diskon, trx.Total, trx.JumlahBayar, trx.Kembalian, trx.MetodePembayaran,
		trx.Status, trx.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	idTransaksi, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	trx.ID = int(idTransaksi)

	if _, err := tx.Exec(`UPDATE Kunjungan SET Status = ?, Updated_At = ? WHERE ID_Kunjungan = ?`,
		string(statusBaru), now, idKunjungan); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return trx, nil
}

// ListTransaksi mengambil transaksi terbaru, difilter opsional per tanggal.
func (s *BillingService) ListTransaksi(tanggal *time.Time) ([]*models.Transaksi, error) {
	query := `
		SELECT ID_Transaksi, No_Kwitansi, ID_Kunjungan, ID_Pasien, Biaya_Konsultasi, Biaya_Obat,
			Diskon, Total, Jumlah_Bayar, Kembalian, Metode_Pembayaran, Status, Created_At
		FROM Transaksi`
	var args []interface{}
	if tanggal != nil {
		awalHari := time.Date(tanggal.Year(), tanggal.Month(), tanggal.Day(), 0, 0, 0, 0, tanggal.Location())
		query += ` WHERE Created_At >= ? AND Created_At < ?`
		args = append(args, awalHari, awalHari.Add(24*time.Hour))
	}
	query += ` ORDER BY Created_At DESC`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Transaksi
	for rows.Next() {
		var t models.Transaksi
		if err := rows.Scan(&t.ID, &t.NoKwitansi, &t.IDKunjungan, &t.IDPasien, &t.BiayaKonsultasi,
			&t.BiayaObat, &t.Diskon, &t.Total, &t.JumlahBayar, &t.Kembalian,
			&t.MetodePembayaran, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
