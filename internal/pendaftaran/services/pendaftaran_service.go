package services

import (
	"database/sql"
	"errors"
	"time"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

// ErrSudahDalamAntrian menolak pendaftaran kedua selama kunjungan pertama belum selesai.
var ErrSudahDalamAntrian = errors.New("pasien sudah berada dalam antrian")

type PendaftaranService struct {
	DB *sql.DB
}

func NewPendaftaranService(db *sql.DB) *PendaftaranService {
	return &PendaftaranService{DB: db}
}

// RegisterKunjungan mendaftarkan pasien ke antrian hari ini dan mengembalikan
// kunjungan baru berstatus Menunggu. Nomor antrian dihitung per hari kalender,
// mulai dari 1, di bawah row lock supaya dua pendaftaran bersamaan tidak
// mendapat nomor yang sama.
func (s *PendaftaranService) RegisterKunjungan(idPasien int) (*kmodels.Kunjungan, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	// Pastikan pasiennya ada.
	var dummy int
	err = tx.QueryRow(`SELECT 1 FROM Pasien WHERE ID_Pasien = ?`, idPasien).Scan(&dummy)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrPasienNotFound
		}
		return nil, err
	}

	// Maksimal satu kunjungan non-terminal per pasien.
	var aktif int
	err = tx.QueryRow(`SELECT COUNT(*) FROM Kunjungan WHERE ID_Pasien = ? AND Status <> ? FOR UPDATE`,
		idPasien, string(kmodels.StatusSelesai)).Scan(&aktif)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if aktif > 0 {
		tx.Rollback()
		return nil, ErrSudahDalamAntrian
	}

	// Nomor antrian berikutnya untuk hari ini. FOR UPDATE menserialisasi
	// penetapan nomor antar transaksi yang berjalan bersamaan.
	now := time.Now()
	awalHari := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	akhirHari := awalHari.Add(24 * time.Hour)

	var maxNomor sql.NullInt64
	err = tx.QueryRow(`
		SELECT MAX(Nomor_Antrian) FROM Kunjungan
		WHERE Created_At >= ? AND Created_At < ? FOR UPDATE`,
		awalHari, akhirHari).Scan(&maxNomor)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	nomorBerikut := 1
	if maxNomor.Valid {
		nomorBerikut = int(maxNomor.Int64) + 1
	}

	res, err := tx.Exec(`
		INSERT INTO Kunjungan (ID_Pasien, Nomor_Antrian, Status, Created_At, Updated_At)
		VALUES (?, ?, ?, ?, ?)`,
		idPasien, nomorBerikut, string(kmodels.StatusMenunggu), now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	idKunjungan, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &kmodels.Kunjungan{
		ID:           int(idKunjungan),
		IDPasien:     idPasien,
		NomorAntrian: nomorBerikut,
		Status:       kmodels.StatusMenunggu,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
