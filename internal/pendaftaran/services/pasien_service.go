package services

import (
	"database/sql"
	"errors"
	"time"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/internal/pendaftaran/models"
)

var (
	ErrPasienNotFound = errors.New("pasien tidak ditemukan")
	// ErrPasienMasihAntri menolak hard delete selama pasien masih punya kunjungan aktif.
	ErrPasienMasihAntri = errors.New("pasien masih memiliki kunjungan aktif")
	ErrStatusPasienInvalid = errors.New("status_pasien harus umum, bpjs, atau asuransi")
)

type PasienService struct {
	DB *sql.DB
}

func NewPasienService(db *sql.DB) *PasienService {
	return &PasienService{DB: db}
}

func (s *PasienService) CreatePasien(p *models.Pasien) (int64, error) {
	if p.StatusPasien == "" {
		p.StatusPasien = models.StatusPasienUmum
	}
	if !models.StatusPasienValid(p.StatusPasien) {
		return 0, ErrStatusPasienInvalid
	}

	res, err := s.DB.Exec(`
		INSERT INTO Pasien (Nama, Alamat, No_Telp, Tanggal_Lahir, Jenis_Kelamin, Status_Pasien, Tanggal_Registrasi)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Nama, p.Alamat, p.NoTelp, p.TanggalLahir, p.JenisKelamin, p.StatusPasien, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *PasienService) GetPasien(id int) (*models.Pasien, error) {
	row := s.DB.QueryRow(`
		SELECT ID_Pasien, Nama, Alamat, No_Telp, Tanggal_Lahir, Jenis_Kelamin, Status_Pasien, Tanggal_Registrasi
		FROM Pasien WHERE ID_Pasien = ?`, id)

	var p models.Pasien
	var tanggalLahir sql.NullTime
	var jenisKelamin sql.NullString
	err := row.Scan(&p.ID, &p.Nama, &p.Alamat, &p.NoTelp, &tanggalLahir, &jenisKelamin, &p.StatusPasien, &p.TanggalRegistrasi)
	if err == sql.ErrNoRows {
		return nil, ErrPasienNotFound
	}
	if err != nil {
		return nil, err
	}
	if tanggalLahir.Valid {
		p.TanggalLahir = &tanggalLahir.Time
	}
	if jenisKelamin.Valid {
		p.JenisKelamin = &jenisKelamin.String
	}
	return &p, nil
}

func (s *PasienService) ListPasien() ([]*models.Pasien, error) {
	rows, err := s.DB.Query(`
		SELECT ID_Pasien, Nama, Alamat, No_Telp, Tanggal_Lahir, Jenis_Kelamin, Status_Pasien, Tanggal_Registrasi
		FROM Pasien ORDER BY Tanggal_Registrasi DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Pasien
	for rows.Next() {
		var p models.Pasien
		var tanggalLahir sql.NullTime
		var jenisKelamin sql.NullString
		if err := rows.Scan(&p.ID, &p.Nama, &p.Alamat, &p.NoTelp, &tanggalLahir, &jenisKelamin, &p.StatusPasien, &p.TanggalRegistrasi); err != nil {
			return nil, err
		}
		if tanggalLahir.Valid {
			p.TanggalLahir = &tanggalLahir.Time
		}
		if jenisKelamin.Valid {
			p.JenisKelamin = &jenisKelamin.String
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (s *PasienService) UpdatePasien(p *models.Pasien) error {
	if !models.StatusPasienValid(p.StatusPasien) {
		return ErrStatusPasienInvalid
	}
	res, err := s.DB.Exec(`
		UPDATE Pasien SET Nama = ?, Alamat = ?, No_Telp = ?, Tanggal_Lahir = ?, Jenis_Kelamin = ?, Status_Pasien = ?
		WHERE ID_Pasien = ?`,
		p.Nama, p.Alamat, p.NoTelp, p.TanggalLahir, p.JenisKelamin, p.StatusPasien, p.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPasienNotFound
	}
	return nil
}

// DeletePasien menghapus pasien secara permanen (aturan bisnis: pasien hard delete,
// berbeda dengan dokter/obat yang hanya dinonaktifkan). Ditolak selama pasien masih
// memiliki kunjungan yang belum selesai.
func (s *PasienService) DeletePasien(id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}

	var aktif int
	err = tx.QueryRow(`SELECT COUNT(*) FROM Kunjungan WHERE ID_Pasien = ? AND Status <> ?`,
		id, string(kmodels.StatusSelesai)).Scan(&aktif)
	if err != nil {
		tx.Rollback()
		return err
	}
	if aktif > 0 {
		tx.Rollback()
		return ErrPasienMasihAntri
	}

	res, err := tx.Exec(`DELETE FROM Pasien WHERE ID_Pasien = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return ErrPasienNotFound
	}

	return tx.Commit()
}
