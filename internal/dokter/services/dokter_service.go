package services

import (
	"database/sql"
	"errors"

	"github.com/kliniksentosa/klinik-backend/internal/dokter/models"
)

var ErrDokterNotFound = errors.New("dokter tidak ditemukan")

type DokterService struct {
	DB *sql.DB
}

func NewDokterService(db *sql.DB) *DokterService {
	return &DokterService{DB: db}
}

func (s *DokterService) CreateDokter(d *models.Dokter) (int64, error) {
	res, err := s.DB.Exec(`
		INSERT INTO Dokter (Nama, Spesialisasi, No_Telp, Aktif) VALUES (?, ?, ?, TRUE)`,
		d.Nama, d.Spesialisasi, d.NoTelp,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListDokter mengambil dokter; includeNonAktif menyertakan dokter yang sudah dinonaktifkan.
func (s *DokterService) ListDokter(includeNonAktif bool) ([]*models.Dokter, error) {
	query := `SELECT ID_Dokter, Nama, Spesialisasi, No_Telp, Aktif FROM Dokter`
	if !includeNonAktif {
		query += ` WHERE Aktif = TRUE`
	}
	query += ` ORDER BY Nama ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Dokter
	for rows.Next() {
		var d models.Dokter
		if err := rows.Scan(&d.ID, &d.Nama, &d.Spesialisasi, &d.NoTelp, &d.Aktif); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

func (s *DokterService) GetDokter(id int) (*models.Dokter, error) {
	row := s.DB.QueryRow(`SELECT ID_Dokter, Nama, Spesialisasi, No_Telp, Aktif FROM Dokter WHERE ID_Dokter = ?`, id)
	var d models.Dokter
	err := row.Scan(&d.ID, &d.Nama, &d.Spesialisasi, &d.NoTelp, &d.Aktif)
	if err == sql.ErrNoRows {
		return nil, ErrDokterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DokterService) UpdateDokter(d *models.Dokter) error {
	res, err := s.DB.Exec(`
		UPDATE Dokter SET Nama = ?, Spesialisasi = ?, No_Telp = ? WHERE ID_Dokter = ?`,
		d.Nama, d.Spesialisasi, d.NoTelp, d.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDokterNotFound
	}
	return nil
}

// SoftDeleteDokter menonaktifkan dokter tanpa menghapus datanya.
func (s *DokterService) SoftDeleteDokter(id int) error {
	res, err := s.DB.Exec(`UPDATE Dokter SET Aktif = FALSE WHERE ID_Dokter = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDokterNotFound
	}
	return nil
}
