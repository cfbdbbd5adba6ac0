package services

import (
	"database/sql"
	"errors"

	"github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
)

var (
	ErrObatNotFound  = errors.New("obat tidak ditemukan")
	ErrJumlahInvalid = errors.New("jumlah harus bilangan positif")
	ErrNilaiNegatif  = errors.New("stok dan harga tidak boleh negatif")
)

type ObatService struct {
	DB *sql.DB
}

func NewObatService(db *sql.DB) *ObatService {
	return &ObatService{DB: db}
}

func (s *ObatService) CreateObat(o *models.Obat) (int64, error) {
	if o.Stok < 0 || o.HargaSatuan < 0 {
		return 0, ErrNilaiNegatif
	}
	res, err := s.DB.Exec(`
		INSERT INTO Obat (Nama, Stok, Harga_Satuan, Satuan, Jenis, Aktif)
		VALUES (?, ?, ?, ?, ?, TRUE)`,
		o.Nama, o.Stok, o.HargaSatuan, o.Satuan, o.Jenis,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *ObatService) GetObat(id int) (*models.Obat, error) {
	row := s.DB.QueryRow(`
		SELECT ID_Obat, Nama, Stok, Harga_Satuan, Satuan, Jenis, Aktif
		FROM Obat WHERE ID_Obat = ?`, id)
	var o models.Obat
	err := row.Scan(&o.ID, &o.Nama, &o.Stok, &o.HargaSatuan, &o.Satuan, &o.Jenis, &o.Aktif)
	if err == sql.ErrNoRows {
		return nil, ErrObatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListObat mengambil daftar obat aktif beserta klasifikasi stoknya.
func (s *ObatService) ListObat(includeNonAktif bool) ([]map[string]interface{}, error) {
	query := `SELECT ID_Obat, Nama, Stok, Harga_Satuan, Satuan, Jenis, Aktif FROM Obat`
	if !includeNonAktif {
		query += ` WHERE Aktif = TRUE`
	}
	query += ` ORDER BY Nama ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var o models.Obat
		if err := rows.Scan(&o.ID, &o.Nama, &o.Stok, &o.HargaSatuan, &o.Satuan, &o.Jenis, &o.Aktif); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"id_obat":      o.ID,
			"nama":         o.Nama,
			"stok":         o.Stok,
			"harga_satuan": o.HargaSatuan,
			"satuan":       o.Satuan,
			"jenis":        o.Jenis,
			"aktif":        o.Aktif,
			"status_stok":  o.StatusStok(),
		})
	}
	return result, rows.Err()
}

func (s *ObatService) UpdateObat(o *models.Obat) error {
	if o.HargaSatuan < 0 {
		return ErrNilaiNegatif
	}
	res, err := s.DB.Exec(`
		UPDATE Obat SET Nama = ?, Harga_Satuan = ?, Satuan = ?, Jenis = ? WHERE ID_Obat = ?`,
		o.Nama, o.HargaSatuan, o.Satuan, o.Jenis, o.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrObatNotFound
	}
	return nil
}

// SoftDeleteObat menonaktifkan obat tanpa menghapus datanya.
func (s *ObatService) SoftDeleteObat(id int) error {
	res, err := s.DB.Exec(`UPDATE Obat SET Aktif = FALSE WHERE ID_Obat = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrObatNotFound
	}
	return nil
}

// TambahStok menambah stok obat (restock). Jumlah harus positif.
func (s *ObatService) TambahStok(id, jumlah int) (*models.Obat, error) {
	if jumlah <= 0 {
		return nil, ErrJumlahInvalid
	}
	return s.mutasiStok(id, func(stok int) (int, error) {
		return stok + jumlah, nil
	})
}

// KurangiStok mengurangi stok obat. Gagal dengan ErrStokTidakCukup bila hasilnya
// akan negatif; stok tersimpan tidak berubah.
func (s *ObatService) KurangiStok(id, jumlah int) (*models.Obat, error) {
	if jumlah <= 0 {
		return nil, ErrJumlahInvalid
	}
	return s.mutasiStok(id, func(stok int) (int, error) {
		if jumlah > stok {
			return stok, &models.ErrStokTidakCukup{IDObat: id, Diminta: jumlah, Tersedia: stok}
		}
		return stok - jumlah, nil
	})
}

// SetStok menetapkan stok obat ke nilai absolut (stock opname).
func (s *ObatService) SetStok(id, nilai int) (*models.Obat, error) {
	if nilai < 0 {
		return nil, ErrNilaiNegatif
	}
	return s.mutasiStok(id, func(int) (int, error) {
		return nilai, nil
	})
}

// mutasiStok menjalankan read-modify-write stok satu obat di bawah row lock,
// sehingga dua mutasi bersamaan pada obat yang sama terserialisasi.
func (s *ObatService) mutasiStok(id int, ubah func(stok int) (int, error)) (*models.Obat, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	var o models.Obat
	err = tx.QueryRow(`
		SELECT ID_Obat, Nama, Stok, Harga_Satuan, Satuan, Jenis, Aktif
		FROM Obat WHERE ID_Obat = ? FOR UPDATE`, id).
		Scan(&o.ID, &o.Nama, &o.Stok, &o.HargaSatuan, &o.Satuan, &o.Jenis, &o.Aktif)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrObatNotFound
		}
		return nil, err
	}

	stokBaru, err := ubah(o.Stok)
	if err != nil {
		tx.Rollback()
		var kurang *models.ErrStokTidakCukup
		if errors.As(err, &kurang) && kurang.NamaObat == "" {
			kurang.NamaObat = o.Nama
		}
		return nil, err
	}

	if _, err := tx.Exec(`UPDATE Obat SET Stok = ? WHERE ID_Obat = ?`, stokBaru, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	o.Stok = stokBaru
	return &o, nil
}
