package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

var ErrKunjunganNotFound = errors.New("kunjungan tidak ditemukan")

type KunjunganService struct {
	DB *sql.DB
}

func NewKunjunganService(db *sql.DB) *KunjunganService {
	return &KunjunganService{DB: db}
}

const kolomKunjungan = `
	k.ID_Kunjungan, k.ID_Pasien, k.ID_Dokter, k.Nomor_Antrian, k.Status,
	k.Tinggi_Badan, k.Berat_Badan, k.Tensi, k.Suhu_Tubuh, k.Keluhan_Suster,
	k.Keluhan, k.Hasil_Pemeriksaan, k.Catatan_Dokter, k.Perlu_Resep,
	k.Created_At, k.Updated_At`

func scanKunjungan(row interface{ Scan(...interface{}) error }) (*models.Kunjungan, error) {
	var k models.Kunjungan
	var idDokter sql.NullInt64
	var tinggi, berat, suhu sql.NullFloat64
	var tensi, keluhanSuster, keluhan, hasil, catatan sql.NullString

	err := row.Scan(
		&k.ID, &k.IDPasien, &idDokter, &k.NomorAntrian, &k.Status,
		&tinggi, &berat, &tensi, &suhu, &keluhanSuster,
		&keluhan, &hasil, &catatan, &k.PerluResep,
		&k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if idDokter.Valid {
		v := int(idDokter.Int64)
		k.IDDokter = &v
	}
	if tinggi.Valid {
		k.TinggiBadan = &tinggi.Float64
	}
	if berat.Valid {
		k.BeratBadan = &berat.Float64
	}
	if tensi.Valid {
		k.Tensi = &tensi.String
	}
	if suhu.Valid {
		k.SuhuTubuh = &suhu.Float64
	}
	if keluhanSuster.Valid {
		k.KeluhanSuster = &keluhanSuster.String
	}
	if keluhan.Valid {
		k.Keluhan = &keluhan.String
	}
	if hasil.Valid {
		k.HasilPemeriksaan = &hasil.String
	}
	if catatan.Valid {
		k.CatatanDokter = &catatan.String
	}
	return &k, nil
}

// GetKunjungan mengambil satu kunjungan berdasarkan id.
func (s *KunjunganService) GetKunjungan(id int) (*models.Kunjungan, error) {
	row := s.DB.QueryRow(`SELECT `+kolomKunjungan+` FROM Kunjungan k WHERE k.ID_Kunjungan = ?`, id)
	k, err := scanKunjungan(row)
	if err == sql.ErrNoRows {
		return nil, ErrKunjunganNotFound
	}
	return k, err
}

// ListKunjungan mengambil daftar kunjungan beserta nama pasien, difilter opsional
// berdasarkan status dan/atau tanggal pembuatan (format 2006-01-02). Tanpa filter
// apa pun, hanya kunjungan yang belum terminal yang dikembalikan.
func (s *KunjunganService) ListKunjungan(status *models.Status, tanggal *time.Time) ([]map[string]interface{}, error) {
	query := `
		SELECT k.ID_Kunjungan, k.Nomor_Antrian, k.Status, k.Created_At,
			p.ID_Pasien, p.Nama, p.Status_Pasien
		FROM Kunjungan k
		JOIN Pasien p ON k.ID_Pasien = p.ID_Pasien
		WHERE 1=1`
	var args []interface{}

	if status != nil {
		query += " AND k.Status = ?"
		args = append(args, string(*status))
	} else {
		query += " AND k.Status <> ?"
		args = append(args, string(models.StatusSelesai))
	}
	if tanggal != nil {
		awalHari := time.Date(tanggal.Year(), tanggal.Month(), tanggal.Day(), 0, 0, 0, 0, tanggal.Location())
		query += " AND k.Created_At >= ? AND k.Created_At < ?"
		args = append(args, awalHari, awalHari.Add(24*time.Hour))
	}
	query += " ORDER BY k.Nomor_Antrian ASC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var idKunjungan, nomorAntrian, idPasien int
		var statusK, nama, statusPasien string
		var createdAt time.Time
		if err := rows.Scan(&idKunjungan, &nomorAntrian, &statusK, &createdAt, &idPasien, &nama, &statusPasien); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"id_kunjungan":  idKunjungan,
			"nomor_antrian": nomorAntrian,
			"status":        statusK,
			"created_at":    createdAt,
			"id_pasien":     idPasien,
			"nama_pasien":   nama,
			"status_pasien": statusPasien,
		})
	}
	return result, rows.Err()
}

// RiwayatKunjungan mengambil riwayat kunjungan seorang pasien, terbaru dulu.
func (s *KunjunganService) RiwayatKunjungan(idPasien int) ([]*models.Kunjungan, error) {
	rows, err := s.DB.Query(`SELECT `+kolomKunjungan+`
		FROM Kunjungan k WHERE k.ID_Pasien = ? ORDER BY k.Created_At DESC`, idPasien)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Kunjungan
	for rows.Next() {
		k, err := scanKunjungan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, k)
	}
	return result, rows.Err()
}
