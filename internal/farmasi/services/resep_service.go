package services

import (
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

var (
	ErrKunjunganNotFound  = errors.New("kunjungan tidak ditemukan")
	ErrResepTidakAda      = errors.New("tidak ada resep pending untuk kunjungan ini")
	ErrResepSudahDiproses = errors.New("resep sudah pernah diproses")
)

type ResepService struct {
	DB *sql.DB
}

func NewResepService(db *sql.DB) *ResepService {
	return &ResepService{DB: db}
}

// ProsesResep memproses resep pending sebuah kunjungan: validasi seluruh item dulu,
// baru kurangi stok (dua fase, all-or-nothing), tandai resep processed, dan geser
// kunjungan dari Farmasi ke Kasir. Semuanya dalam satu transaksi; kegagalan di fase
// mana pun membatalkan seluruhnya tanpa ada stok yang berkurang sebagian.
func (s *ResepService) ProsesResep(idKunjungan, idPetugas int) (*models.HasilDispense, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	// Kunci kunjungan supaya dua pemrosesan bersamaan terserialisasi.
	var statusKunjungan string
	var nomorAntrian int
	err = tx.QueryRow(`SELECT Status, Nomor_Antrian FROM Kunjungan WHERE ID_Kunjungan = ? FOR UPDATE`,
		idKunjungan).Scan(&statusKunjungan, &nomorAntrian)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrKunjunganNotFound
		}
		return nil, err
	}

	// Resep terakhir kunjungan ini.
	var idResep int
	var statusResep string
	err = tx.QueryRow(`
		SELECT ID_Resep, Status FROM Resep
		WHERE ID_Kunjungan = ? ORDER BY Created_At DESC LIMIT 1 FOR UPDATE`,
		idKunjungan).Scan(&idResep, &statusResep)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrResepTidakAda
		}
		return nil, err
	}
	if statusResep == models.ResepProcessed {
		tx.Rollback()
		return nil, ErrResepSudahDiproses
	}

	items, err := ambilItemResep(tx, idResep)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Fase 1: validasi. Total kebutuhan per obat dikumpulkan dulu (satu obat bisa
	// muncul di beberapa baris), lalu setiap obat dikunci dan dicek kecukupannya.
	// Item tanpa id_obat (obat luar) dilewati, tidak pernah menyentuh stok.
	kebutuhan := make(map[int]int)
	for _, item := range items {
		if item.IDObat != nil {
			kebutuhan[*item.IDObat] += item.Jumlah
		}
	}
	idObatUrut := make([]int, 0, len(kebutuhan))
	for id := range kebutuhan {
		idObatUrut = append(idObatUrut, id)
	}
	sort.Ints(idObatUrut) // urutan kunci deterministik, menghindari deadlock antar transaksi

	for _, idObat := range idObatUrut {
		var nama string
		var stok int
		err := tx.QueryRow(`SELECT Nama, Stok FROM Obat WHERE ID_Obat = ? FOR UPDATE`, idObat).
			Scan(&nama, &stok)
		if err != nil {
			tx.Rollback()
			if err == sql.ErrNoRows {
				return nil, ErrObatNotFound
			}
			return nil, err
		}
		if kebutuhan[idObat] > stok {
			tx.Rollback()
			return nil, &models.ErrStokTidakCukup{
				IDObat:   idObat,
				NamaObat: nama,
				Diminta:  kebutuhan[idObat],
				Tersedia: stok,
			}
		}
	}

	// Fase 2: semua item lolos validasi, baru stok dikurangi.
	for _, idObat := range idObatUrut {
		if _, err := tx.Exec(`UPDATE Obat SET Stok = Stok - ? WHERE ID_Obat = ?`,
			kebutuhan[idObat], idObat); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	now := time.Now()
	if _, err := tx.Exec(`
		UPDATE Resep SET Status = ?, Processed_At = ?, Processed_By = ? WHERE ID_Resep = ?`,
		models.ResepProcessed, now, idPetugas, idResep); err != nil {
		tx.Rollback()
		return nil, err
	}

	statusBaru, err := kmodels.Advance(idKunjungan, kmodels.Status(statusKunjungan), kmodels.StatusKasir)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE Kunjungan SET Status = ?, Updated_At = ? WHERE ID_Kunjungan = ?`,
		string(statusBaru), now, idKunjungan); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.HasilDispense{
		IDResep:         idResep,
		IDKunjungan:     idKunjungan,
		StatusResep:     models.ResepProcessed,
		StatusKunjungan: string(statusBaru),
		NomorAntrian:    nomorAntrian,
		ProcessedAt:     now,
		Items:           items,
	}, nil
}

// SelesaikanPengambilan mencatat penyerahan obat ke pasien setelah pembayaran:
// kunjungan bergeser dari Pengambilan_Obat ke Selesai.
func (s *ResepService) SelesaikanPengambilan(idKunjungan int) (*kmodels.Kunjungan, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	var statusLama string
	var nomorAntrian int
	err = tx.QueryRow(`SELECT Status, Nomor_Antrian FROM Kunjungan WHERE ID_Kunjungan = ? FOR UPDATE`,
		idKunjungan).Scan(&statusLama, &nomorAntrian)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrKunjunganNotFound
		}
		return nil, err
	}

	statusBaru, err := kmodels.Advance(idKunjungan, kmodels.Status(statusLama), kmodels.StatusSelesai)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if _, err := tx.Exec(`UPDATE Kunjungan SET Status = ?, Updated_At = ? WHERE ID_Kunjungan = ?`,
		string(statusBaru), now, idKunjungan); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &kmodels.Kunjungan{
		ID:           idKunjungan,
		NomorAntrian: nomorAntrian,
		Status:       statusBaru,
		UpdatedAt:    now,
	}, nil
}

// GetResepByKunjungan mengambil resep terakhir sebuah kunjungan beserta itemnya.
func (s *ResepService) GetResepByKunjungan(idKunjungan int) (*models.Resep, error) {
	row := s.DB.QueryRow(`
		SELECT ID_Resep, ID_Kunjungan, ID_Pasien, ID_Dokter, Status, Processed_At, Processed_By, Created_At
		FROM Resep WHERE ID_Kunjungan = ? ORDER BY Created_At DESC LIMIT 1`, idKunjungan)

	var r models.Resep
	var idDokter, processedBy sql.NullInt64
	var processedAt sql.NullTime
	err := row.Scan(&r.ID, &r.IDKunjungan, &r.IDPasien, &idDokter, &r.Status, &processedAt, &processedBy, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrResepTidakAda
	}
	if err != nil {
		return nil, err
	}
	if idDokter.Valid {
		v := int(idDokter.Int64)
		r.IDDokter = &v
	}
	if processedAt.Valid {
		r.ProcessedAt = &processedAt.Time
	}
	if processedBy.Valid {
		v := int(processedBy.Int64)
		r.ProcessedBy = &v
	}

	rows, err := s.DB.Query(`
		SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai
		FROM Resep_Item WHERE ID_Resep = ?`, r.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item models.ResepItem
		var idObat sql.NullInt64
		if err := rows.Scan(&item.ID, &item.IDResep, &idObat, &item.NamaObat, &item.Jumlah, &item.AturanPakai); err != nil {
			return nil, err
		}
		if idObat.Valid {
			v := int(idObat.Int64)
			item.IDObat = &v
		}
		r.Items = append(r.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResepPending mengambil daftar resep yang menunggu diproses farmasi.
func (s *ResepService) ListResepPending() ([]map[string]interface{}, error) {
	rows, err := s.DB.Query(`
		SELECT r.ID_Resep, r.ID_Kunjungan, r.Created_At, p.ID_Pasien, p.Nama, k.Nomor_Antrian
		FROM Resep r
		JOIN Pasien p ON r.ID_Pasien = p.ID_Pasien
		JOIN Kunjungan k ON r.ID_Kunjungan = k.ID_Kunjungan
		WHERE r.Status = ?
		ORDER BY r.Created_At ASC`, models.ResepPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var idResep, idKunjungan, idPasien, nomorAntrian int
		var nama string
		var createdAt time.Time
		if err := rows.Scan(&idResep, &idKunjungan, &createdAt, &idPasien, &nama, &nomorAntrian); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"id_resep":      idResep,
			"id_kunjungan":  idKunjungan,
			"id_pasien":     idPasien,
			"nama_pasien":   nama,
			"nomor_antrian": nomorAntrian,
			"created_at":    createdAt,
		})
	}
	return result, rows.Err()
}

func ambilItemResep(tx *sql.Tx, idResep int) ([]models.ResepItem, error) {
	rows, err := tx.Query(`
		SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai
		FROM Resep_Item WHERE ID_Resep = ?`, idResep)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ResepItem
	for rows.Next() {
		var item models.ResepItem
		var idObat sql.NullInt64
		if err := rows.Scan(&item.ID, &item.IDResep, &idObat, &item.NamaObat, &item.Jumlah, &item.AturanPakai); err != nil {
			return nil, err
		}
		if idObat.Valid {
			v := int(idObat.Int64)
			item.IDObat = &v
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
