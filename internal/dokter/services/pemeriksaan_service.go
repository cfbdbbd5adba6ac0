package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kliniksentosa/klinik-backend/internal/dokter/models"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

var (
	ErrKunjunganNotFound = errors.New("kunjungan tidak ditemukan")
	ErrResepTanpaItem    = errors.New("perlu_resep diset tetapi item_resep kosong")
)

type PemeriksaanService struct {
	DB *sql.DB
}

func NewPemeriksaanService(db *sql.DB) *PemeriksaanService {
	return &PemeriksaanService{DB: db}
}

// InputPemeriksaan menyimpan hasil konsultasi dokter. Bila perlu_resep diset,
// resep berstatus pending dibuat dalam transaksi yang sama dan kunjungan bergeser
// ke Farmasi; tanpa resep kunjungan langsung Selesai.
func (s *PemeriksaanService) InputPemeriksaan(idKunjungan, idDokter int, req models.PemeriksaanRequest) (*kmodels.Kunjungan, error) {
	if req.PerluResep && len(req.ItemResep) == 0 {
		return nil, ErrResepTanpaItem
	}
	for _, item := range req.ItemResep {
		if item.Jumlah <= 0 {
			return nil, fmt.Errorf("jumlah item resep harus positif, dapat %d", item.Jumlah)
		}
		if item.IDObat == nil && item.NamaObat == "" {
			return nil, errors.New("item resep harus menyebut id_obat atau nama_obat")
		}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}

	// Dokter harus terdaftar dan masih aktif.
	var dokterAktif bool
	err = tx.QueryRow(`SELECT Aktif FROM Dokter WHERE ID_Dokter = ?`, idDokter).Scan(&dokterAktif)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return nil, ErrDokterNotFound
		}
		return nil, err
	}
	if !dokterAktif {
		tx.Rollback()
		return nil, fmt.Errorf("dokter %d sudah tidak aktif", idDokter)
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

	tujuan := kmodels.StatusSelesai
	if req.PerluResep {
		tujuan = kmodels.StatusFarmasi
	}
	statusBaru, err := kmodels.Advance(idKunjungan, kmodels.Status(statusLama), tujuan)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(`
		UPDATE Kunjungan
		SET ID_Dokter = ?, Keluhan = ?, Hasil_Pemeriksaan = ?, Catatan_Dokter = ?,
			Perlu_Resep = ?, Status = ?, Updated_At = ?
		WHERE ID_Kunjungan = ?`,
		idDokter, req.Keluhan, req.HasilPemeriksaan, req.CatatanDokter,
		req.PerluResep, string(statusBaru), now, idKunjungan,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if req.PerluResep {
		resResep, err := tx.Exec(`
			INSERT INTO Resep (ID_Kunjungan, ID_Pasien, ID_Dokter, Status, Created_At)
			VALUES (?, ?, ?, 'pending', ?)`,
			idKunjungan, idPasien, idDokter, now,
		)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		idResep, err := resResep.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, item := range req.ItemResep {
			_, err := tx.Exec(`
				INSERT INTO Resep_Item (ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai)
				VALUES (?, ?, ?, ?, ?)`,
				idResep, item.IDObat, item.NamaObat, item.Jumlah, item.AturanPakai,
			)
			if err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &kmodels.Kunjungan{
		ID:           idKunjungan,
		IDPasien:     idPasien,
		IDDokter:     &idDokter,
		NomorAntrian: nomorAntrian,
		Status:       statusBaru,
		PerluResep:   req.PerluResep,
		UpdatedAt:    now,
	}, nil
}
