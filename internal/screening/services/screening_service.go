package services

import (
	"database/sql"
	"errors"
	"time"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/internal/screening/models"
)

var ErrKunjunganNotFound = errors.New("kunjungan tidak ditemukan")

type ScreeningService struct {
	DB *sql.DB
}

func NewScreeningService(db *sql.DB) *ScreeningService {
	return &ScreeningService{DB: db}
}

// InputScreening menyimpan hasil screening suster dan menggeser status kunjungan
// dari Menunggu ke Diperiksa. Status dibaca di bawah row lock supaya dua input
// bersamaan pada kunjungan yang sama tidak saling menimpa.
func (s *ScreeningService) InputScreening(idKunjungan int, scr models.Screening) (*kmodels.Kunjungan, error) {
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

	statusBaru, err := kmodels.Advance(idKunjungan, kmodels.Status(statusLama), kmodels.StatusDiperiksa)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	_, err = tx.Exec(`
		UPDATE Kunjungan
		SET Tinggi_Badan = ?, Berat_Badan = ?, Tensi = ?, Suhu_Tubuh = ?, Keluhan_Suster = ?,
			Status = ?, Updated_At = ?
		WHERE ID_Kunjungan = ?`,
		scr.TinggiBadan, scr.BeratBadan, scr.Tensi, scr.SuhuTubuh, scr.KeluhanSuster,
		string(statusBaru), now, idKunjungan,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &kmodels.Kunjungan{
		ID:            idKunjungan,
		NomorAntrian:  nomorAntrian,
		Status:        statusBaru,
		TinggiBadan:   scr.TinggiBadan,
		BeratBadan:    scr.BeratBadan,
		Tensi:         scr.Tensi,
		SuhuTubuh:     scr.SuhuTubuh,
		KeluhanSuster: scr.KeluhanSuster,
		UpdatedAt:     now,
	}, nil
}
