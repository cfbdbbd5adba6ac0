package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliniksentosa/klinik-backend/internal/dokter/models"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

func TestInputPemeriksaan(t *testing.T) {
	idObat := 4

	t.Run("tanpa resep kunjungan langsung selesai", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Aktif FROM Dokter").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"Aktif"}).AddRow(true))
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusDiperiksa), 42, 3))
		mock.ExpectExec("UPDATE Kunjungan").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewPemeriksaanService(db)
		k, err := svc.InputPemeriksaan(9, 2, models.PemeriksaanRequest{
			Keluhan:          "demam",
			HasilPemeriksaan: "ISPA ringan",
			PerluResep:       false,
		})
		require.NoError(t, err)
		assert.Equal(t, kmodels.StatusSelesai, k.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dengan resep kunjungan ke Farmasi dan resep pending dibuat", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Aktif FROM Dokter").
			WillReturnRows(sqlmock.NewRows([]string{"Aktif"}).AddRow(true))
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusDiperiksa), 42, 3))
		mock.ExpectExec("UPDATE Kunjungan").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO Resep ").
			WillReturnResult(sqlmock.NewResult(15, 1))
		mock.ExpectExec("INSERT INTO Resep_Item").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO Resep_Item").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		svc := NewPemeriksaanService(db)
		k, err := svc.InputPemeriksaan(9, 2, models.PemeriksaanRequest{
			Keluhan:    "batuk",
			PerluResep: true,
			ItemResep: []models.ItemResepRequest{
				{IDObat: &idObat, Jumlah: 10, AturanPakai: "3x1 sesudah makan"},
				{NamaObat: "OBH racikan luar", Jumlah: 1, AturanPakai: "2x1"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, kmodels.StatusFarmasi, k.Status)
		assert.True(t, k.PerluResep)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("konsultasi pada kunjungan yang masih Menunggu ditolak", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Aktif FROM Dokter").
			WillReturnRows(sqlmock.NewRows([]string{"Aktif"}).AddRow(true))
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusMenunggu), 42, 3))
		mock.ExpectRollback()

		svc := NewPemeriksaanService(db)
		_, err = svc.InputPemeriksaan(9, 2, models.PemeriksaanRequest{Keluhan: "demam"})

		var invalid *kmodels.ErrInvalidTransition
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, kmodels.StatusMenunggu, invalid.Dari)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("perlu_resep tanpa item ditolak sebelum menyentuh database", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := NewPemeriksaanService(db)
		_, err = svc.InputPemeriksaan(9, 2, models.PemeriksaanRequest{PerluResep: true})
		assert.ErrorIs(t, err, ErrResepTanpaItem)
	})

	t.Run("jumlah item nol ditolak", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := NewPemeriksaanService(db)
		_, err = svc.InputPemeriksaan(9, 2, models.PemeriksaanRequest{
			PerluResep: true,
			ItemResep:  []models.ItemResepRequest{{IDObat: &idObat, Jumlah: 0}},
		})
		assert.Error(t, err)
	})
}
