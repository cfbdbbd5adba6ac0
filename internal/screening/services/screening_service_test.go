package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	"github.com/kliniksentosa/klinik-backend/internal/screening/models"
)

func TestInputScreening(t *testing.T) {
	tinggi := 168.0
	berat := 62.5
	tensi := "120/80"

	t.Run("menggeser status dari Menunggu ke Diperiksa", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusMenunggu), 5))
		mock.ExpectExec("UPDATE Kunjungan").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewScreeningService(db)
		k, err := svc.InputScreening(3, models.Screening{TinggiBadan: &tinggi, BeratBadan: &berat, Tensi: &tensi})
		require.NoError(t, err)
		assert.Equal(t, kmodels.StatusDiperiksa, k.Status)
		assert.Equal(t, 5, k.NomorAntrian)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ditolak bila kunjungan tidak sedang Menunggu", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 5))
		mock.ExpectRollback()

		svc := NewScreeningService(db)
		_, err = svc.InputScreening(3, models.Screening{Tensi: &tensi})

		var invalid *kmodels.ErrInvalidTransition
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, kmodels.StatusFarmasi, invalid.Dari)
		assert.Equal(t, kmodels.StatusDiperiksa, invalid.Ke)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("kunjungan tidak ditemukan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}))
		mock.ExpectRollback()

		svc := NewScreeningService(db)
		_, err = svc.InputScreening(99, models.Screening{})
		assert.ErrorIs(t, err, ErrKunjunganNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
