package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliniksentosa/klinik-backend/internal/farmasi/models"
	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
)

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"ID_Item", "ID_Resep", "ID_Obat", "Nama_Obat", "Jumlah", "Aturan_Pakai"})
}

func TestProsesResep(t *testing.T) {
	t.Run("dua fase: semua item valid baru stok berkurang", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}).AddRow(15, models.ResepPending))
		mock.ExpectQuery("SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai").
			WithArgs(15).
			WillReturnRows(itemRows().
				AddRow(1, 15, 1, "Paracetamol", 2, "3x1").
				AddRow(2, 15, 2, "Amoxicillin", 1, "2x1"))
		// Fase 1: validasi dengan row lock, urut id obat.
		mock.ExpectQuery("SELECT Nama, Stok FROM Obat").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"Nama", "Stok"}).AddRow("Paracetamol", 10))
		mock.ExpectQuery("SELECT Nama, Stok FROM Obat").
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"Nama", "Stok"}).AddRow("Amoxicillin", 5))
		// Fase 2: pengurangan stok.
		mock.ExpectExec("UPDATE Obat SET Stok = Stok - ").
			WithArgs(2, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE Obat SET Stok = Stok - ").
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE Resep SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE Kunjungan SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewResepService(db)
		hasil, err := svc.ProsesResep(9, 77)
		require.NoError(t, err)
		assert.Equal(t, 15, hasil.IDResep)
		assert.Equal(t, models.ResepProcessed, hasil.StatusResep)
		assert.Equal(t, string(kmodels.StatusKasir), hasil.StatusKunjungan)
		assert.Len(t, hasil.Items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stok kurang pada satu item membatalkan seluruh resep", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}).AddRow(15, models.ResepPending))
		mock.ExpectQuery("SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai").
			WillReturnRows(itemRows().
				AddRow(1, 15, 1, "Paracetamol", 5, "3x1").
				AddRow(2, 15, 2, "Amoxicillin", 1, "2x1"))
		// Validasi gagal di obat pertama, jadi tidak boleh ada UPDATE sama sekali.
		mock.ExpectQuery("SELECT Nama, Stok FROM Obat").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"Nama", "Stok"}).AddRow("Paracetamol", 3))
		mock.ExpectRollback()

		svc := NewResepService(db)
		_, err = svc.ProsesResep(9, 77)

		var kurang *models.ErrStokTidakCukup
		require.ErrorAs(t, err, &kurang)
		assert.Equal(t, "Paracetamol", kurang.NamaObat)
		assert.Equal(t, 5, kurang.Diminta)
		assert.Equal(t, 3, kurang.Tersedia)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("resep yang sudah diproses tidak mengurangi stok lagi", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusKasir), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}).AddRow(15, models.ResepProcessed))
		mock.ExpectRollback()

		svc := NewResepService(db)
		_, err = svc.ProsesResep(9, 77)
		assert.ErrorIs(t, err, ErrResepSudahDiproses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tanpa resep pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}))
		mock.ExpectRollback()

		svc := NewResepService(db)
		_, err = svc.ProsesResep(9, 77)
		assert.ErrorIs(t, err, ErrResepTidakAda)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("obat pada resep tidak terdaftar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}).AddRow(15, models.ResepPending))
		mock.ExpectQuery("SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai").
			WillReturnRows(itemRows().AddRow(1, 15, 8, "", 2, "3x1"))
		mock.ExpectQuery("SELECT Nama, Stok FROM Obat").
			WithArgs(8).
			WillReturnRows(sqlmock.NewRows([]string{"Nama", "Stok"}))
		mock.ExpectRollback()

		svc := NewResepService(db)
		_, err = svc.ProsesResep(9, 77)
		assert.ErrorIs(t, err, ErrObatNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("item obat luar tidak menyentuh stok", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusFarmasi), 4))
		mock.ExpectQuery("SELECT ID_Resep, Status FROM Resep").
			WillReturnRows(sqlmock.NewRows([]string{"ID_Resep", "Status"}).AddRow(15, models.ResepPending))
		mock.ExpectQuery("SELECT ID_Item, ID_Resep, ID_Obat, Nama_Obat, Jumlah, Aturan_Pakai").
			WillReturnRows(itemRows().AddRow(1, 15, nil, "OBH racikan luar", 1, "2x1"))
		// Tidak ada SELECT/UPDATE Obat: langsung tandai processed.
		mock.ExpectExec("UPDATE Resep SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE Kunjungan SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewResepService(db)
		hasil, err := svc.ProsesResep(9, 77)
		require.NoError(t, err)
		assert.Equal(t, models.ResepProcessed, hasil.StatusResep)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSelesaikanPengambilan(t *testing.T) {
	t.Run("pengambilan obat menutup kunjungan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusPengambilanObat), 4))
		mock.ExpectExec("UPDATE Kunjungan SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewResepService(db)
		k, err := svc.SelesaikanPengambilan(9)
		require.NoError(t, err)
		assert.Equal(t, kmodels.StatusSelesai, k.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ditolak sebelum pembayaran", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusKasir), 4))
		mock.ExpectRollback()

		svc := NewResepService(db)
		_, err = svc.SelesaikanPengambilan(9)

		var invalid *kmodels.ErrInvalidTransition
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, kmodels.StatusKasir, invalid.Dari)
		assert.Equal(t, kmodels.StatusSelesai, invalid.Ke)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
