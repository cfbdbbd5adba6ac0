package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kmodels "github.com/kliniksentosa/klinik-backend/internal/kunjungan/models"
	pmodels "github.com/kliniksentosa/klinik-backend/internal/pendaftaran/models"
)

func tagihanRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Nama_Obat", "Nama", "Jumlah", "Harga_Satuan"})
}

func TestComputeTagihan(t *testing.T) {
	t.Run("tagihan pasien umum tanpa diskon", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienUmum))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WithArgs(42).
			WillReturnRows(tagihanRows().
				AddRow("", "Paracetamol", 10, 2000.0).
				AddRow("", "Amoxicillin", 10, 3000.0))

		svc := NewBillingService(db, 15000)
		r, err := svc.ComputeTagihan(42)
		require.NoError(t, err)
		assert.Equal(t, 50000.0, r.BiayaObat)
		assert.Equal(t, 65000.0, r.Total)
		assert.Equal(t, 0.0, r.Diskon)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("harga memakai harga obat saat ini", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Harga sudah naik sejak resep ditulis; tagihan mengikuti harga sekarang.
		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienUmum))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WillReturnRows(tagihanRows().AddRow("", "Paracetamol", 2, 2500.0))

		svc := NewBillingService(db, 15000)
		r, err := svc.ComputeTagihan(42)
		require.NoError(t, err)
		assert.Equal(t, 5000.0, r.BiayaObat)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tanpa resep belum dibayar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienUmum))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WillReturnRows(tagihanRows())

		svc := NewBillingService(db, 15000)
		_, err = svc.ComputeTagihan(42)
		assert.ErrorIs(t, err, ErrTidakAdaTagihan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pasien tidak ditemukan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}))

		svc := NewBillingService(db, 15000)
		_, err = svc.ComputeTagihan(99)
		assert.ErrorIs(t, err, ErrPasienNotFound)
	})
}

func TestPay(t *testing.T) {
	t.Run("pembayaran menggeser kunjungan ke Pengambilan_Obat", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WithArgs(9).
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusKasir), 42, 4))
		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienUmum))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WithArgs(42).
			WillReturnRows(tagihanRows().AddRow("", "Paracetamol", 10, 2000.0))
		mock.ExpectExec("INSERT INTO Transaksi").
			WillReturnResult(sqlmock.NewResult(3, 1))
		mock.ExpectExec("UPDATE Kunjungan SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewBillingService(db, 15000)
		trx, err := svc.Pay(9, 50000, "tunai")
		require.NoError(t, err)
		assert.Equal(t, 35000.0, trx.Total) // 20000 obat + 15000 konsultasi
		assert.Equal(t, 15000.0, trx.Kembalian)
		assert.Equal(t, "Lunas", trx.Status)
		assert.NotEmpty(t, trx.NoKwitansi)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("kunjungan di luar Kasir tidak punya tagihan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusMenunggu), 42, 4))
		mock.ExpectRollback()

		svc := NewBillingService(db, 15000)
		_, err = svc.Pay(9, 50000, "tunai")
		assert.ErrorIs(t, err, ErrTidakAdaTagihan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bayar kurang dari total ditolak", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusKasir), 42, 4))
		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienUmum))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WillReturnRows(tagihanRows().AddRow("", "Paracetamol", 10, 2000.0))
		mock.ExpectRollback()

		svc := NewBillingService(db, 15000)
		_, err = svc.Pay(9, 10000, "tunai")
		assert.ErrorIs(t, err, ErrBayarKurang)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pasien bpjs membayar nol", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT Status, ID_Pasien, Nomor_Antrian FROM Kunjungan").
			WillReturnRows(sqlmock.NewRows([]string{"Status", "ID_Pasien", "Nomor_Antrian"}).
				AddRow(string(kmodels.StatusKasir), 42, 4))
		mock.ExpectQuery("SELECT Status_Pasien FROM Pasien").
			WillReturnRows(sqlmock.NewRows([]string{"Status_Pasien"}).AddRow(pmodels.StatusPasienBPJS))
		mock.ExpectQuery("SELECT ri.Nama_Obat, o.Nama, ri.Jumlah, o.Harga_Satuan").
			WillReturnRows(tagihanRows().AddRow("", "Paracetamol", 10, 2000.0))
		mock.ExpectExec("INSERT INTO Transaksi").
			WillReturnResult(sqlmock.NewResult(4, 1))
		mock.ExpectExec("UPDATE Kunjungan SET Status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		svc := NewBillingService(db, 15000)
		trx, err := svc.Pay(9, 0, "bpjs")
		require.NoError(t, err)
		assert.Equal(t, 0.0, trx.Total)
		assert.Equal(t, 35000.0, trx.Diskon)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
