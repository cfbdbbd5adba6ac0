package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kliniksentosa/klinik-backend/internal/manajemen/models"
	"github.com/kliniksentosa/klinik-backend/pkg/utils"
)

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "kunci-rahasia-test")

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func(aktif bool) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"ID_User", "Username", "Password", "Nama", "Role", "Aktif"}).
			AddRow(7, "budi", string(hash), "Budi Santoso", models.RoleKasir, aktif)
	}

	t.Run("berhasil dengan kredensial benar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT ID_User, Username, Password, Nama, Role, Aktif").
			WithArgs("budi").
			WillReturnRows(userRows(true))

		svc := NewUserService(db)
		token, user, err := svc.Login("budi", "rahasia123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Budi Santoso", user.Nama)
		assert.Empty(t, user.Password)

		claims, err := utils.ValidateJWTToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.IDUser)
		assert.Equal(t, models.RoleKasir, claims.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ditolak dengan password salah", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT ID_User, Username, Password, Nama, Role, Aktif").
			WithArgs("budi").
			WillReturnRows(userRows(true))

		svc := NewUserService(db)
		_, _, err = svc.Login("budi", "salah")
		assert.ErrorIs(t, err, ErrLoginGagal)
	})

	t.Run("ditolak untuk akun nonaktif", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT ID_User, Username, Password, Nama, Role, Aktif").
			WithArgs("budi").
			WillReturnRows(userRows(false))

		svc := NewUserService(db)
		_, _, err = svc.Login("budi", "rahasia123")
		assert.ErrorIs(t, err, ErrLoginGagal)
	})

	t.Run("ditolak untuk username tidak terdaftar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT ID_User, Username, Password, Nama, Role, Aktif").
			WithArgs("hantu").
			WillReturnRows(sqlmock.NewRows([]string{"ID_User", "Username", "Password", "Nama", "Role", "Aktif"}))

		svc := NewUserService(db)
		_, _, err = svc.Login("hantu", "apapun")
		assert.ErrorIs(t, err, ErrLoginGagal)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("menyimpan user baru dengan hash bcrypt", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO Users").
			WillReturnResult(sqlmock.NewResult(11, 1))

		svc := NewUserService(db)
		u := models.User{Username: "sari", Nama: "Sari Dewi", Role: models.RoleSuster}
		id, err := svc.CreateUser(&u, "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ditolak untuk role tidak dikenal", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := NewUserService(db)
		u := models.User{Username: "sari", Nama: "Sari Dewi", Role: "satpam"}
		_, err = svc.CreateUser(&u, "rahasia123")
		assert.ErrorIs(t, err, ErrRoleInvalid)
	})
}
