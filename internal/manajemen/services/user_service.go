package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kliniksentosa/klinik-backend/internal/manajemen/models"
	"github.com/kliniksentosa/klinik-backend/pkg/utils"
)

var (
	ErrUserNotFound     = errors.New("user tidak ditemukan")
	ErrLoginGagal       = errors.New("username atau password salah")
	ErrUsernameTerpakai = errors.New("username sudah terdaftar")
	ErrRoleInvalid      = errors.New("role tidak dikenal")
)

type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

// Login memverifikasi kredensial dan mengembalikan token JWT berumur 8 jam
// (satu shift kerja).
func (s *UserService) Login(username, password string) (string, *models.User, error) {
	row := s.DB.QueryRow(`
		SELECT ID_User, Username, Password, Nama, Role, Aktif
		FROM Users WHERE Username = ?`, username)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Nama, &u.Role, &u.Aktif)
	if err == sql.ErrNoRows {
		return "", nil, ErrLoginGagal
	}
	if err != nil {
		return "", nil, err
	}
	if !u.Aktif {
		return "", nil, ErrLoginGagal
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, ErrLoginGagal
	}

	token, err := utils.GenerateJWTToken(u.ID, u.Username, u.Nama, u.Role, time.Now().Add(8*time.Hour))
	if err != nil {
		return "", nil, err
	}
	u.Password = ""
	return token, &u, nil
}

func (s *UserService) CreateUser(u *models.User, plainPassword string) (int64, error) {
	if !models.RoleValid(u.Role) {
		return 0, ErrRoleInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	res, err := s.DB.Exec(`
		INSERT INTO Users (Username, Password, Nama, Role, Aktif) VALUES (?, ?, ?, ?, TRUE)`,
		u.Username, string(hash), u.Nama, u.Role,
	)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return 0, ErrUsernameTerpakai
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *UserService) ListUser() ([]*models.User, error) {
	rows, err := s.DB.Query(`SELECT ID_User, Username, Nama, Role, Aktif FROM Users ORDER BY Nama ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Nama, &u.Role, &u.Aktif); err != nil {
			return nil, err
		}
		result = append(result, &u)
	}
	return result, rows.Err()
}

// SoftDeleteUser menonaktifkan akun tanpa menghapusnya.
func (s *UserService) SoftDeleteUser(id int) error {
	res, err := s.DB.Exec(`UPDATE Users SET Aktif = FALSE WHERE ID_User = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
