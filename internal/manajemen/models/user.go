package models

// Role yang dikenal aplikasi. Role menentukan grup endpoint yang boleh diakses.
const (
	RoleAdmin       = "admin"
	RolePendaftaran = "pendaftaran"
	RoleSuster      = "suster"
	RoleDokter      = "dokter"
	RoleFarmasi     = "farmasi"
	RoleKasir       = "kasir"
)

// User adalah akun pegawai klinik. Password disimpan sebagai hash bcrypt dan
// tidak pernah diserialisasikan keluar.
type User struct {
	ID       int    `json:"id_user" db:"ID_User"`
	Username string `json:"username" db:"Username"`
	Password string `json:"-" db:"Password"`
	Nama     string `json:"nama" db:"Nama"`
	Role     string `json:"role" db:"Role"`
	Aktif    bool   `json:"aktif" db:"Aktif"`
}

func RoleValid(role string) bool {
	switch role {
	case RoleAdmin, RolePendaftaran, RoleSuster, RoleDokter, RoleFarmasi, RoleKasir:
		return true
	}
	return false
}
