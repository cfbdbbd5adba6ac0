package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/config"
	"github.com/kliniksentosa/klinik-backend/internal/common/middlewares"
	dokterControllers "github.com/kliniksentosa/klinik-backend/internal/dokter/controllers"
	dokterServices "github.com/kliniksentosa/klinik-backend/internal/dokter/services"
	farmasiControllers "github.com/kliniksentosa/klinik-backend/internal/farmasi/controllers"
	farmasiServices "github.com/kliniksentosa/klinik-backend/internal/farmasi/services"
	kasirControllers "github.com/kliniksentosa/klinik-backend/internal/kasir/controllers"
	kasirServices "github.com/kliniksentosa/klinik-backend/internal/kasir/services"
	kunjunganControllers "github.com/kliniksentosa/klinik-backend/internal/kunjungan/controllers"
	kunjunganServices "github.com/kliniksentosa/klinik-backend/internal/kunjungan/services"
	manajemenControllers "github.com/kliniksentosa/klinik-backend/internal/manajemen/controllers"
	manajemenModels "github.com/kliniksentosa/klinik-backend/internal/manajemen/models"
	manajemenServices "github.com/kliniksentosa/klinik-backend/internal/manajemen/services"
	pendaftaranControllers "github.com/kliniksentosa/klinik-backend/internal/pendaftaran/controllers"
	pendaftaranServices "github.com/kliniksentosa/klinik-backend/internal/pendaftaran/services"
	screeningControllers "github.com/kliniksentosa/klinik-backend/internal/screening/controllers"
	screeningServices "github.com/kliniksentosa/klinik-backend/internal/screening/services"
	"github.com/kliniksentosa/klinik-backend/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, db *sql.DB, cfg *config.Config) {
	// Inisialisasi service
	pasienService := pendaftaranServices.NewPasienService(db)
	pendaftaranService := pendaftaranServices.NewPendaftaranService(db)
	kunjunganService := kunjunganServices.NewKunjunganService(db)
	screeningService := screeningServices.NewScreeningService(db)
	dokterService := dokterServices.NewDokterService(db)
	pemeriksaanService := dokterServices.NewPemeriksaanService(db)
	obatService := farmasiServices.NewObatService(db)
	resepService := farmasiServices.NewResepService(db)
	billingService := kasirServices.NewBillingService(db, cfg.BiayaKonsultasi)
	userService := manajemenServices.NewUserService(db)
	dashboardService := manajemenServices.NewDashboardService(db)

	// Inisialisasi controller dengan service yang sesuai
	pasienController := pendaftaranControllers.NewPasienController(pasienService)
	pendaftaranController := pendaftaranControllers.NewPendaftaranController(pendaftaranService)
	kunjunganController := kunjunganControllers.NewKunjunganController(kunjunganService)
	screeningController := screeningControllers.NewScreeningController(screeningService)
	dokterController := dokterControllers.NewDokterController(dokterService)
	pemeriksaanController := dokterControllers.NewPemeriksaanController(pemeriksaanService)
	obatController := farmasiControllers.NewObatController(obatService)
	resepController := farmasiControllers.NewResepController(resepService)
	billingController := kasirControllers.NewBillingController(billingService)
	userController := manajemenControllers.NewUserController(userService)
	dashboardController := manajemenControllers.NewDashboardController(dashboardService)

	jwt := middlewares.JWTMiddleware()

	// Grup API utama
	api := e.Group("/api")

	// **Auth** (tidak pakai JWT)
	api.POST("/auth/login", userController.Login)

	// **Grup Pendaftaran**
	pendaftaran := api.Group("/pendaftaran", jwt, middlewares.RequireRole(manajemenModels.RolePendaftaran))
	pendaftaran.POST("/pasien", pasienController.CreatePasien)
	pendaftaran.GET("/pasien", pasienController.ListPasien)
	pendaftaran.GET("/pasien/:id", pasienController.GetPasien)
	pendaftaran.PUT("/pasien/:id", pasienController.UpdatePasien)
	pendaftaran.DELETE("/pasien/:id", pasienController.DeletePasien)
	pendaftaran.POST("/kunjungan", pendaftaranController.RegisterKunjungan)
	pendaftaran.GET("/pasien/:id/riwayat", kunjunganController.RiwayatKunjungan)

	// **Grup Kunjungan** (papan antrian dibaca semua role)
	kunjungan := api.Group("/kunjungan", jwt)
	kunjungan.GET("", kunjunganController.ListKunjungan)
	kunjungan.GET("/antrian/today", kunjunganController.AntrianToday)
	kunjungan.GET("/:id", kunjunganController.GetKunjungan)

	// **Grup Screening**
	screening := api.Group("/screening", jwt, middlewares.RequireRole(manajemenModels.RoleSuster))
	screening.PUT("/kunjungan/:id", screeningController.InputScreening)

	// **Grup Dokter**
	dokter := api.Group("/dokter", jwt, middlewares.RequireRole(manajemenModels.RoleDokter))
	dokter.PUT("/kunjungan/:id/pemeriksaan", pemeriksaanController.InputPemeriksaan)

	// Master data dokter dikelola admin
	masterDokter := api.Group("/master/dokter", jwt, middlewares.RequireRole())
	masterDokter.POST("", dokterController.CreateDokter)
	masterDokter.GET("", dokterController.ListDokter)
	masterDokter.GET("/:id", dokterController.GetDokter)
	masterDokter.PUT("/:id", dokterController.UpdateDokter)
	masterDokter.PUT("/:id/soft-delete", dokterController.SoftDeleteDokter)

	// **Grup Farmasi**
	farmasi := api.Group("/farmasi", jwt, middlewares.RequireRole(manajemenModels.RoleFarmasi))
	farmasi.POST("/obat", obatController.CreateObat)
	farmasi.GET("/obat", obatController.ListObat)
	farmasi.GET("/obat/:id", obatController.GetObat)
	farmasi.PUT("/obat/:id", obatController.UpdateObat)
	farmasi.PUT("/obat/:id/soft-delete", obatController.SoftDeleteObat)
	farmasi.PUT("/obat/:id/stok", obatController.AdjustStok)
	farmasi.GET("/resep/pending", resepController.ListResepPending)
	farmasi.GET("/resep/kunjungan/:id", resepController.GetResepByKunjungan)
	farmasi.POST("/resep/kunjungan/:id/proses", resepController.ProsesResep)
	farmasi.PUT("/kunjungan/:id/pengambilan", resepController.SelesaikanPengambilan)

	// **Grup Kasir**
	kasir := api.Group("/kasir", jwt, middlewares.RequireRole(manajemenModels.RoleKasir))
	kasir.GET("/tagihan/pasien/:id", billingController.ComputeTagihan)
	kasir.POST("/bayar/kunjungan/:id", billingController.Pay)
	kasir.GET("/transaksi", billingController.ListTransaksi)

	// **Grup Management** (khusus admin)
	management := api.Group("/management", jwt, middlewares.RequireRole())
	management.POST("/users", userController.CreateUser)
	management.GET("/users", userController.ListUser)
	management.PUT("/users/:id/soft-delete", userController.SoftDeleteUser)
	management.GET("/dashboard", dashboardController.GetDashboard)

	// WebSocket papan antrian (dipakai layar tunggu, tanpa JWT)
	e.GET("/ws", ws.ServeWS(ws.HubInstance))
}
