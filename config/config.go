package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	DBUser          string
	DBPassword      string
	DBHost          string
	DBPort          string
	DBName          string
	JWTSecret       string
	BiayaKonsultasi float64 // biaya konsultasi flat, dikenakan sekali per pembayaran
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig memuat konfigurasi dari file .env (jika ada) lalu dari environment variables.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:          os.Getenv("APP_ENV"),
			Port:            os.Getenv("PORT"),
			DBUser:          os.Getenv("DB_USER"),
			DBPassword:      os.Getenv("DB_PASSWORD"),
			DBHost:          os.Getenv("DB_HOST"),
			DBPort:          os.Getenv("DB_PORT"),
			DBName:          os.Getenv("DB_NAME"),
			JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
			BiayaKonsultasi: loadBiayaKonsultasi(),
		}
	})
	return cfg
}

func loadBiayaKonsultasi() float64 {
	raw := os.Getenv("BIAYA_KONSULTASI")
	if raw == "" {
		return 15000
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: BIAYA_KONSULTASI tidak valid (%q), memakai default 15000", raw)
		return 15000
	}
	return v
}
