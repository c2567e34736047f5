package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 16 * 1024 * 1024

type Config struct {
	Env            string
	ServerPort     int
	MaxUploadBytes int64
	Database       DatabaseConfig
	Storage        StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// StorageConfig holds the directories for uploaded PDFs, signed outputs,
// and transient signature images.
type StorageConfig struct {
	UploadDir    string
	SignedDir    string
	SignatureDir string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		Env:            getEnv("ENV", "dev"),
		ServerPort:     getEnvInt("SERVER_PORT", 8080),
		MaxUploadBytes: defaultMaxUploadBytes,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "signpdf"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "signpdf_db"),
			UseSSL:   getEnv("DB_SSL", "") == "true",
		},
		Storage: StorageConfig{
			UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
			SignedDir:    getEnv("SIGNED_DIR", "signed"),
			SignatureDir: getEnv("SIGNATURE_DIR", "signatures"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
