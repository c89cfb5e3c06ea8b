package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	DefaultDataFile    = "countriesMBTI_16types.csv"
	DefaultHTTPAddr    = ":8005"
	DefaultMaxUploadMB = 32
	// DefaultMaxUnpackedMB bounds what an uploaded archive may expand to.
	DefaultMaxUnpackedMB = 256
	DefaultTopN          = 10
)

type Config struct {
	DataFile      string
	HTTPAddr      string
	MaxUploadMB   int64
	MaxUnpackedMB int64
	TopN          int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process wide configuration. A missing .env file is fine.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}
		config = FromEnv()
	})
	return config
}

// FromEnv reads the configuration from the environment, using defaults for
// unset or unparsable values.
func FromEnv() *Config {
	return &Config{
		DataFile:      getEnv("DATA_FILE", DefaultDataFile),
		HTTPAddr:      getEnv("HTTP_ADDR", DefaultHTTPAddr),
		MaxUploadMB:   int64(getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)),
		MaxUnpackedMB: int64(getEnvInt("MAX_UNPACKED_MB", DefaultMaxUnpackedMB)),
		TopN:          getEnvInt("TOP_N", DefaultTopN),
	}
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// MaxUnpackedBytes is the decompressed archive size limit in bytes.
func (c *Config) MaxUnpackedBytes() int64 {
	return c.MaxUnpackedMB << 20
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
