package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	DataPath           string
	LogLevel           string
	NoColor            bool
	Threshold          float64
	Adjacency          int
	Decay              float64
	BaseWeight         float64
	Background         string
	ContrastThreshold  float64
	ContrastAmount     float64
	ImageGrid          int
	HistoryLimit       int
	MaxUploadSizeBytes int64
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DataPath:           getEnv("DATA_PATH", "./data/themer.json"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		NoColor:            getEnv("NO_COLOR", "") != "",
		Threshold:          getEnvFloat("THEMER_THRESHOLD", 0x1550),
		Adjacency:          getEnvInt("THEMER_ADJACENCY", 3),
		Decay:              getEnvFloat("THEMER_DECAY", 3),
		BaseWeight:         getEnvFloat("THEMER_BASE_WEIGHT", 15),
		Background:         strings.TrimPrefix(getEnv("THEMER_BACKGROUND", "0d191d"), "#"),
		ContrastThreshold:  getEnvFloat("THEMER_CONTRAST_THRESHOLD", 0x1550),
		ContrastAmount:     getEnvFloat("THEMER_CONTRAST_AMOUNT", 5),
		ImageGrid:          getEnvInt("THEMER_IMAGE_GRID", 16),
		HistoryLimit:       getEnvInt("THEMER_HISTORY_LIMIT", 50),
		MaxUploadSizeBytes: getEnvInt64("MAX_UPLOAD_SIZE_BYTES", 8*1024*1024),
	}

	if cfg.Adjacency <= 0 {
		return Config{}, errors.New("adjacency must be > 0")
	}
	if cfg.Threshold < 0 {
		return Config{}, errors.New("threshold must be >= 0")
	}
	if cfg.ImageGrid <= 0 {
		return Config{}, errors.New("image grid must be > 0")
	}
	if cfg.HistoryLimit < 0 {
		return Config{}, errors.New("history limit must be >= 0")
	}
	if cfg.MaxUploadSizeBytes <= 0 {
		return Config{}, errors.New("max upload size must be > 0")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := ParseFloat(v)
	if err != nil {
		return fallback
	}
	return f
}

// ParseFloat reads a decimal float or a 0x-prefixed integer, so a threshold
// can be written either as 5456 or as 0x1550.
func ParseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(strings.ToLower(v), "0x") {
		n, err := strconv.ParseInt(v[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid hex number %q", v)
		}
		return float64(n), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}
