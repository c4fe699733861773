package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	CORS       CORSConfig
	Upload     UploadConfig
	Classifier ClassifierConfig
	TrOCR      TrOCRConfig
	Tesseract  TesseractConfig
	OCR        OCRConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds image upload settings.
type UploadConfig struct {
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	TempDir       string `mapstructure:"temp_dir"`
}

// ClassifierConfig holds settings for the document-type classifier service.
type ClassifierConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// TrOCRConfig holds settings for the transformer recognizer service.
type TrOCRConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// TesseractConfig holds settings for the local general-purpose OCR engine.
type TesseractConfig struct {
	Languages []string `mapstructure:"languages"`
}

// OCRConfig holds the pipeline decision thresholds.
type OCRConfig struct {
	// ConfidenceThreshold triggers the ensemble second opinion when the
	// primary result scores below it.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	// LowConfidenceThreshold forces the general engine when the classifier
	// scores below it.
	LowConfidenceThreshold float64 `mapstructure:"low_confidence_threshold"`
	// ValidationTolerance is the absolute tolerance for the accounting
	// identity check.
	ValidationTolerance float64 `mapstructure:"validation_tolerance"`
}

// Load reads configuration from environment variables with the DOCUSIGHT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCUSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("upload.temp_dir", "")

	// Classifier defaults
	v.SetDefault("classifier.endpoint", "http://localhost:9090/classify")
	v.SetDefault("classifier.timeout_secs", 30)

	// TrOCR defaults
	v.SetDefault("trocr.endpoint", "http://localhost:9091/recognize")
	v.SetDefault("trocr.timeout_secs", 120)

	// Tesseract defaults
	v.SetDefault("tesseract.languages", "eng")

	// OCR pipeline defaults
	v.SetDefault("ocr.confidence_threshold", 0.85)
	v.SetDefault("ocr.low_confidence_threshold", 0.5)
	v.SetDefault("ocr.validation_tolerance", 0.05)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "DOCUSIGHT_SERVER_PORT",
		"server.read_timeout":          "DOCUSIGHT_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "DOCUSIGHT_SERVER_WRITE_TIMEOUT",
		"server.environment":           "DOCUSIGHT_SERVER_ENVIRONMENT",
		"log.level":                    "DOCUSIGHT_LOG_LEVEL",
		"log.format":                   "DOCUSIGHT_LOG_FORMAT",
		"cors.allowed_origins":         "DOCUSIGHT_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":      "DOCUSIGHT_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.temp_dir":              "DOCUSIGHT_UPLOAD_TEMP_DIR",
		"classifier.endpoint":          "DOCUSIGHT_CLASSIFIER_ENDPOINT",
		"classifier.timeout_secs":      "DOCUSIGHT_CLASSIFIER_TIMEOUT_SECS",
		"trocr.endpoint":               "DOCUSIGHT_TROCR_ENDPOINT",
		"trocr.timeout_secs":           "DOCUSIGHT_TROCR_TIMEOUT_SECS",
		"tesseract.languages":          "DOCUSIGHT_TESSERACT_LANGUAGES",
		"ocr.confidence_threshold":     "DOCUSIGHT_OCR_CONFIDENCE_THRESHOLD",
		"ocr.low_confidence_threshold": "DOCUSIGHT_OCR_LOW_CONFIDENCE_THRESHOLD",
		"ocr.validation_tolerance":     "DOCUSIGHT_OCR_VALIDATION_TOLERANCE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCUSIGHT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCUSIGHT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		TempDir:       v.GetString("upload.temp_dir"),
	}
	cfg.Classifier = ClassifierConfig{
		Endpoint:    v.GetString("classifier.endpoint"),
		TimeoutSecs: v.GetInt("classifier.timeout_secs"),
	}
	cfg.TrOCR = TrOCRConfig{
		Endpoint:    v.GetString("trocr.endpoint"),
		TimeoutSecs: v.GetInt("trocr.timeout_secs"),
	}
	cfg.Tesseract = TesseractConfig{
		Languages: splitCSV(v.GetString("tesseract.languages")),
	}
	cfg.OCR = OCRConfig{
		ConfidenceThreshold:    v.GetFloat64("ocr.confidence_threshold"),
		LowConfidenceThreshold: v.GetFloat64("ocr.low_confidence_threshold"),
		ValidationTolerance:    v.GetFloat64("ocr.validation_tolerance"),
	}

	return cfg, nil
}

// splitCSV parses a comma-separated string into trimmed non-empty parts.
func splitCSV(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
