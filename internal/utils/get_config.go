package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppURL  string `yaml:"APP_URL"`
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	MailDriver       string `yaml:"MAIL_DRIVER"` // smtp or ses
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	SESRegion        string `yaml:"SES_REGION"`
	SESFromEmail     string `yaml:"SES_FROM_EMAIL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis configuration
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`

	// Logging
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
}

var (
	values   = map[string]string{}
	valuesMu sync.RWMutex
)

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

// LoadConfig reads .env (if present) and then config.yaml. Environment
// variables always win over the yaml file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	if err := LoadConfigFrom(configPath()); err != nil {
		log.Printf("Error loading config file: %s\n", err)
	}
}

func LoadConfigFrom(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var parsed Config
	if err := yaml.Unmarshal(file, &parsed); err != nil {
		return err
	}

	valuesMu.Lock()
	defer valuesMu.Unlock()
	values = map[string]string{
		"APP_URL":            parsed.AppURL,
		"APP_PORT":           parsed.AppPort,
		"DB_USER":            parsed.DBUser,
		"DB_NAME":            parsed.DBName,
		"DB_PASSWORD":        parsed.DBPassword,
		"DB_PORT":            parsed.DBPort,
		"DB_HOST":            parsed.DBHost,
		"DB_TIMEZONE":        parsed.DBTimeZone,
		"JWT_SECRET":         parsed.JWTSecret,
		"MAIL_DRIVER":        parsed.MailDriver,
		"SMTP_HOST":          parsed.SMTPHost,
		"SMTP_PORT":          parsed.SMTPPort,
		"SMTP_SENDER_NAME":   parsed.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    parsed.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": parsed.SMTPAuthPassword,
		"SES_REGION":         parsed.SESRegion,
		"SES_FROM_EMAIL":     parsed.SESFromEmail,
		"AWS_S3_BUCKET":      parsed.AWSS3Bucket,
		"AWS_S3_REGION":      parsed.AWSS3Region,
		"AWS_ACCESS_KEY":     parsed.AWSAccessKey,
		"AWS_SECRET_KEY":     parsed.AWSSecretKey,
		"REDIS_ADDR":         parsed.RedisAddr,
		"REDIS_PASSWORD":     parsed.RedisPassword,
		"REDIS_DB":           parsed.RedisDB,
		"LOG_LEVEL":          parsed.LogLevel,
		"LOG_FORMAT":         parsed.LogFormat,
	}
	return nil
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	valuesMu.RLock()
	defer valuesMu.RUnlock()
	return values[key]
}

func GetConfigOrDefault(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}

func GetConfigInt(key string, fallback int) int {
	v := GetConfig(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
