package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	LogLevel       string
	StudentDomains []string
}

var AppConfig Config

// Load reads configuration from the environment with sane defaults.
// Call godotenv.Load() before this if a .env file should be honored.
func Load() {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "backend_levels")
	viper.SetDefault("JWT_SECRET", "dev-only-secret-change-me")
	viper.SetDefault("LOG_LEVEL", "info")
	// Institutional mail suffixes that grant the student discount.
	viper.SetDefault("STUDENT_DOMAINS", []string{"@duoc.cl", "@profesor.duoc.cl"})

	AppConfig = Config{
		Port:           viper.GetString("PORT"),
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		DBHost:         viper.GetString("DB_HOST"),
		DBPort:         viper.GetString("DB_PORT"),
		DBUser:         viper.GetString("DB_USER"),
		DBPassword:     viper.GetString("DB_PASSWORD"),
		DBName:         viper.GetString("DB_NAME"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		StudentDomains: viper.GetStringSlice("STUDENT_DOMAINS"),
	}
}

// DSN builds the postgres connection string when DATABASE_URL is not set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
