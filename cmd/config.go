package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPHost string
	HTTPPort int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost                string
	KafkaShipmentEventsTopic string

	PlantLatitude               float64
	PlantLongitude              float64
	DefaultDestinationLatitude  float64
	DefaultDestinationLongitude float64

	TrackingPoints           int
	TrackingMinSpeed         float64
	TrackingMaxSpeed         float64
	TrackingRetrySchedule    string
	TrackingRetryConcurrency int
	TrackingReadLimit        int
	TrackingQueueSize        int
	TrackingWorkers          int

	VehicleExclusiveAssignment bool

	ShutdownTimeout time.Duration
}

// DSN builds the PostgreSQL connection string, escaping credentials.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSslMode,
	}
	return u.String()
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// LoadConfig reads an optional .env file into the process environment and then the
// environment through viper. Variables already set in the environment win over .env.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing file is fine.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := Config{
		AppEnv:   v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		HTTPHost: v.GetString("HTTP_HOST"),
		HTTPPort: v.GetInt("HTTP_PORT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetInt("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		KafkaHost:                v.GetString("KAFKA_HOST"),
		KafkaShipmentEventsTopic: v.GetString("KAFKA_SHIPMENT_EVENTS_TOPIC"),

		PlantLatitude:               v.GetFloat64("PLANT_LATITUDE"),
		PlantLongitude:              v.GetFloat64("PLANT_LONGITUDE"),
		DefaultDestinationLatitude:  v.GetFloat64("DEFAULT_DESTINATION_LATITUDE"),
		DefaultDestinationLongitude: v.GetFloat64("DEFAULT_DESTINATION_LONGITUDE"),

		TrackingPoints:           v.GetInt("TRACKING_POINTS"),
		TrackingMinSpeed:         v.GetFloat64("TRACKING_MIN_SPEED"),
		TrackingMaxSpeed:         v.GetFloat64("TRACKING_MAX_SPEED"),
		TrackingRetrySchedule:    v.GetString("TRACKING_RETRY_SCHEDULE"),
		TrackingRetryConcurrency: v.GetInt("TRACKING_RETRY_CONCURRENCY"),
		TrackingReadLimit:        v.GetInt("TRACKING_READ_LIMIT"),
		TrackingQueueSize:        v.GetInt("TRACKING_QUEUE_SIZE"),
		TrackingWorkers:          v.GetInt("TRACKING_WORKERS"),

		VehicleExclusiveAssignment: v.GetBool("VEHICLE_EXCLUSIVE_ASSIGNMENT"),

		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "shipping")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KAFKA_HOST", "")
	v.SetDefault("KAFKA_SHIPMENT_EVENTS_TOPIC", "shipment.status-changed")

	// Central plant in Santa Cruz de la Sierra, fallback destination in Cochabamba.
	v.SetDefault("PLANT_LATITUDE", -17.7833)
	v.SetDefault("PLANT_LONGITUDE", -63.1821)
	v.SetDefault("DEFAULT_DESTINATION_LATITUDE", -17.3895)
	v.SetDefault("DEFAULT_DESTINATION_LONGITUDE", -66.1568)

	v.SetDefault("TRACKING_POINTS", 10)
	v.SetDefault("TRACKING_MIN_SPEED", 30)
	v.SetDefault("TRACKING_MAX_SPEED", 50)
	v.SetDefault("TRACKING_RETRY_SCHEDULE", "*/30 * * * * *")
	v.SetDefault("TRACKING_RETRY_CONCURRENCY", 4)
	v.SetDefault("TRACKING_READ_LIMIT", 50)
	v.SetDefault("TRACKING_QUEUE_SIZE", 256)
	v.SetDefault("TRACKING_WORKERS", 4)

	v.SetDefault("VEHICLE_EXCLUSIVE_ASSIGNMENT", true)

	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}

func (c Config) validate() error {
	var problems []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		problems = append(problems, fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort))
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.TrackingMinSpeed > c.TrackingMaxSpeed {
		problems = append(problems, fmt.Errorf("TRACKING_MIN_SPEED %.1f exceeds TRACKING_MAX_SPEED %.1f",
			c.TrackingMinSpeed, c.TrackingMaxSpeed))
	}
	if c.KafkaHost != "" && c.KafkaShipmentEventsTopic == "" {
		problems = append(problems, errors.New("KAFKA_SHIPMENT_EVENTS_TOPIC is required when KAFKA_HOST is set"))
	}
	return errors.Join(problems...)
}
