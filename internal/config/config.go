// Package config holds the process configuration surface: equipment
// selection, device identity and service endpoints, read from the
// environment (with optional .env file) and overridable by flags.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Equipment selects the device this process simulates:
	// ahu, vav0..vav5, chiller or meter.
	Equipment string

	// DeviceName is the human-readable device name.
	DeviceName string

	// Instance is the numeric device instance, used only for point-name
	// composition.
	Instance int

	// Addr is the HTTP/WebSocket listen address.
	Addr string

	// TimeLocation names the building's local time zone, shared by every
	// process so schedule and anchor calculations agree.
	TimeLocation string

	// MQTTBroker enables the telemetry publisher when non-empty.
	MQTTBroker      string
	MQTTTopicPrefix string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Equipment:       getEnv("EQUIPMENT", "ahu"),
		DeviceName:      getEnv("DEVICE_NAME", ""),
		Instance:        getEnvInt("DEVICE_INSTANCE", 1),
		Addr:            getEnv("ADDR", ":8080"),
		TimeLocation:    getEnv("TIME_LOCATION", "Local"),
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "building"),
	}
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_LOCATION %q: %w", c.TimeLocation, err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return def
	}
	return n
}
