package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultBroker      = "tcp://localhost:1883"
	defaultDeviceID    = "living_room"
	defaultDatabase    = "./hvac.db"
	defaultModelID     = "1109"
	defaultIRBlasterID = "ir-blaster"
)

// Config holds everything cmd/bridge and tools/* need to talk to the MQTT
// broker, the IR-code database, and the Home Assistant device they present.
type Config struct {
	MQTTBroker   string
	MQTTUsername string
	MQTTPassword string
	DeviceID     string
	DatabasePath string
	ModelID      string
	IRBlasterID  string
}

// Load reads a ".env" file in the working directory if one exists, then
// fills in Config from the environment, falling back to defaults for
// anything unset. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MQTTBroker:   getEnv("MQTT_BROKER", defaultBroker),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		DeviceID:     getEnv("DEVICE_ID", defaultDeviceID),
		DatabasePath: getEnv("DATABASE_PATH", defaultDatabase),
		ModelID:      getEnv("AC_MODEL_ID", defaultModelID),
		IRBlasterID:  getEnv("IR_BLASTER_ID", defaultIRBlasterID),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
