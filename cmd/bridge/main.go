// Command bridge runs the MQTT-to-IR bridge: it loads the configured AC
// model's IR codes, publishes Home Assistant MQTT Discovery, and forwards
// climate commands received over MQTT to the IR blaster via Zigbee2MQTT.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ufo-r11/ir-bridge/internal/config"
	"github.com/ufo-r11/ir-bridge/internal/database"
	"github.com/ufo-r11/ir-bridge/internal/homeassistant"
	"github.com/ufo-r11/ir-bridge/internal/integration"
	"github.com/ufo-r11/ir-bridge/internal/mqtt"
	"github.com/ufo-r11/ir-bridge/internal/state"
)

func main() {
	cfg := config.Load()
	fmt.Println("🌡️  IR Bridge")
	fmt.Println("=" + string(make([]byte, 50)) + "=")

	log.Printf("Config: Broker=%s, Device=%s", cfg.MQTTBroker, cfg.DeviceID)

	log.Println("📦 Initializing IR code database...")
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	smartirFile := filepath.Join("docs", "smartir", "reference", fmt.Sprintf("%s_tuya.json", cfg.ModelID))
	if err := db.LoadFromJSON(ctx, cfg.ModelID, smartirFile); err != nil {
		log.Fatalf("Failed to load IR codes from %s: %v", smartirFile, err)
	}
	log.Printf("✅ Database ready with model: %s", cfg.ModelID)

	mqttConfig := mqtt.Config{
		Broker:   cfg.MQTTBroker,
		ClientID: fmt.Sprintf("ir-bridge-%s", cfg.DeviceID),
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	}

	client, err := mqtt.NewClient(mqttConfig)
	if err != nil {
		log.Fatalf("Failed to create MQTT client: %v", err)
	}

	if err := client.Connect(); err != nil {
		log.Fatalf("Failed to connect to MQTT broker: %v", err)
	}
	defer client.Disconnect()

	acState := state.NewACState()
	log.Printf("Initial state: %s", acState.String())

	if err := publishDiscovery(client, cfg.DeviceID); err != nil {
		log.Fatalf("Failed to publish discovery: %v", err)
	}

	availTopic := fmt.Sprintf("homeassistant/climate/%s/availability", cfg.DeviceID)
	if err := client.Publish(availTopic, 1, true, "online"); err != nil {
		log.Printf("Warning: Failed to publish availability: %v", err)
	}

	if err := publishState(client, cfg.DeviceID, acState); err != nil {
		log.Printf("Warning: Failed to publish initial state: %v", err)
	}

	cmdTopic := fmt.Sprintf("homeassistant/climate/%s/set", cfg.DeviceID)
	if err := client.Subscribe(cmdTopic, 1, func(topic string, payload []byte) {
		handleCommand(client, db, cfg.ModelID, cfg.IRBlasterID, cfg.DeviceID, acState, payload)
	}); err != nil {
		log.Fatalf("Failed to subscribe to command topic: %v", err)
	}

	fmt.Println("\n✅ Bridge active")
	fmt.Printf("   📡 MQTT Broker: %s\n", cfg.MQTTBroker)
	fmt.Printf("   🏠 HA Device ID: %s\n", cfg.DeviceID)
	fmt.Printf("   🎛️  AC Model: %s\n", cfg.ModelID)
	fmt.Printf("   📡 IR Blaster: %s\n", cfg.IRBlasterID)
	fmt.Printf("   📥 Listening on: %s\n", cmdTopic)
	fmt.Printf("   📤 State topic: homeassistant/climate/%s/state\n", cfg.DeviceID)
	fmt.Println("📡 IR codes will be transmitted via Zigbee2MQTT")
	fmt.Println("   Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("\n🛑 Shutting down...")
	if err := client.Publish(availTopic, 1, true, "offline"); err != nil {
		log.Printf("Warning: Failed to publish offline status: %v", err)
	}
}

// publishDiscovery publishes the Home Assistant MQTT Discovery payload.
func publishDiscovery(client *mqtt.Client, deviceID string) error {
	discovery := homeassistant.NewClimateDiscovery(deviceID, "Living Room AC")
	payload, err := discovery.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal discovery: %w", err)
	}

	topic := discovery.ConfigTopic(deviceID)
	if err := client.Publish(topic, 2, true, payload); err != nil {
		return fmt.Errorf("failed to publish discovery: %w", err)
	}

	log.Printf("✅ Published discovery to: %s", topic)
	return nil
}

// publishState publishes the current AC state to Home Assistant.
func publishState(client *mqtt.Client, deviceID string, acState *state.ACState) error {
	haState := &homeassistant.ClimateState{
		Temperature: acState.Temperature,
		Mode:        acState.Mode,
		FanMode:     acState.FanMode,
	}

	payload, err := homeassistant.StateToJSON(haState)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	topic := fmt.Sprintf("homeassistant/climate/%s/state", deviceID)
	if err := client.Publish(topic, 0, true, payload); err != nil {
		return fmt.Errorf("failed to publish state: %w", err)
	}

	log.Printf("📤 Published state: %s", acState.String())
	return nil
}

// handleCommand processes commands received from Home Assistant.
func handleCommand(client *mqtt.Client, db *database.DB, modelID, irBlasterID, deviceID string, acState *state.ACState, payload []byte) {
	fmt.Println("\n" + strings.Repeat("─", 60))
	log.Printf("📥 Received command: %s", string(payload))

	cmd, err := homeassistant.ParseCommand(payload)
	if err != nil {
		payloadStr := string(payload)
		log.Printf("📋 Plain text command: %s", payloadStr)

		if temp, err := strconv.ParseFloat(payloadStr, 64); err == nil {
			if err := acState.SetTemperature(temp); err != nil {
				log.Printf("❌ Invalid temperature: %v", err)
				return
			}
			log.Printf("🌡️  Temperature set to: %.1f°C", temp)
			if err := publishState(client, deviceID, acState); err != nil {
				log.Printf("❌ Failed to publish state: %v", err)
			}
			fmt.Println(strings.Repeat("─", 60))
			return
		}

		if err := acState.SetMode(payloadStr); err == nil {
			log.Printf("🔄 Mode set to: %s", payloadStr)

			ctx := context.Background()
			if err := integration.SendIRCode(ctx, db, client, modelID, irBlasterID, acState); err != nil {
				log.Printf("❌ Failed to send IR code: %v", err)
			} else {
				log.Printf("📡 IR code sent successfully")
			}

			if err := publishState(client, deviceID, acState); err != nil {
				log.Printf("❌ Failed to publish state: %v", err)
			}
			fmt.Println(strings.Repeat("─", 60))
			return
		}

		if err := acState.SetFanMode(payloadStr); err == nil {
			log.Printf("💨 Fan mode set to: %s", payloadStr)

			ctx := context.Background()
			if err := integration.SendIRCode(ctx, db, client, modelID, irBlasterID, acState); err != nil {
				log.Printf("❌ Failed to send IR code: %v", err)
			} else {
				log.Printf("📡 IR code sent successfully")
			}

			if err := publishState(client, deviceID, acState); err != nil {
				log.Printf("❌ Failed to publish state: %v", err)
			}
			fmt.Println(strings.Repeat("─", 60))
			return
		}

		log.Printf("❌ Could not parse command as JSON or plain text: %s", payloadStr)
		return
	}

	cmdJSON, _ := json.MarshalIndent(cmd, "", "  ")
	log.Printf("📋 Parsed command:\n%s", string(cmdJSON))

	stateChanged := false

	if cmd.Temperature != nil {
		if err := acState.SetTemperature(*cmd.Temperature); err != nil {
			log.Printf("❌ Invalid temperature: %v", err)
			return
		}
		stateChanged = true
		log.Printf("🌡️  Temperature set to: %.1f°C", *cmd.Temperature)
	}

	if cmd.Mode != nil {
		if err := acState.SetMode(*cmd.Mode); err != nil {
			log.Printf("❌ Invalid mode: %v", err)
			return
		}
		stateChanged = true
		log.Printf("🔄 Mode set to: %s", *cmd.Mode)
	}

	if cmd.FanMode != nil {
		if err := acState.SetFanMode(*cmd.FanMode); err != nil {
			log.Printf("❌ Invalid fan mode: %v", err)
			return
		}
		stateChanged = true
		log.Printf("💨 Fan mode set to: %s", *cmd.FanMode)
	}

	if !stateChanged {
		log.Println("⚠️  No valid state changes in command")
		return
	}

	ctx := context.Background()
	if err := integration.SendIRCode(ctx, db, client, modelID, irBlasterID, acState); err != nil {
		log.Printf("❌ Failed to send IR code: %v", err)
	} else {
		log.Printf("📡 IR code sent successfully")
	}

	if err := publishState(client, deviceID, acState); err != nil {
		log.Printf("❌ Failed to publish state: %v", err)
	}

	fmt.Println(strings.Repeat("─", 60))
}
