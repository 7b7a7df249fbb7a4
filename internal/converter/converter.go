package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ufo-r11/ir-bridge/internal/broadlink"
	"github.com/ufo-r11/ir-bridge/internal/tuyastream"
)

// Converter converts Broadlink capture codes to Tuya-compressed ones at a
// fixed compression level.
type Converter struct {
	Level tuyastream.CompressionLevel
}

// New returns a Converter that compresses at the given level.
func New(level tuyastream.CompressionLevel) *Converter {
	return &Converter{Level: level}
}

// Convert decodes a Broadlink capture code and re-encodes it as a Tuya
// compressed-stream Base64 string.
func (c *Converter) Convert(broadlinkCode string) (string, error) {
	timings, err := broadlink.Decode(strings.TrimSpace(broadlinkCode))
	if err != nil {
		return "", err
	}
	return tuyastream.Encode(timings, c.Level)
}

// mqttPayload is the shape a UFO-R11 expects over MQTT to send an IR code.
type mqttPayload struct {
	IRCodeToSend string `json:"ir_code_to_send"`
}

// ConvertToMQTTPayload converts a Broadlink code and wraps the result as the
// JSON object a UFO-R11 expects published to its IR-send topic.
func (c *Converter) ConvertToMQTTPayload(broadlinkCode string) (string, error) {
	tuyaCode, err := c.Convert(broadlinkCode)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(mqttPayload{IRCodeToSend: tuyaCode})
	if err != nil {
		return "", fmt.Errorf("marshal mqtt payload: %w", err)
	}
	return string(payload), nil
}

// ProcessSmartIR walks a SmartIR-style device file — a map with a nested
// "commands" tree of string leaves — converting every Broadlink leaf to
// Tuya. When wrap is true, each converted leaf is itself the JSON MQTT
// payload string rather than the bare Tuya code. The returned map always
// has supportedController set to "MQTT" and commandsEncoding set to "Raw",
// since every code it contains is now Tuya's wire format, not Broadlink's.
func (c *Converter) ProcessSmartIR(data map[string]any, wrap bool) (map[string]any, error) {
	result := make(map[string]any, len(data)+2)
	for k, v := range data {
		result[k] = v
	}

	commands, _ := data["commands"].(map[string]any)
	converted, err := c.convertCommands(commands, wrap)
	if err != nil {
		return nil, err
	}

	result["commands"] = converted
	result["supportedController"] = "MQTT"
	result["commandsEncoding"] = "Raw"
	return result, nil
}

// convertCommands recurses through a SmartIR commands tree, converting
// string leaves and leaving every other value — lists, numbers, nested maps
// with no convertible leaves — untouched.
func (c *Converter) convertCommands(commands map[string]any, wrap bool) (map[string]any, error) {
	result := make(map[string]any, len(commands))
	for key, value := range commands {
		switch v := value.(type) {
		case string:
			converted, err := c.convertLeaf(v, wrap)
			if err != nil {
				return nil, fmt.Errorf("command %q: %w", key, err)
			}
			result[key] = converted
		case map[string]any:
			nested, err := c.convertCommands(v, wrap)
			if err != nil {
				return nil, err
			}
			result[key] = nested
		default:
			result[key] = v
		}
	}
	return result, nil
}

func (c *Converter) convertLeaf(code string, wrap bool) (string, error) {
	if wrap {
		return c.ConvertToMQTTPayload(code)
	}
	return c.Convert(code)
}
