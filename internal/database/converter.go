package database

import (
	"errors"
	"fmt"

	"github.com/ufo-r11/ir-bridge/internal/broadlink"
	"github.com/ufo-r11/ir-bridge/internal/converter"
	"github.com/ufo-r11/ir-bridge/internal/tuyastream"
)

// defaultCompressionLevel is the level every code loaded into the store is
// compressed at. BALANCED mirrors the effort the single-mode compressor this
// package used to hand-roll always spent.
const defaultCompressionLevel = tuyastream.LevelBalanced

// ConvertBroadlinkToTuya decodes a Broadlink capture code and re-encodes it
// as a Tuya compressed-stream Base64 string, at defaultCompressionLevel.
func ConvertBroadlinkToTuya(broadlinkCode string) (string, error) {
	return converter.New(defaultCompressionLevel).Convert(broadlinkCode)
}

// toTuya converts code if the Broadlink decoder accepts it, and returns it
// unchanged when the decoder rejects it as malformed. The decoder accepts
// most Tuya-encoded codes too, so LoadFromJSON calls this only for files not
// already marked with supportedController "MQTT".
func toTuya(code string) (string, error) {
	out, err := ConvertBroadlinkToTuya(code)
	if err != nil {
		if errors.Is(err, broadlink.ErrIRCode) {
			return code, nil
		}
		return "", fmt.Errorf("convert ir code: %w", err)
	}
	return out, nil
}
