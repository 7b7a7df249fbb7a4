// Package tuyastream implements the UFO-R11's LZ-style compressed block
// stream: a byte sequence of literal runs and back-references that a Tuya IR
// blaster accepts over MQTT. It provides four compression levels (NONE,
// FAST, BALANCED, OPTIMAL) trading encode cost against output size, and the
// Encode façade that turns a decoded timing sequence into the final
// Base64 wire string.
package tuyastream
