// Package converter is the façade that ties internal/broadlink and
// internal/tuyastream together: it turns a Broadlink capture code into a
// Tuya-compressed one, wraps it as the MQTT payload a UFO-R11 expects, and
// walks a SmartIR command file converting every code it finds.
package converter
