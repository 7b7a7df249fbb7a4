// Package broadlink decodes Broadlink IR/RF capture codes — the Base64
// payload a Broadlink blaster (and compatible learning tools) produce when
// they record a remote's signal — into a flat sequence of pulse durations.
//
// The wire format is a small header (two opaque bytes, then a little-endian
// payload length) followed by raw timing bytes: most durations fit in a
// single byte; anything larger is escaped as 0x00 plus a two-byte big-endian
// extension. Durations are expressed in the device's native 269/8192 ms
// unit and are rescaled to Tuya ticks on the way out.
package broadlink
