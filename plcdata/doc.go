// Package plcdata provides the dynamically-defined binary frame model used to
// exchange fixed-layout records with industrial controllers over TCP/IP.
//
// A frame layout is built once per logical message type by adding named,
// typed fields in wire order. The layout is then used as an immutable
// template: each frame actually transmitted is produced with Clone, populated
// by name, encoded with Encode and discarded after use. Received byte buffers
// are turned back into frames with Decode.
//
// Key Features:
//   - Closed type-code set covering the IEC 61131-3 elementary types
//     (BOOL through LREAL, CHAR and fixed-length STRING).
//   - Packed big-endian wire format with no delimiters, length prefixes or
//     checksums; the frame boundary is the statically agreed byte count.
//   - Field-name uniqueness enforced at layout-build time, so schema errors
//     surface when the layout is defined rather than at pack time.
//   - A concurrency-safe Registry for applications managing several message
//     types.
//
// Usage Example:
//
//	template := plcdata.NewFrame()
//	_ = template.AddField("speed", plcdata.Uint32, 0)
//	_ = template.AddField("temp", plcdata.Float32, 0.0)
//	_ = template.AddField("status", plcdata.Uint16, 0)
//	_ = template.AddField("enabled", plcdata.Bool, false)
//
//	frame := template.Clone()
//	_ = frame.Set("speed", 1500)
//	_ = frame.Set("enabled", true)
//
//	wire, _ := frame.Encode() // len(wire) == template.Size()
//	echo, _ := template.Decode(wire)
package plcdata
