package fieldcodec

import (
	"math"
	"unicode/utf16"
)

func float32Bits(f float32) uint32   { return math.Float32bits(f) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
func float64Bits(f float64) uint64   { return math.Float64bits(f) }
func float64FromBits(b uint64) float64 { return math.Float64frombits(b) }

func utf16ToString(units []uint16) string {
	// Trim trailing NUL code units before decoding, mirroring the
	// zero-padding used for fixed ASCII strings.
	end := len(units)
	for end > 0 && units[end-1] == 0 {
		end--
	}

	return string(utf16.Decode(units[:end]))
}

func stringToUTF16(s string, size int) []uint16 {
	units := utf16.Encode([]rune(s))
	out := make([]uint16, size)
	copy(out, units)

	return out
}
