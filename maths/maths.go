// Package maths computes bit lengths of unsigned integers with byte lookup tables.
// It is the portable counterpart of the hardware bit-scan instructions and is
// bit-exact for the whole uint64 range.
package maths

// floorLog2Table[b] is floor(log2(b)) for one byte, with floorLog2Table[0] = 0.
var floorLog2Table = func() (t [256]uint8) {
	for b := 2; b < len(t); b++ {
		t[b] = t[b/2] + 1
	}
	return
}()

// ceilingLog2Table[b] is ceil(log2(b)) for one byte, with ceilingLog2Table[0] = 0.
var ceilingLog2Table = func() (t [256]uint8) {
	for b := 1; b < len(t); b++ {
		t[b] = floorLog2Table[b]
		if b&(b-1) != 0 {
			t[b]++
		}
	}
	return
}()

// FloorLog2 returns floor(log2(x)), or 0 for x == 0.
func FloorLog2(x uint64) uint {
	var sum, mult uint
	for {
		sum = uint(floorLog2Table[x&0xFF]) + mult
		mult += 8
		x >>= 8
		if x == 0 {
			return sum
		}
	}
}

// CeilingLog2 returns ceil(log2(x)), or 0 for x == 0.
// The top non-zero byte answers through the table, any set bit below it rounds up.
func CeilingLog2(x uint64) uint {
	var shift uint
	lower := false
	for x > 0xFF {
		if x&0xFF != 0 {
			lower = true
		}
		x >>= 8
		shift += 8
	}
	if lower {
		return uint(floorLog2Table[x]) + 1 + shift
	}
	return uint(ceilingLog2Table[x]) + shift
}

// BitLength returns the number of bits needed to write x in binary,
// so bit BitLength(x)-1 is the most significant set bit. BitLength(0) is 0.
func BitLength(x uint64) uint {
	if x == 0 {
		return 0
	}
	return FloorLog2(x) + 1
}

// TrailingZeros counts the zero bits below the lowest set bit, 64 for x == 0.
func TrailingZeros(x uint64) uint {
	if x == 0 {
		return 64
	}
	return FloorLog2(x & -x)
}
