// Package hexdump renders a byte slice as rows of hex and ASCII, for
// diagnostic output (the bdsm debug command's raw superblock dump).
package hexdump

import "fmt"

// DumpByteSlice dumps a byte slice in hex and optionally ASCII format,
// optionally prefixing each row with its starting offset in hex and/or
// decimal, like xxd.
func DumpByteSlice(b []byte, bytesPerRow int, showASCII, showPosHex, showPosDec bool) string {
	var out string
	var ascii []byte
	numRows := len(b) / bytesPerRow
	if len(b)%bytesPerRow != 0 {
		numRows++
	}
	for i := 0; i < numRows; i++ {
		firstByte := i * bytesPerRow
		lastByte := firstByte + bytesPerRow
		var row string
		if showPosHex {
			row += fmt.Sprintf("%08x ", firstByte)
		}
		if showPosDec {
			row += fmt.Sprintf("%4d ", firstByte)
		}
		row += ": "
		for j := firstByte; j < lastByte; j++ {
			if j%8 == 0 {
				row += " "
			}
			if j < len(b) {
				row += fmt.Sprintf(" %02x", b[j])
			} else {
				row += "   "
			}
			switch {
			case j >= len(b):
				ascii = append(ascii, ' ')
			case b[j] < 32 || b[j] > 126:
				ascii = append(ascii, '.')
			default:
				ascii = append(ascii, b[j])
			}
		}
		if showASCII {
			row += fmt.Sprintf("  %s", string(ascii))
			ascii = ascii[:0]
		}
		row += "\n"
		out += row
	}
	return out
}
