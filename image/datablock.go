package image

import "encoding/binary"

// dataBlockTrailer reads/writes just the two-byte free-chain pointer at
// the end of a data block; it is meaningful only while the block is on
// the free chain.
type dataBlockTrailer struct {
	NextFreeDB uint16
}

func (t dataBlockTrailer) encode() []byte {
	buf := make([]byte, dataBlockTrailerSize)
	binary.LittleEndian.PutUint16(buf, t.NextFreeDB)
	return buf
}

func (t *dataBlockTrailer) decode(buf []byte) {
	t.NextFreeDB = binary.LittleEndian.Uint16(buf)
}
