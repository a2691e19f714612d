package image

import "encoding/binary"

// directoryRow is the fixed 64-byte (child inode id, NUL-terminated name)
// pair that makes up a directory's data blocks.
type directoryRow struct {
	InodeID uint16
	Name    [nameFieldSize]byte
}

func newDirectoryRow(op string, id uint16, name string) (directoryRow, error) {
	// -1 reserves room for the NUL terminator.
	if len(name) > nameFieldSize-1 {
		return directoryRow{}, errNameTooLong(op)
	}
	var row directoryRow
	row.InodeID = id
	copy(row.Name[:], name)
	return row, nil
}

func (r directoryRow) name() string {
	n := 0
	for n < len(r.Name) && r.Name[n] != 0 {
		n++
	}
	return string(r.Name[:n])
}

func (r directoryRow) encode() []byte {
	buf := make([]byte, DirectoryRowSize)
	binary.LittleEndian.PutUint16(buf, r.InodeID)
	copy(buf[2:], r.Name[:])
	return buf
}

func (r *directoryRow) decode(buf []byte) {
	r.InodeID = binary.LittleEndian.Uint16(buf)
	copy(r.Name[:], buf[2:2+nameFieldSize])
}
