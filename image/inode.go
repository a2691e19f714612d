package image

import "encoding/binary"

// InodeType distinguishes a directory from a regular file.
type InodeType byte

const (
	TypeDirectory InodeType = 'd'
	TypeFile      InodeType = 'f'
)

// Inode is the fixed-size record packed into the inode table.
// DataBlocks holds direct block indices; -1 marks an unused slot.
// NextFreeInode is only meaningful while the inode sits on the free
// chain.
type Inode struct {
	Type          InodeType
	ID            uint16
	UID           uint16
	GID           uint16
	Permissions   uint16
	ModTime       int64
	DataBlocks    [DatablocksPerInode]int32
	NextFreeInode int32
	Size          uint32
}

func (in *Inode) encode() []byte {
	buf := make([]byte, InodeSize)
	le := binary.LittleEndian
	off := 0
	buf[off] = byte(in.Type)
	off++
	le.PutUint16(buf[off:], in.ID)
	off += 2
	le.PutUint16(buf[off:], in.UID)
	off += 2
	le.PutUint16(buf[off:], in.GID)
	off += 2
	le.PutUint16(buf[off:], in.Permissions)
	off += 2
	le.PutUint64(buf[off:], uint64(in.ModTime))
	off += 8
	for _, db := range in.DataBlocks {
		le.PutUint32(buf[off:], uint32(db))
		off += 4
	}
	le.PutUint32(buf[off:], uint32(in.NextFreeInode))
	off += 4
	le.PutUint32(buf[off:], in.Size)
	off += 4
	return buf
}

func (in *Inode) decode(buf []byte) {
	le := binary.LittleEndian
	off := 0
	in.Type = InodeType(buf[off])
	off++
	in.ID = le.Uint16(buf[off:])
	off += 2
	in.UID = le.Uint16(buf[off:])
	off += 2
	in.GID = le.Uint16(buf[off:])
	off += 2
	in.Permissions = le.Uint16(buf[off:])
	off += 2
	in.ModTime = int64(le.Uint64(buf[off:]))
	off += 8
	for i := range in.DataBlocks {
		in.DataBlocks[i] = int32(le.Uint32(buf[off:]))
		off += 4
	}
	in.NextFreeInode = int32(le.Uint32(buf[off:]))
	off += 4
	in.Size = le.Uint32(buf[off:])
	off += 4
}

// usedDatablockSlots returns how many datablocks[] slots at the front of
// the array must be non-(-1) for this inode's current Size:
// ceil(size/BlockSize).
func usedDatablockSlots(size uint32) int {
	return ceilDiv(int(size), BlockSize)
}
