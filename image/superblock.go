package image

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Superblock is the fixed-size record stored at block 0. It is
// the single source of truth for inode/data-block counts and the two
// free-chain heads; every mutating operation rewrites it last, with a
// freshly computed checksum.
type Superblock struct {
	Magic              uint16
	InodeCount         uint16
	UsedInodes         uint16
	DataBlocks         uint16
	UsedDataBlocks     uint16
	FirstFreeInode     int32
	FirstFreeDatablock int32
	InodesPerDatablock uint16
	FsSize             uint32
	Checksum           uint16
	VolumeUUID         uuid.UUID
}

// encode serializes the superblock into a SuperblockRecordSize buffer.
func (s *Superblock) encode() []byte {
	buf := make([]byte, SuperblockRecordSize)
	le := binary.LittleEndian
	off := 0
	putU16 := func(v uint16) {
		le.PutUint16(buf[off:], v)
		off += 2
	}
	putI32 := func(v int32) {
		le.PutUint32(buf[off:], uint32(v))
		off += 4
	}
	putU32 := func(v uint32) {
		le.PutUint32(buf[off:], v)
		off += 4
	}
	putU16(s.Magic)
	putU16(s.InodeCount)
	putU16(s.UsedInodes)
	putU16(s.DataBlocks)
	putU16(s.UsedDataBlocks)
	putI32(s.FirstFreeInode)
	putI32(s.FirstFreeDatablock)
	putU16(s.InodesPerDatablock)
	putU32(s.FsSize)
	putU16(s.Checksum)
	copy(buf[off:], s.VolumeUUID[:])
	off += 16
	return buf
}

// decode populates the superblock from a SuperblockRecordSize buffer.
func (s *Superblock) decode(buf []byte) {
	le := binary.LittleEndian
	off := 0
	getU16 := func() uint16 {
		v := le.Uint16(buf[off:])
		off += 2
		return v
	}
	getI32 := func() int32 {
		v := int32(le.Uint32(buf[off:]))
		off += 4
		return v
	}
	getU32 := func() uint32 {
		v := le.Uint32(buf[off:])
		off += 4
		return v
	}
	s.Magic = getU16()
	s.InodeCount = getU16()
	s.UsedInodes = getU16()
	s.DataBlocks = getU16()
	s.UsedDataBlocks = getU16()
	s.FirstFreeInode = getI32()
	s.FirstFreeDatablock = getI32()
	s.InodesPerDatablock = getU16()
	s.FsSize = getU32()
	s.Checksum = getU16()
	copy(s.VolumeUUID[:], buf[off:off+16])
	off += 16
}

// recomputeChecksum zeroes the checksum field, computes Fletcher-16 over
// the record, and stores the result.
func (s *Superblock) recomputeChecksum() {
	s.Checksum = 0
	s.Checksum = fletcher16(s.encode())
}

// verifyChecksum re-runs Fletcher-16 with the checksum field stashed and
// zeroed, comparing against the stashed value.
func (s *Superblock) verifyChecksum() bool {
	stashed := s.Checksum
	s.Checksum = 0
	got := fletcher16(s.encode())
	s.Checksum = stashed
	return got == stashed
}
