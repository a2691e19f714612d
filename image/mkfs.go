package image

import (
	"github.com/google/uuid"

	"github.com/irinakurteva99/bdsm-go/util/timestamp"
)

// Mkfs builds a fresh filesystem image in the file at path, whose
// current size (read before truncation) determines the image's capacity.
// The file must already exist and be the desired size.
func Mkfs(path string) error {
	const op = "mkfs"
	fsSize, err := hostSize(path)
	if err != nil {
		return errOpen(op, err)
	}

	v, err := OpenTruncate(path, op)
	if err != nil {
		return err
	}
	defer v.Close()

	inodeCount := (fsSize - SuperblockRecordSize) / 2000
	if inodeCount < 0 {
		inodeCount = 0
	}
	tableBlocks := inodeTableBlocks(inodeCount)
	dataBlocks := fsSize/BlockSize - 1 - tableBlocks
	if dataBlocks < 0 {
		dataBlocks = 0
	}

	sb := &Superblock{
		Magic:              magicNumber,
		FsSize:             uint32(fsSize),
		InodeCount:         uint16(inodeCount),
		UsedInodes:         0,
		DataBlocks:         uint16(dataBlocks),
		UsedDataBlocks:     0,
		FirstFreeInode:     0,
		FirstFreeDatablock: 0,
		InodesPerDatablock: uint16(inodesPerBlock()),
		VolumeUUID:         uuid.New(),
	}

	if err := v.writeInodeTable(inodeCount); err != nil {
		return err
	}
	if err := v.writeDatablockChain(inodeCount, dataBlocks); err != nil {
		return err
	}
	if err := v.WriteSuperblock(sb); err != nil {
		return err
	}

	if _, err := v.AllocateInode(sb, TypeDirectory); err != nil {
		return err
	}
	return v.WriteSuperblock(sb)
}

// writeInodeTable initializes every inode with a chained NextFreeInode
// (i+1), default permissions, blank datablocks, and the current time as
// its (soon to be overwritten) mod time.
func (v *Volume) writeInodeTable(inodeCount int) error {
	now := timestamp.GetTime().Unix()
	for i := 0; i < inodeCount; i++ {
		in := &Inode{
			ID:            uint16(i),
			UID:           0,
			GID:           0,
			Permissions:   defaultPermissions,
			ModTime:       now,
			NextFreeInode: int32(i + 1),
		}
		for j := range in.DataBlocks {
			in.DataBlocks[j] = -1
		}
		if err := v.WriteInode(in); err != nil {
			return err
		}
	}
	return nil
}

// writeDatablockChain initializes every data block's free-chain trailer
// to point at the next one.
func (v *Volume) writeDatablockChain(inodeCount, dataBlocks int) error {
	zero := make([]byte, DataBlockPayloadSize)
	for i := 0; i < dataBlocks; i++ {
		if err := v.WriteDatablockPayload(inodeCount, int32(i), zero); err != nil {
			return err
		}
		if err := v.WriteDatablockTrailer(inodeCount, int32(i), uint16(i+1)); err != nil {
			return err
		}
	}
	return nil
}
