package image

import "github.com/irinakurteva99/bdsm-go/util/timestamp"

// AllocateInode splices the head off the inode free chain, initializes
// the inode for type t, and persists both the inode and the superblock.
// The superblock write happens after the new head is observed and before
// the allocated inode is initialized on disk: a crash between the two
// writes leaks that inode but leaves the rest of the free chain intact.
func (v *Volume) AllocateInode(sb *Superblock, t InodeType) (uint16, error) {
	if sb.FirstFreeInode == -1 || sb.FirstFreeInode >= int32(sb.InodeCount) {
		return 0, errNoInodes(v.op)
	}
	id := uint16(sb.FirstFreeInode)
	in, err := v.ReadInode(id)
	if err != nil {
		return 0, err
	}
	sb.FirstFreeInode = in.NextFreeInode
	sb.UsedInodes++
	if err := v.WriteSuperblock(sb); err != nil {
		return 0, err
	}

	in.Type = t
	in.NextFreeInode = -1
	in.ModTime = timestamp.GetTime().Unix()
	for i := range in.DataBlocks {
		in.DataBlocks[i] = -1
	}
	in.Size = 0
	if err := v.WriteInode(in); err != nil {
		return 0, err
	}
	return id, nil
}

// AllocateDatablock splices the head off the data-block free chain and
// persists the superblock.
func (v *Volume) AllocateDatablock(sb *Superblock) (int32, error) {
	if sb.FirstFreeDatablock >= int32(sb.DataBlocks) {
		return 0, errNoBlocks(v.op)
	}
	index := sb.FirstFreeDatablock
	next, err := v.ReadDatablockTrailer(int(sb.InodeCount), index)
	if err != nil {
		return 0, err
	}
	sb.FirstFreeDatablock = int32(next)
	sb.UsedDataBlocks++
	if err := v.WriteSuperblock(sb); err != nil {
		return 0, err
	}
	return index, nil
}

// ReleaseInode pushes id back onto the inode free chain. All
// other fields are reset to their zero value: once on the free chain,
// only NextFreeInode is meaningful, and a deterministic zeroed record is
// preferable to carrying stale type/size/datablock data around.
func (v *Volume) ReleaseInode(sb *Superblock, id uint16) error {
	in := &Inode{ID: id, NextFreeInode: sb.FirstFreeInode}
	if err := v.WriteInode(in); err != nil {
		return err
	}
	sb.FirstFreeInode = int32(id)
	sb.UsedInodes--
	return v.WriteSuperblock(sb)
}

// ReleaseDatablock pushes index back onto the data-block free chain.
func (v *Volume) ReleaseDatablock(sb *Superblock, index int32) error {
	if err := v.WriteDatablockTrailer(int(sb.InodeCount), index, uint16(sb.FirstFreeDatablock)); err != nil {
		return err
	}
	sb.FirstFreeDatablock = index
	sb.UsedDataBlocks--
	return v.WriteSuperblock(sb)
}
