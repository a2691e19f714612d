package image

import "github.com/irinakurteva99/bdsm-go/util/bitmap"

// Fsck verifies the superblock checksum and both free-chain lengths. It
// additionally detects cycles in either chain using an in-memory
// visited-bitmap sized to the inode count (resp. data-block count), so a
// pointer that loops back into the chain instead of reaching the sentinel
// is reported as corrupt rather than walked forever.
func Fsck(path string) error {
	const op = "fsck"
	v, err := OpenReadOnly(path, op)
	if err != nil {
		return err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return err
	}
	if !sb.verifyChecksum() {
		return errCorrupt(op, nil)
	}

	inodeHops, err := v.walkInodeFreeChain(sb)
	if err != nil {
		return err
	}
	if inodeHops != int(sb.InodeCount)-int(sb.UsedInodes) {
		return errCorrupt(op, nil)
	}

	dbHops, err := v.walkDatablockFreeChain(sb)
	if err != nil {
		return err
	}
	if dbHops != int(sb.DataBlocks)-int(sb.UsedDataBlocks) {
		return errCorrupt(op, nil)
	}
	return nil
}

func (v *Volume) walkInodeFreeChain(sb *Superblock) (int, error) {
	visited := bitmap.NewBits(int(sb.InodeCount))
	hops := 0
	curr := sb.FirstFreeInode
	for curr < int32(sb.InodeCount) {
		if curr < 0 {
			return 0, errCorrupt("fsck", nil)
		}
		seen, err := visited.IsSet(int(curr))
		if err != nil {
			return 0, errCorrupt("fsck", err)
		}
		if seen {
			return 0, errCorrupt("fsck", nil)
		}
		if err := visited.Set(int(curr)); err != nil {
			return 0, errCorrupt("fsck", err)
		}
		hops++
		in, err := v.ReadInode(uint16(curr))
		if err != nil {
			return 0, err
		}
		curr = in.NextFreeInode
	}
	return hops, nil
}

func (v *Volume) walkDatablockFreeChain(sb *Superblock) (int, error) {
	visited := bitmap.NewBits(int(sb.DataBlocks))
	hops := 0
	curr := sb.FirstFreeDatablock
	for curr < int32(sb.DataBlocks) {
		if curr < 0 {
			return 0, errCorrupt("fsck", nil)
		}
		seen, err := visited.IsSet(int(curr))
		if err != nil {
			return 0, errCorrupt("fsck", err)
		}
		if seen {
			return 0, errCorrupt("fsck", nil)
		}
		if err := visited.Set(int(curr)); err != nil {
			return 0, errCorrupt("fsck", err)
		}
		hops++
		next, err := v.ReadDatablockTrailer(int(sb.InodeCount), curr)
		if err != nil {
			return 0, err
		}
		curr = int32(next)
	}
	return hops, nil
}
