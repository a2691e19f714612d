package image

// dirExtent describes how many data blocks a directory's entries span
// and how many rows live in the final (possibly partial) block:
// full_blocks = size/BlockSize, tail_rows = (size%BlockSize)/RowSize.
type dirExtent struct {
	blocks   int
	tailRows int
}

func extentOf(size uint32) dirExtent {
	blocks := int(size) / BlockSize
	tailRows := int(size%BlockSize) / DirectoryRowSize
	if tailRows > 0 {
		blocks++
	}
	return dirExtent{blocks: blocks, tailRows: tailRows}
}

// rowsInBlock returns how many rows block i (0-based, of a directory
// spanning ext.blocks blocks) holds.
func (ext dirExtent) rowsInBlock(i int) int {
	if i == ext.blocks-1 && ext.tailRows > 0 {
		return ext.tailRows
	}
	return directoryRowsPerBlock
}

// Lookup finds name among parent's entries, returning its child inode id
// and true, or false if absent.
func (v *Volume) Lookup(sb *Superblock, parent *Inode, name string) (uint16, bool, error) {
	ext := extentOf(parent.Size)
	for i := 0; i < ext.blocks; i++ {
		db := parent.DataBlocks[i]
		if db == -1 {
			continue
		}
		rows := ext.rowsInBlock(i)
		for pos := 0; pos < rows; pos++ {
			row, err := v.ReadDirectoryRow(int(sb.InodeCount), db, pos)
			if err != nil {
				return 0, false, err
			}
			if row.name() == name {
				return row.InodeID, true, nil
			}
		}
	}
	return 0, false, nil
}

// Append creates a new child inode of type t named name under parent,
// writing its directory row and growing parent.Size by DirectoryRowSize.
// Returns the new child id. Caller must persist parent afterward.
func (v *Volume) Append(sb *Superblock, parent *Inode, name string, t InodeType) (uint16, error) {
	if _, found, err := v.Lookup(sb, parent, name); err != nil {
		return 0, err
	} else if found {
		return 0, errExists(v.op)
	}

	row, err := newDirectoryRow(v.op, 0, name)
	if err != nil {
		return 0, err
	}

	blockIdx := int(parent.Size) / BlockSize
	posInBlock := int(parent.Size%BlockSize) / DirectoryRowSize

	if blockIdx >= maxFileDatablocks {
		return 0, errDirFull(v.op)
	}

	db := parent.DataBlocks[blockIdx]
	if db == -1 {
		newDB, err := v.AllocateDatablock(sb)
		if err != nil {
			return 0, err
		}
		parent.DataBlocks[blockIdx] = newDB
		db = newDB
	}

	childID, err := v.AllocateInode(sb, t)
	if err != nil {
		return 0, err
	}
	row.InodeID = childID

	if err := v.WriteDirectoryRow(int(sb.InodeCount), db, posInBlock, row); err != nil {
		return 0, err
	}
	parent.Size += DirectoryRowSize
	return childID, nil
}

// Remove locates name's row in parent and, if and only if it is the last
// row in the directory, splices it out: shrinks parent.Size, releases the
// trailing data block when it becomes empty, and releases the child
// inode. If the row is not the last row, parent.Size is left unchanged
// and the child inode is still released, so a stale row referencing a
// recycled inode can remain.
//
// Returns absent=true if name was not found.
func (v *Volume) Remove(sb *Superblock, parent *Inode, name string) (absent bool, err error) {
	ext := extentOf(parent.Size)
	if ext.blocks == 0 {
		return true, nil
	}

	var (
		targetBlock, targetPos int
		targetRow              directoryRow
		found                  bool
	)
	for i := 0; i < ext.blocks; i++ {
		db := parent.DataBlocks[i]
		if db == -1 {
			return false, errInternal(v.op)
		}
		rows := ext.rowsInBlock(i)
		for pos := 0; pos < rows; pos++ {
			row, rerr := v.ReadDirectoryRow(int(sb.InodeCount), db, pos)
			if rerr != nil {
				return false, rerr
			}
			if row.name() == name {
				targetBlock, targetPos, targetRow, found = i, pos, row, true
			}
		}
	}
	if !found {
		return true, nil
	}

	lastBlockIdx := ext.blocks - 1
	lastPos := ext.rowsInBlock(lastBlockIdx) - 1
	isLastRow := targetBlock == lastBlockIdx && targetPos == lastPos

	if isLastRow {
		parent.Size -= DirectoryRowSize
		if parent.Size%BlockSize == 0 {
			if err := v.ReleaseDatablock(sb, parent.DataBlocks[lastBlockIdx]); err != nil {
				return false, err
			}
			parent.DataBlocks[lastBlockIdx] = -1
		}
	}
	if err := v.ReleaseInode(sb, targetRow.InodeID); err != nil {
		return false, err
	}
	return false, nil
}
