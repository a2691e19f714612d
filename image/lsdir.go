package image

// Lsdir resolves path to a directory within the image at fsPath and
// returns one Entry per child, in on-disk order. Fails
// bad-path if path does not resolve or does not name a directory.
func Lsdir(fsPath, path string) ([]Entry, error) {
	const op = "lsdir"
	if !ValidatePath(path) {
		return nil, errBadPath(op)
	}
	v, err := OpenReadOnly(fsPath, op)
	if err != nil {
		return nil, err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return nil, err
	}
	id, absent, err := v.Resolve(sb, path)
	if err != nil {
		return nil, err
	}
	if absent {
		return nil, errBadPath(op)
	}
	dir, err := v.ReadInode(id)
	if err != nil {
		return nil, err
	}
	if dir.Type != TypeDirectory {
		return nil, errBadPath(op)
	}

	ext := extentOf(dir.Size)
	var entries []Entry
	for i := 0; i < ext.blocks; i++ {
		db := dir.DataBlocks[i]
		if db == -1 {
			continue
		}
		rows := ext.rowsInBlock(i)
		for pos := 0; pos < rows; pos++ {
			row, rerr := v.ReadDirectoryRow(int(sb.InodeCount), db, pos)
			if rerr != nil {
				return nil, rerr
			}
			child, rerr := v.ReadInode(row.InodeID)
			if rerr != nil {
				return nil, rerr
			}
			entries = append(entries, entryFromInode(row.name(), child))
		}
	}
	return entries, nil
}
