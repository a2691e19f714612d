package image

// Stat resolves path to any object within the image at fsPath and
// returns its Entry for the detailed stat command; identical
// resolution to Lsobj, kept separate so each reports its own operation
// name in errors.
func Stat(fsPath, path string) (Entry, error) {
	const op = "stat"
	if !ValidatePath(path) {
		return Entry{}, errBadPath(op)
	}
	v, err := OpenReadOnly(fsPath, op)
	if err != nil {
		return Entry{}, err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return Entry{}, err
	}
	id, absent, err := v.Resolve(sb, path)
	if err != nil {
		return Entry{}, err
	}
	if absent {
		return Entry{}, errBadPath(op)
	}
	in, err := v.ReadInode(id)
	if err != nil {
		return Entry{}, err
	}
	e := entryFromInode(LastSegmentOrRoot(path), in)
	if id == rootInodeID {
		e.VolumeUUID = sb.VolumeUUID.String()
	}
	return e, nil
}
