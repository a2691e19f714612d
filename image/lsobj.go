package image

// Lsobj resolves path to any object (file or directory) within the
// image at fsPath and returns its Entry, with Name set to the final
// path segment or "+" for the root.
func Lsobj(fsPath, path string) (Entry, error) {
	const op = "lsobj"
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
	return entryFromInode(LastSegmentOrRoot(path), in), nil
}
