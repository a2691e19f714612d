package image

// Rmdir validates path, resolves it within the image at fsPath, and
// requires it to be an empty, non-root directory before removing its
// row from the parent. Fails rmdir-precondition if id is
// the root, size != 0, or type != directory.
func Rmdir(fsPath, path string) error {
	const op = "rmdir"
	if !ValidatePath(path) {
		return errBadPath(op)
	}

	v, err := Open(fsPath, op)
	if err != nil {
		return err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return err
	}
	id, absent, err := v.Resolve(sb, path)
	if err != nil {
		return err
	}
	if absent {
		return errBadPath(op)
	}
	target, err := v.ReadInode(id)
	if err != nil {
		return err
	}
	if target.ID == rootInodeID || target.Size != 0 || target.Type != TypeDirectory {
		return errRmdirPrecondition(op)
	}

	parentPath, name := ParentOf(path)
	parentID, absent, err := v.Resolve(sb, parentPath)
	if err != nil {
		return err
	}
	if absent {
		return errBadPath(op)
	}
	parent, err := v.ReadInode(parentID)
	if err != nil {
		return err
	}
	if _, err := v.Remove(sb, parent, name); err != nil {
		return err
	}
	if err := v.WriteInode(parent); err != nil {
		return err
	}
	return v.WriteSuperblock(sb)
}
