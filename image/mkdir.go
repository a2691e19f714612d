package image

// Mkdir validates path, resolves its parent within the image at fsPath,
// and appends a new directory child named by the final segment. The
// permission field is never set explicitly here: it inherits whatever
// mkfs's writeInodeTable stamped onto the freshly allocated inode.
func Mkdir(fsPath, path string) error {
	const op = "mkdir"
	if !ValidatePath(path) || path == "+/" {
		return errBadPath(op)
	}
	parentPath, name := ParentOf(path)

	v, err := Open(fsPath, op)
	if err != nil {
		return err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return err
	}
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
	if _, err := v.Append(sb, parent, name, TypeDirectory); err != nil {
		return err
	}
	if err := v.WriteInode(parent); err != nil {
		return err
	}
	return v.WriteSuperblock(sb)
}
