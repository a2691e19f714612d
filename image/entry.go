package image

// Entry is one resolved directory entry or object, carrying everything
// lsdir/lsobj/stat need to format a line without re-reading the inode.
type Entry struct {
	Name        string
	ID          uint16
	Type        InodeType
	UID         uint16
	GID         uint16
	Permissions uint16
	Size        uint32
	ModTime     int64

	// VolumeUUID is set only when the entry is the root object; stat
	// prints the volume UUID there, alongside debug.
	VolumeUUID string
}

func entryFromInode(name string, in *Inode) Entry {
	return Entry{
		Name:        name,
		ID:          in.ID,
		Type:        in.Type,
		UID:         in.UID,
		GID:         in.GID,
		Permissions: in.Permissions,
		Size:        in.Size,
		ModTime:     in.ModTime,
	}
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Type == TypeDirectory
}
