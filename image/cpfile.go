package image

import (
	"io"
	"os"

	"github.com/irinakurteva99/bdsm-go/hostmeta"
)

// CpfileIn copies the host file at src into the image at fsPath, at the
// in-image path dst. dst is either an
// existing regular-file inode (truncated and overwritten) or a
// not-yet-existing path whose parent must already exist.
func CpfileIn(fsPath, src, dst string) error {
	const op = "cpfile"
	if !ValidatePath(dst) {
		return errBadPath(op)
	}

	hf, err := os.Open(src)
	if err != nil {
		return errHostOpenSrc(op, err)
	}
	defer hf.Close()
	fi, err := hf.Stat()
	if err != nil {
		return errHostOpenSrc(op, err)
	}
	size := fi.Size()
	blocksNeeded := ceilDiv(int(size), BlockSize)
	if blocksNeeded > maxFileDatablocks {
		return errTooBig(op)
	}
	hostInfo, err := hostmeta.StatHost(src)
	if err != nil {
		return errHostOpenSrc(op, err)
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

	var target *Inode
	id, absent, err := v.Resolve(sb, dst)
	if err != nil {
		return err
	}
	if !absent {
		existing, rerr := v.ReadInode(id)
		if rerr != nil {
			return rerr
		}
		if existing.Type != TypeFile {
			return errExists(op)
		}
		if err := v.truncateFile(sb, existing); err != nil {
			return err
		}
		target = existing
	} else {
		parentPath, name := ParentOf(dst)
		parentID, pabsent, rerr := v.Resolve(sb, parentPath)
		if rerr != nil {
			return rerr
		}
		if pabsent {
			return errBadPath(op)
		}
		parent, rerr := v.ReadInode(parentID)
		if rerr != nil {
			return rerr
		}
		childID, rerr := v.Append(sb, parent, name, TypeFile)
		if rerr != nil {
			return rerr
		}
		if err := v.WriteInode(parent); err != nil {
			return err
		}
		target, rerr = v.ReadInode(childID)
		if rerr != nil {
			return rerr
		}
	}

	buf := make([]byte, BlockSize)
	for i := 0; i < blocksNeeded; i++ {
		n := BlockSize
		if i == blocksNeeded-1 && int(size)%BlockSize != 0 {
			n = int(size) % BlockSize
		}
		if _, err := io.ReadFull(hf, buf[:n]); err != nil {
			return errHostRead(op, err)
		}
		dbIdx, err := v.AllocateDatablock(sb)
		if err != nil {
			return err
		}
		target.DataBlocks[i] = dbIdx
		if err := v.WriteDatablockPayload(int(sb.InodeCount), dbIdx, buf[:n]); err != nil {
			return err
		}
	}

	target.Size = uint32(size)
	target.UID = hostInfo.UID
	target.GID = hostInfo.GID
	target.Permissions = hostmeta.EncodePermissions(hostInfo.Mode)
	if err := v.WriteInode(target); err != nil {
		return err
	}
	return v.WriteSuperblock(sb)
}

// truncateFile releases every data block an existing file inode holds
// and resets it to empty, ahead of overwriting it with new content.
func (v *Volume) truncateFile(sb *Superblock, in *Inode) error {
	n := usedDatablockSlots(in.Size)
	for i := 0; i < n; i++ {
		if in.DataBlocks[i] == -1 {
			continue
		}
		if err := v.ReleaseDatablock(sb, in.DataBlocks[i]); err != nil {
			return err
		}
		in.DataBlocks[i] = -1
	}
	in.Size = 0
	return nil
}

// CpfileOut copies the file at the in-image path src (within the image
// at fsPath) to the host path dst. src
// must exist and be a regular file.
func CpfileOut(fsPath, src, dst string) error {
	const op = "cpfile"
	if !ValidatePath(src) {
		return errBadPath(op)
	}

	v, err := OpenReadOnly(fsPath, op)
	if err != nil {
		return err
	}
	defer v.Close()

	sb, err := v.ReadSuperblock()
	if err != nil {
		return err
	}
	id, absent, err := v.Resolve(sb, src)
	if err != nil {
		return err
	}
	if absent {
		return errAbsent(op)
	}
	in, err := v.ReadInode(id)
	if err != nil {
		return err
	}
	if in.Type != TypeFile {
		return errAbsent(op)
	}

	hf, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errHostOpenDst(op, err)
	}
	defer hf.Close()

	blocks := usedDatablockSlots(in.Size)
	buf := make([]byte, BlockSize)
	for i := 0; i < blocks; i++ {
		n := BlockSize
		if i == blocks-1 && int(in.Size)%BlockSize != 0 {
			n = int(in.Size) % BlockSize
		}
		if err := v.ReadDatablockPayload(int(sb.InodeCount), in.DataBlocks[i], buf[:n]); err != nil {
			return err
		}
		if _, err := hf.Write(buf[:n]); err != nil {
			return errHostWrite(op, err)
		}
	}
	return nil
}
