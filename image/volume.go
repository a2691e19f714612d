package image

import (
	"github.com/irinakurteva99/bdsm-go/backend"
	"github.com/irinakurteva99/bdsm-go/backend/file"
)

// Volume is the session value for one command invocation: the open
// backing file plus the operation name its errors carry. It holds no
// superblock state of its own and deliberately does not cache it across
// invocations: the superblock is re-read at the start of each command,
// never cached across processes. Callers read it once via ReadSuperblock
// and thread the value through the rest of the operation.
type Volume struct {
	storage backend.Storage
	op      string
}

// Open opens path read-write for a mutating operation.
func Open(path, op string) (*Volume, error) {
	st, err := file.OpenFromPath(path, false)
	if err != nil {
		return nil, errOpen(op, err)
	}
	return &Volume{storage: st, op: op}, nil
}

// OpenReadOnly opens path read-only for a non-mutating operation (fsck,
// debug, lsdir, lsobj, stat).
func OpenReadOnly(path, op string) (*Volume, error) {
	st, err := file.OpenFromPath(path, true)
	if err != nil {
		return nil, errOpen(op, err)
	}
	return &Volume{storage: st, op: op}, nil
}

// OpenTruncate opens path read-write and truncates it, for mkfs.
func OpenTruncate(path, op string) (*Volume, error) {
	st, err := file.OpenTruncate(path)
	if err != nil {
		return nil, errOpen(op, err)
	}
	return &Volume{storage: st, op: op}, nil
}

// FromStorage wraps an already-open backend.Storage directly, bypassing
// path resolution; used by tests to drive the image package against an
// in-memory backend.
func FromStorage(st backend.Storage, op string) *Volume {
	return &Volume{storage: st, op: op}
}

// Close releases the backing file descriptor. Safe to call via defer on
// every exit path, including error paths.
func (v *Volume) Close() error {
	return v.storage.Close()
}

func (v *Volume) readAt(p []byte, off int64) error {
	n, err := v.storage.ReadAt(p, off)
	if err != nil || n != len(p) {
		return errRead(v.op, err)
	}
	return nil
}

func (v *Volume) writeAt(p []byte, off int64) error {
	w, err := v.storage.Writable()
	if err != nil {
		return errWrite(v.op, err)
	}
	n, err := w.WriteAt(p, off)
	if err != nil || n != len(p) {
		return errWrite(v.op, err)
	}
	return nil
}

// ReadSuperblock reads and decodes the superblock from block 0.
func (v *Volume) ReadSuperblock() (*Superblock, error) {
	buf := make([]byte, SuperblockRecordSize)
	if err := v.readAt(buf, 0); err != nil {
		return nil, err
	}
	sb := &Superblock{}
	sb.decode(buf)
	return sb, nil
}

// WriteSuperblock recomputes the checksum and writes the superblock to
// block 0. Every mutating operation ends with this call.
func (v *Volume) WriteSuperblock(sb *Superblock) error {
	sb.recomputeChecksum()
	return v.writeAt(sb.encode(), 0)
}

// ReadInode reads and decodes the inode at id.
func (v *Volume) ReadInode(id uint16) (*Inode, error) {
	buf := make([]byte, InodeSize)
	off := inodeOffset(id)
	if err := v.readAtKind(buf, off, errSeekInode); err != nil {
		return nil, err
	}
	in := &Inode{}
	in.decode(buf)
	return in, nil
}

// WriteInode encodes and writes in at its id's offset.
func (v *Volume) WriteInode(in *Inode) error {
	off := inodeOffset(in.ID)
	return v.writeAtKind(in.encode(), off, errSeekInode)
}

// ReadDatablockPayload reads len(buf) bytes from the start of data block
// index (inodeCount is needed to compute the offset of the data region).
// cpfile passes up to BlockSize bytes, which includes the trailer bytes of
// an in-use block.
func (v *Volume) ReadDatablockPayload(inodeCount int, index int32, buf []byte) error {
	off := datablockOffset(inodeCount, index)
	return v.readAtKind(buf, off, errSeekDatablock)
}

// WriteDatablockPayload writes buf at the start of data block index.
// Callers pass up to BlockSize bytes (cpfile fills whole blocks), so a
// write longer than DataBlockPayloadSize also covers the trailer, which
// only matters while the block is on the free chain.
func (v *Volume) WriteDatablockPayload(inodeCount int, index int32, buf []byte) error {
	off := datablockOffset(inodeCount, index)
	return v.writeAtKind(buf, off, errSeekDatablock)
}

// ReadDatablockTrailer reads the free-chain pointer trailing data block
// index.
func (v *Volume) ReadDatablockTrailer(inodeCount int, index int32) (uint16, error) {
	buf := make([]byte, dataBlockTrailerSize)
	off := datablockOffset(inodeCount, index) + DataBlockPayloadSize
	if err := v.readAtKind(buf, off, errSeekDatablock); err != nil {
		return 0, err
	}
	var t dataBlockTrailer
	t.decode(buf)
	return t.NextFreeDB, nil
}

// WriteDatablockTrailer writes the free-chain pointer trailing data
// block index.
func (v *Volume) WriteDatablockTrailer(inodeCount int, index int32, next uint16) error {
	off := datablockOffset(inodeCount, index) + DataBlockPayloadSize
	t := dataBlockTrailer{NextFreeDB: next}
	return v.writeAtKind(t.encode(), off, errSeekDatablock)
}

// ReadDirectoryRow reads the directory row at data block index, row
// position pos (0-based) within that block.
func (v *Volume) ReadDirectoryRow(inodeCount int, index int32, pos int) (directoryRow, error) {
	buf := make([]byte, DirectoryRowSize)
	off := datablockOffset(inodeCount, index) + int64(pos)*DirectoryRowSize
	var row directoryRow
	if err := v.readAtKind(buf, off, errSeekDatablock); err != nil {
		return row, err
	}
	row.decode(buf)
	return row, nil
}

// WriteDirectoryRow writes row at data block index, row position pos.
func (v *Volume) WriteDirectoryRow(inodeCount int, index int32, pos int, row directoryRow) error {
	off := datablockOffset(inodeCount, index) + int64(pos)*DirectoryRowSize
	return v.writeAtKind(row.encode(), off, errSeekDatablock)
}

// readAtKind / writeAtKind let call sites pick which seek-failure exit
// code applies: datablock and inode locates carry distinct codes,
// everything else uses the generic read/write codes.
func (v *Volume) readAtKind(p []byte, off int64, seekErr func(string, error) *Error) error {
	n, err := v.storage.ReadAt(p, off)
	if err != nil || n != len(p) {
		if err != nil && n == 0 {
			return seekErr(v.op, err)
		}
		return errRead(v.op, err)
	}
	return nil
}

func (v *Volume) writeAtKind(p []byte, off int64, seekErr func(string, error) *Error) error {
	w, err := v.storage.Writable()
	if err != nil {
		return seekErr(v.op, err)
	}
	n, err := w.WriteAt(p, off)
	if err != nil || n != len(p) {
		return errWrite(v.op, err)
	}
	return nil
}
