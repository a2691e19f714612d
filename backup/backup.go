// Package backup implements the supplemental snapshot/restore feature:
// compressing a bdsm image file to a portable archive and decompressing
// it back, independent of the filesystem operations in package image.
package backup

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Codec names the compression algorithm a snapshot was written with,
// recorded in its manifest line so Restore can pick the matching reader
// without the caller having to remember which flag produced it.
type Codec string

const (
	CodecLZ4 Codec = "lz4"
	CodecXZ  Codec = "xz"
)

const manifestMagic = "BDSMSNAP1"

// Snapshot compresses the image file at srcPath into a new archive at
// dstPath, tagged with a fresh snapshot id and the requested codec.
// Returns the snapshot id.
func Snapshot(srcPath, dstPath string, codec Codec) (uuid.UUID, error) {
	var zero uuid.UUID
	src, err := os.Open(srcPath)
	if err != nil {
		return zero, fmt.Errorf("opening source image: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return zero, fmt.Errorf("creating snapshot file: %w", err)
	}
	defer dst.Close()

	id := uuid.New()
	if _, err := fmt.Fprintf(dst, "%s %s %s\n", manifestMagic, id, codec); err != nil {
		return zero, fmt.Errorf("writing manifest: %w", err)
	}

	switch codec {
	case CodecLZ4:
		w := lz4.NewWriter(dst)
		if _, err := io.Copy(w, src); err != nil {
			return zero, fmt.Errorf("compressing snapshot: %w", err)
		}
		if err := w.Close(); err != nil {
			return zero, fmt.Errorf("finalizing snapshot: %w", err)
		}
	case CodecXZ:
		w, err := xz.NewWriter(dst)
		if err != nil {
			return zero, fmt.Errorf("opening xz writer: %w", err)
		}
		if _, err := io.Copy(w, src); err != nil {
			return zero, fmt.Errorf("compressing snapshot: %w", err)
		}
		if err := w.Close(); err != nil {
			return zero, fmt.Errorf("finalizing snapshot: %w", err)
		}
	default:
		return zero, fmt.Errorf("unknown codec %q", codec)
	}
	return id, nil
}

// Restore decompresses the archive at srcPath (produced by Snapshot)
// into a fresh host file at dstPath, choosing the decompressor named in
// the archive's own manifest line.
func Restore(srcPath, dstPath string) (uuid.UUID, error) {
	var zero uuid.UUID
	src, err := os.Open(srcPath)
	if err != nil {
		return zero, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer src.Close()

	br := bufio.NewReader(src)
	line, err := br.ReadString('\n')
	if err != nil {
		return zero, fmt.Errorf("reading manifest: %w", err)
	}
	var magic, idStr, codecStr string
	if _, err := fmt.Sscanf(line, "%s %s %s", &magic, &idStr, &codecStr); err != nil || magic != manifestMagic {
		return zero, fmt.Errorf("not a bdsm snapshot file: %q", srcPath)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return zero, fmt.Errorf("invalid snapshot id in manifest: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return zero, fmt.Errorf("creating restore target: %w", err)
	}
	defer dst.Close()

	switch Codec(codecStr) {
	case CodecLZ4:
		r := lz4.NewReader(br)
		if _, err := io.Copy(dst, r); err != nil {
			return zero, fmt.Errorf("decompressing snapshot: %w", err)
		}
	case CodecXZ:
		r, err := xz.NewReader(br)
		if err != nil {
			return zero, fmt.Errorf("opening xz reader: %w", err)
		}
		if _, err := io.Copy(dst, r); err != nil {
			return zero, fmt.Errorf("decompressing snapshot: %w", err)
		}
	default:
		return zero, fmt.Errorf("unknown codec %q in manifest", codecStr)
	}
	return id, nil
}
