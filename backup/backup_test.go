package backup_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/irinakurteva99/bdsm-go/backup"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	for _, codec := range []backup.Codec{backup.CodecLZ4, backup.CodecXZ} {
		t.Run(string(codec), func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "image.bdsm")
			snap := filepath.Join(dir, "image.snap")
			restored := filepath.Join(dir, "image.restored")

			want := bytes.Repeat([]byte("bdsm-snapshot-payload"), 1000)
			if err := os.WriteFile(src, want, 0o644); err != nil {
				t.Fatalf("WriteFile(src): %v", err)
			}

			id, err := backup.Snapshot(src, snap, codec)
			if err != nil {
				t.Fatalf("Snapshot(%s): %v", codec, err)
			}
			var zero [16]byte
			if bytes.Equal(id[:], zero[:]) {
				t.Fatal("Snapshot returned the zero uuid")
			}

			gotID, err := backup.Restore(snap, restored)
			if err != nil {
				t.Fatalf("Restore(%s): %v", codec, err)
			}
			if gotID != id {
				t.Errorf("Restore id = %s, want %s", gotID, id)
			}

			got, err := os.ReadFile(restored)
			if err != nil {
				t.Fatalf("ReadFile(restored): %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("restored content mismatch: got %d bytes, want %d", len(got), len(want))
			}
		})
	}
}

func TestRestoreRejectsNonSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "not-a-snapshot")
	if err := os.WriteFile(bogus, []byte("just some bytes\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := backup.Restore(bogus, filepath.Join(dir, "out")); err == nil {
		t.Fatal("Restore() on a non-snapshot file = nil error, want error")
	}
}
