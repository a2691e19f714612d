package image

import (
	"testing"

	"github.com/irinakurteva99/bdsm-go/backend/memstorage"
)

const smallImageSizeForTest = 64 * 1024

// buildMinimalImage mkfs's a tiny in-memory image directly against a
// Volume, bypassing the host-path-based Mkfs entry point, so tests can
// then corrupt specific bytes before running fsck's chain walkers.
func buildMinimalImage(t *testing.T, size int) (*Volume, *Superblock) {
	t.Helper()
	st := memstorage.New(size)
	v := FromStorage(st, "test")

	inodeCount := (size - SuperblockRecordSize) / 2000
	tableBlocks := inodeTableBlocks(inodeCount)
	dataBlocks := size/BlockSize - 1 - tableBlocks

	sb := &Superblock{
		Magic:      magicNumber,
		FsSize:     uint32(size),
		InodeCount: uint16(inodeCount),
		DataBlocks: uint16(dataBlocks),
	}
	if err := v.writeInodeTable(inodeCount); err != nil {
		t.Fatalf("writeInodeTable: %v", err)
	}
	if err := v.writeDatablockChain(inodeCount, dataBlocks); err != nil {
		t.Fatalf("writeDatablockChain: %v", err)
	}
	if err := v.WriteSuperblock(sb); err != nil {
		t.Fatalf("WriteSuperblock: %v", err)
	}
	if _, err := v.AllocateInode(sb, TypeDirectory); err != nil {
		t.Fatalf("AllocateInode(root): %v", err)
	}
	return v, sb
}

func TestWalkInodeFreeChainDetectsCycle(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	// Point inode 1's free-chain pointer back at inode 1 itself: a
	// one-node cycle that never reaches the inodeCount sentinel.
	in, err := v.ReadInode(1)
	if err != nil {
		t.Fatalf("ReadInode(1): %v", err)
	}
	in.NextFreeInode = 1
	if err := v.WriteInode(in); err != nil {
		t.Fatalf("WriteInode(1): %v", err)
	}

	if _, err := v.walkInodeFreeChain(sb); err == nil {
		t.Fatal("walkInodeFreeChain() with a cycle = nil error, want corrupt")
	}
}

func TestWalkInodeFreeChainHealthy(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	hops, err := v.walkInodeFreeChain(sb)
	if err != nil {
		t.Fatalf("walkInodeFreeChain(): %v", err)
	}
	want := int(sb.InodeCount) - int(sb.UsedInodes)
	if hops != want {
		t.Errorf("walkInodeFreeChain() = %d hops, want %d", hops, want)
	}
}

func TestWalkDatablockFreeChainDetectsCycle(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	if err := v.WriteDatablockTrailer(int(sb.InodeCount), 0, 0); err != nil {
		t.Fatalf("WriteDatablockTrailer(0): %v", err)
	}

	if _, err := v.walkDatablockFreeChain(sb); err == nil {
		t.Fatal("walkDatablockFreeChain() with a cycle = nil error, want corrupt")
	}
}
