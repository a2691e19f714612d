package image

import "testing"

func TestMkfsLayoutFormulas(t *testing.T) {
	const size = smallImageSizeForTest

	wantInodeCount := (size - SuperblockRecordSize) / 2000
	wantTableBlocks := inodeTableBlocks(wantInodeCount)
	wantDataBlocks := size/BlockSize - 1 - wantTableBlocks

	v, sb := buildMinimalImage(t, size)

	if int(sb.InodeCount) != wantInodeCount {
		t.Errorf("InodeCount = %d, want %d", sb.InodeCount, wantInodeCount)
	}
	if int(sb.DataBlocks) != wantDataBlocks {
		t.Errorf("DataBlocks = %d, want %d", sb.DataBlocks, wantDataBlocks)
	}
	if sb.Magic != magicNumber {
		t.Errorf("Magic = %d, want %d", sb.Magic, magicNumber)
	}
	if sb.UsedInodes != 1 {
		t.Errorf("UsedInodes after allocating root = %d, want 1", sb.UsedInodes)
	}

	root, err := v.ReadInode(rootInodeID)
	if err != nil {
		t.Fatalf("ReadInode(root): %v", err)
	}
	if root.Type != TypeDirectory {
		t.Errorf("root.Type = %v, want TypeDirectory", root.Type)
	}
	if root.Size != 0 {
		t.Errorf("root.Size = %d, want 0", root.Size)
	}
}

func TestWriteInodeTableChainsFreeList(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	// Root consumed inode 0; the free chain should now start at 1 and
	// walk every remaining inode in order up to the sentinel.
	if sb.FirstFreeInode != 1 {
		t.Fatalf("FirstFreeInode = %d, want 1", sb.FirstFreeInode)
	}
	hops, err := v.walkInodeFreeChain(sb)
	if err != nil {
		t.Fatalf("walkInodeFreeChain: %v", err)
	}
	if hops != int(sb.InodeCount)-1 {
		t.Errorf("walkInodeFreeChain hops = %d, want %d", hops, int(sb.InodeCount)-1)
	}
}

func TestWriteDatablockChainIsFullyFree(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	if sb.FirstFreeDatablock != 0 {
		t.Fatalf("FirstFreeDatablock = %d, want 0", sb.FirstFreeDatablock)
	}
	hops, err := v.walkDatablockFreeChain(sb)
	if err != nil {
		t.Fatalf("walkDatablockFreeChain: %v", err)
	}
	if hops != int(sb.DataBlocks) {
		t.Errorf("walkDatablockFreeChain hops = %d, want %d", hops, int(sb.DataBlocks))
	}
}
