package image

import (
	"fmt"

	"github.com/irinakurteva99/bdsm-go/util/hexdump"
)

// Debug reads the superblock and returns a field-by-field summary
// followed by a hex/ASCII dump of the raw record, for the bdsm debug
// command. Purely diagnostic: no other command parses this
// output.
func Debug(path string) (string, error) {
	const op = "debug"
	v, err := OpenReadOnly(path, op)
	if err != nil {
		return "", err
	}
	defer v.Close()

	buf := make([]byte, SuperblockRecordSize)
	if err := v.readAt(buf, 0); err != nil {
		return "", err
	}
	sb := &Superblock{}
	sb.decode(buf)

	out := "This is the structure of the FileSystem\n\n"
	out += fmt.Sprintf("   File system size: %d\n", sb.FsSize)
	out += fmt.Sprintf("             Inodes: %d\n", sb.InodeCount)
	out += fmt.Sprintf("         Inode size: %d\n", InodeSize)
	out += fmt.Sprintf("        Used inodes: %d\n", sb.UsedInodes)
	out += fmt.Sprintf("         Datablocks: %d\n", sb.DataBlocks)
	out += fmt.Sprintf("     Datablock size: %d\n", DataBlockPayloadSize)
	out += fmt.Sprintf("    Used datablocks: %d\n", sb.UsedDataBlocks)
	out += fmt.Sprintf(" Inodes per datablock: %d\n", sb.InodesPerDatablock)
	out += fmt.Sprintf("        Volume UUID: %s\n", sb.VolumeUUID)
	out += fmt.Sprintf("           Checksum: %#04x\n", sb.Checksum)
	out += "\n"
	out += hexdump.DumpByteSlice(buf, 16, true, true, false)
	return out, nil
}
