//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package hostmeta

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StatHost reads the raw uid/gid/permission bits of the host file at
// path via a direct stat(2) call; os.FileInfo.Mode() would lose the
// exact owner/group bits.
func StatHost(path string) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Stat{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Stat{
		UID:  uint16(st.Uid),
		GID:  uint16(st.Gid),
		Mode: uint32(st.Mode) & 0o777,
	}, nil
}
