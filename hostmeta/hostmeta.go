// Package hostmeta translates between host filesystem metadata and the
// image's permission/ownership encoding, and formats the
// mode-line and stat-block text that lsdir, lsobj, and stat print.
package hostmeta

import (
	"fmt"
	"os/user"
	"strconv"
	"time"
)

// Stat is the subset of a host file's metadata cpfile host→image needs:
// the exact owning uid/gid and POSIX permission bits, read via the
// platform-specific stat backend in hostmeta_unix.go/hostmeta_other.go
// rather than the lossy bits os.FileInfo.Mode() exposes.
type Stat struct {
	UID  uint16
	GID  uint16
	Mode uint32 // raw POSIX permission bits, e.g. 0644
}

// EncodePermissions converts host POSIX permission bits into the image's
// decimal-digit encoding: add 400/200/100 for owner r/w/x,
// 40/20/10 for group, 4/2/1 for other.
func EncodePermissions(mode uint32) uint16 {
	var perm uint16
	if mode&0o400 != 0 {
		perm += 400
	}
	if mode&0o200 != 0 {
		perm += 200
	}
	if mode&0o100 != 0 {
		perm += 100
	}
	if mode&0o040 != 0 {
		perm += 40
	}
	if mode&0o020 != 0 {
		perm += 20
	}
	if mode&0o010 != 0 {
		perm += 10
	}
	if mode&0o004 != 0 {
		perm += 4
	}
	if mode&0o002 != 0 {
		perm += 2
	}
	if mode&0o001 != 0 {
		perm += 1
	}
	return perm
}

// UserName resolves uid to a host username, falling back to the decimal
// uid when no passwd entry exists.
func UserName(uid uint16) string {
	u, err := user.LookupId(strconv.Itoa(int(uid)))
	if err != nil {
		return strconv.Itoa(int(uid))
	}
	return u.Username
}

// GroupName resolves gid to a host group name, falling back to the
// decimal gid when no group entry exists.
func GroupName(gid uint16) string {
	g, err := user.LookupGroupId(strconv.Itoa(int(gid)))
	if err != nil {
		return strconv.Itoa(int(gid))
	}
	return g.Name
}

// permChar returns ch if digit (0-7 as rwx bits) has bit set, else '-'.
func permChar(digit uint16, bit uint16, ch byte) byte {
	if digit&bit != 0 {
		return ch
	}
	return '-'
}

// triple renders one base-10 permission digit (e.g. the "6" in 644) as
// its three rwx characters.
func triple(digit uint16) string {
	return string([]byte{
		permChar(digit, 4, 'r'),
		permChar(digit, 2, 'w'),
		permChar(digit, 1, 'x'),
	})
}

// ModeLine renders one listing line:
// <t><ur><uw><ux><gr><gw><gx><or><ow><ox> <user> <group> <size> <time>
func ModeLine(isDir bool, permissions uint16, uid, gid uint16, size uint32, modTime int64) string {
	t := byte('-')
	if isDir {
		t = 'd'
	}
	owner := triple(permissions / 100)
	group := triple((permissions % 100) / 10)
	other := triple(permissions % 10)
	return fmt.Sprintf("%c%s%s%s %s %s %d %s",
		t, owner, group, other,
		UserName(uid), GroupName(gid),
		size, formatModTime(modTime))
}

// formatModTime renders YYYY-MM-eTHH-MM-SS, strftime
// "%Y-%m-%eT%H-%M-%S" with a space-padded day field.
func formatModTime(unixSec int64) string {
	t := time.Unix(unixSec, 0)
	return fmt.Sprintf("%04d-%02d-%2dT%02d-%02d-%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// formatStatModTime renders YYYY-MM-e HH-MM-SS, a space rather than a T
// between date and time (strftime "%Y-%m-%e %H-%M-%S").
func formatStatModTime(unixSec int64) string {
	t := time.Unix(unixSec, 0)
	return fmt.Sprintf("%04d-%02d-%2d %02d-%02d-%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// StatBlock renders the stat output block: label width 17,
// right-aligned, colon-space delimited. volumeUUID is printed as a
// trailing "Volume UUID" line only when non-empty, i.e. only for the
// root object.
func StatBlock(name string, isDir bool, size uint32, inodeID uint16, uid, gid uint16, permissions uint16, modTime int64, volumeUUID string) string {
	typ := "regular file"
	if isDir {
		typ = "directory"
	}
	out := fmt.Sprintf(
		"%17s: %s\n%17s: %s\n%17s: %d\n%17s: %d\n%17s: %s\n%17s: %s\n%17s: %d\n%17s: %s\n",
		"File", name,
		"Type", typ,
		"Size", size,
		"Inode", inodeID,
		"Uid", UserName(uid),
		"Gid", GroupName(gid),
		"Access", permissions,
		"Modification time", formatStatModTime(modTime),
	)
	if volumeUUID != "" {
		out += fmt.Sprintf("%17s: %s\n", "Volume UUID", volumeUUID)
	}
	return out
}
