//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package hostmeta

import "os"

// StatHost falls back to os.Stat's portable FileMode bits on platforms
// with no POSIX uid/gid concept; UID/GID are reported as 0.
func StatHost(path string) (Stat, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Stat{}, err
	}
	return Stat{Mode: uint32(fi.Mode().Perm())}, nil
}
