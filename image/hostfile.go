package image

import "os"

// hostSize returns the current size, in bytes, of the host file at path.
func hostSize(path string) (int, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return int(fi.Size()), nil
}
