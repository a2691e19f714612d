package hostmeta

import gotimes "gopkg.in/djherbis/times.v1"

// AccessTime returns the host file's last-access time, for verbose
// logging only: it is never persisted into the image, which has no
// access-time field.
func AccessTime(path string) (t gotimes.Timespec, err error) {
	return gotimes.Stat(path)
}
