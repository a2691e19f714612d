package image

import "strings"

// ValidatePath checks the path grammar "+/" ( segment "/" )* segment,
// segment in [A-Za-z0-9_.]+, no empty segments, no consecutive "/", no
// trailing "/" except the bare root "+/".
func ValidatePath(path string) bool {
	if path == "+/" {
		return true
	}
	if len(path) <= 2 || path[0] != '+' || path[1] != '/' {
		return false
	}
	for i := 2; i < len(path); i++ {
		c := path[i]
		if c == '/' && path[i-1] == '/' {
			return false
		}
		if !isPathChar(c) && c != '/' {
			return false
		}
	}
	return path[len(path)-1] != '/'
}

func isPathChar(c byte) bool {
	switch {
	case c == '_' || c == '.':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	default:
		return false
	}
}

// segments splits a valid non-root path "+/a/b/c" into ["a","b","c"].
// A trailing "/", as on the parent paths ParentOf returns ("+/a/"), is
// ignored.
func segments(path string) []string {
	if path == "+/" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(path[2:], "/"), "/")
}

// Resolve walks from the root directory (inode 0) following segments,
// returning the id of the final inode. Returns absent=true
// if any segment is not found.
func (v *Volume) Resolve(sb *Superblock, path string) (id uint16, absent bool, err error) {
	if path == "+/" {
		return rootInodeID, false, nil
	}
	current := uint16(rootInodeID)
	for _, seg := range segments(path) {
		in, rerr := v.ReadInode(current)
		if rerr != nil {
			return 0, false, rerr
		}
		childID, found, lerr := v.Lookup(sb, in, seg)
		if lerr != nil {
			return 0, false, lerr
		}
		if !found {
			return 0, true, nil
		}
		current = childID
	}
	return current, false, nil
}

// ParentOf splits a valid non-root path at its last "/" into the parent
// path and the final segment name.
func ParentOf(path string) (parentPath, name string) {
	idx := strings.LastIndexByte(path, '/')
	name = path[idx+1:]
	parentPath = path[:idx+1]
	return parentPath, name
}

// LastSegmentOrRoot returns the final path segment, or "+" for the bare
// root (lsobj's name column).
func LastSegmentOrRoot(path string) string {
	if path == "+/" {
		return "+"
	}
	_, name := ParentOf(path)
	return name
}
