package image

import "testing"

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"+/", true},
		{"+/a", true},
		{"+/a/b/c", true},
		{"+/a_b.c/D9", true},
		{"", false},
		{"+", false},
		{"/a", false},
		{"a/b", false},
		{"+/a/", false},
		{"+//a", false},
		{"+/a//b", false},
		{"+/a b", false},
		{"+/a$b", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ValidatePath(tt.path); got != tt.want {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"+/", nil},
		{"+/a", []string{"a"}},
		{"+/a/b/c", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		got := segments(tt.path)
		if len(got) != len(tt.want) {
			t.Fatalf("segments(%q) = %v, want %v", tt.path, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("segments(%q)[%d] = %q, want %q", tt.path, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParentOf(t *testing.T) {
	tests := []struct {
		path       string
		wantParent string
		wantName   string
	}{
		{"+/a", "+/", "a"},
		{"+/a/b", "+/a/", "b"},
		{"+/a/b/c", "+/a/b/", "c"},
	}
	for _, tt := range tests {
		parent, name := ParentOf(tt.path)
		if parent != tt.wantParent || name != tt.wantName {
			t.Errorf("ParentOf(%q) = (%q, %q), want (%q, %q)", tt.path, parent, name, tt.wantParent, tt.wantName)
		}
	}
}

func TestLastSegmentOrRoot(t *testing.T) {
	if got := LastSegmentOrRoot("+/"); got != "+" {
		t.Errorf("LastSegmentOrRoot(+/) = %q, want %q", got, "+")
	}
	if got := LastSegmentOrRoot("+/a/b"); got != "b" {
		t.Errorf("LastSegmentOrRoot(+/a/b) = %q, want %q", got, "b")
	}
}

func TestResolve(t *testing.T) {
	v, sb := buildMinimalImage(t, smallImageSizeForTest)

	root, err := v.ReadInode(rootInodeID)
	if err != nil {
		t.Fatalf("ReadInode(root): %v", err)
	}
	childID, err := v.Append(sb, root, "a", TypeDirectory)
	if err != nil {
		t.Fatalf("Append(a): %v", err)
	}
	if err := v.WriteInode(root); err != nil {
		t.Fatalf("WriteInode(root): %v", err)
	}

	id, absent, err := v.Resolve(sb, "+/a")
	if err != nil {
		t.Fatalf("Resolve(+/a): %v", err)
	}
	if absent {
		t.Fatal("Resolve(+/a) reported absent, want found")
	}
	if id != childID {
		t.Errorf("Resolve(+/a) = %d, want %d", id, childID)
	}

	_, absent, err = v.Resolve(sb, "+/missing")
	if err != nil {
		t.Fatalf("Resolve(+/missing): %v", err)
	}
	if !absent {
		t.Error("Resolve(+/missing) reported found, want absent")
	}

	id, absent, err = v.Resolve(sb, "+/")
	if err != nil || absent || id != rootInodeID {
		t.Errorf("Resolve(+/) = (%d, %v, %v), want (%d, false, nil)", id, absent, err, rootInodeID)
	}
}
