package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testImageSize = 64 * 1024

func tmpImage(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "bdsm-cli-image")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if err := f.Truncate(testImageSize); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	return f.Name()
}

// run executes root with args against the image at fsPath, returning
// what the command printed (writeStdout writes to os.Stdout directly,
// so it's captured by redirecting the process's stdout for the call)
// and any error from Execute.
func run(t *testing.T, fsPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BDSM_FS", fsPath)
	root := newRootCmd()
	root.SetArgs(args)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	realStdout := os.Stdout
	os.Stdout = w
	execErr := root.Execute()
	os.Stdout = realStdout
	w.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return out.String(), execErr
}

func TestMkfsFsckMkdirLsdir(t *testing.T) {
	path := tmpImage(t)

	if _, err := run(t, path, "mkfs"); err != nil {
		t.Fatalf("mkfs: %v", err)
	}
	if _, err := run(t, path, "fsck"); err != nil {
		t.Fatalf("fsck: %v", err)
	}
	if _, err := run(t, path, "mkdir", "+/a"); err != nil {
		t.Fatalf("mkdir +/a: %v", err)
	}

	out, err := run(t, path, "lsdir", "+/")
	if err != nil {
		t.Fatalf("lsdir +/: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte(" a\n")) {
		t.Errorf("lsdir +/ output = %q, want it to list entry %q", out, "a")
	}
}

func TestMkdirDuplicateExitsWithImageErrorCode(t *testing.T) {
	path := tmpImage(t)
	if _, err := run(t, path, "mkfs"); err != nil {
		t.Fatalf("mkfs: %v", err)
	}
	if _, err := run(t, path, "mkdir", "+/a"); err != nil {
		t.Fatalf("first mkdir +/a: %v", err)
	}

	_, err := run(t, path, "mkdir", "+/a")
	if err == nil {
		t.Fatal("second mkdir +/a = nil error, want exists error")
	}
	if code := exitCodeFor(err); code != 9 {
		t.Errorf("exitCodeFor(second mkdir) = %d, want 9", code)
	}
}

// runCapturingUsage executes root with args, collecting cobra's own
// error and usage output (which goes to the command's err/out streams,
// not ours) so tests can assert a usage line was actually printed.
func runCapturingUsage(t *testing.T, fsPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BDSM_FS", fsPath)
	root := newRootCmd()
	root.SetArgs(args)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.Execute()
	return buf.String(), err
}

func TestUnknownCommandExitsOneAndPrintsUsage(t *testing.T) {
	path := tmpImage(t)
	out, err := runCapturingUsage(t, path, "frobnicate")
	if err == nil {
		t.Fatal("unknown subcommand = nil error, want error")
	}
	if code := exitCodeFor(err); code != 1 {
		t.Errorf("exitCodeFor(unknown command) = %d, want 1", code)
	}
	if out == "" {
		t.Error("unknown subcommand printed nothing, want an error/usage line")
	}
}

func TestWrongArityExitsOneAndPrintsUsage(t *testing.T) {
	path := tmpImage(t)
	out, err := runCapturingUsage(t, path, "mkdir")
	if err == nil {
		t.Fatal("mkdir with no args = nil error, want error")
	}
	if code := exitCodeFor(err); code != 1 {
		t.Errorf("exitCodeFor(mkdir with no args) = %d, want 1", code)
	}
	if !bytes.Contains([]byte(out), []byte("Usage")) {
		t.Errorf("mkdir with no args output = %q, want a usage block", out)
	}
}

func TestMissingBackingFileExitsTwo(t *testing.T) {
	_, err := run(t, "", "fsck")
	if err == nil {
		t.Fatal("fsck with BDSM_FS unset = nil error, want error")
	}
	if code := exitCodeFor(err); code != 2 {
		t.Errorf("exitCodeFor(missing BDSM_FS) = %d, want 2", code)
	}
}

func TestCpfileRoundTripThroughCLI(t *testing.T) {
	path := tmpImage(t)
	if _, err := run(t, path, "mkfs"); err != nil {
		t.Fatalf("mkfs: %v", err)
	}

	src := filepath.Join(t.TempDir(), "in")
	want := []byte("hello from the host filesystem")
	if err := os.WriteFile(src, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := run(t, path, "cpfile", src, "+/greeting"); err != nil {
		t.Fatalf("cpfile in: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	if _, err := run(t, path, "cpfile", "+/greeting", dst); err != nil {
		t.Fatalf("cpfile out: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile(dst): %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round-tripped content = %q, want %q", got, want)
	}
}

func TestBackingFileRequiresEnvVar(t *testing.T) {
	t.Setenv("BDSM_FS", "")
	_, err := backingFile()
	if err == nil {
		t.Fatal("backingFile() with no BDSM_FS set = nil error, want error")
	}
	if code := exitCodeFor(err); code != 2 {
		t.Errorf("exitCodeFor(backingFile error) = %d, want 2 (absent -> fatal at open)", code)
	}
}
