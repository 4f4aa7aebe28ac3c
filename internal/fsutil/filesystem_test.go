package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fsys := OSFileSystem{}

	if !fsys.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fsys.Exists("nonexistent_file_xyz.dat") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rmsd.dat")
	if err := os.WriteFile(path, []byte("0 1.5\n1 1.7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := OSFileSystem{}.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "0 1.5\n1 1.7\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestMemoryFileSystem_AddAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddString("/data/run1.dat", "1 2 3\n")

	data, err := mfs.ReadFile("/data/run1.dat")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "1 2 3\n" {
		t.Errorf("expected %q, got %q", "1 2 3\n", data)
	}

	if !mfs.Exists("/data") {
		t.Error("expected parent directory to exist")
	}
	info, err := mfs.Stat("/data")
	if err != nil || !info.IsDir() {
		t.Errorf("Stat(/data) = %v, %v; want a directory", info, err)
	}
}

func TestMemoryFileSystem_Open(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddString("/a.dat", "42\n")

	f, err := mfs.Open("/a.dat")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "42\n" {
		t.Errorf("expected %q, got %q", "42\n", data)
	}

	if _, err := mfs.Open("/missing.dat"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open of missing file error = %v, want fs.ErrNotExist", err)
	}
}

func TestReadFileLimited(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddString("/small.dat", "1 2\n")
	mfs.AddString("/dir/big.dat", "0123456789\n")

	if _, err := ReadFileLimited(mfs, "/small.dat", 100); err != nil {
		t.Errorf("ReadFileLimited(small) failed: %v", err)
	}

	_, err := ReadFileLimited(mfs, "/dir/big.dat", 4)
	var sizeErr *SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected *SizeError, got %v", err)
	}
	if sizeErr.Size != 11 || sizeErr.Max != 4 {
		t.Errorf("SizeError = %+v", sizeErr)
	}

	if _, err := ReadFileLimited(mfs, "/dir", 0); err == nil {
		t.Error("expected error reading a directory")
	}
	if _, err := ReadFileLimited(mfs, "/nope.dat", 0); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}
}
