package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}

	file := filepath.Join(tempDir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := CreateDirectoryIfNotExists(file); err == nil {
		t.Fatal("Expected an error for a regular file")
	}
}

func TestGetDefaultStateDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := GetDefaultStateDir()
	if err != nil {
		t.Fatalf("Failed to get state directory: %v", err)
	}

	if filepath.Base(dir) != StateDirName {
		t.Errorf("Expected directory to end with %q, got: %s", StateDirName, dir)
	}
	if filepath.Base(filepath.Dir(dir)) != AppDirName {
		t.Errorf("Expected parent directory %q, got: %s", AppDirName, dir)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in       string
		expected string
	}{
		{"~", home},
		{"~/state", filepath.Join(home, "state")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~other/x", "~other/x"},
	}

	for _, test := range tests {
		if got := ExpandHome(test.in); got != test.expected {
			t.Errorf("ExpandHome(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}
