package os

import (
	"path/filepath"
	"testing"
)

func TestCheckCreateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if Exists(dir) {
		t.Fatalf("%v exists", dir)
	}
	if err := CheckCreateDir(dir); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Errorf("%v was not created", dir)
	}
	if err := CheckCreateDir(dir); err != nil {
		t.Errorf("second call failed: %v", err)
	}
}
