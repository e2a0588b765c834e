package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/onomast-cli/internal/utils"
)

func TestSafeWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	if err := utils.EnsureDir(dir); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	p := filepath.Join(dir, "report.txt")
	if err := utils.SafeWriteFile(p, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := utils.SafeWriteFile(p, []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("unexpected content: %q", b)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}
