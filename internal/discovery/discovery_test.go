package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IPDS-59/commodity-summarizer/internal/discovery"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestFindWorkbooksMatchesPrefixSubstring(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "jeruk_4_54_b.xlsx")
	touch(t, dir, "jeruk_4_54_a.xlsx")
	touch(t, dir, "jeruk_4_55_a.xlsx")  // different table
	touch(t, dir, "~$jeruk_4_54_a.xlsx") // Excel lock file
	touch(t, dir, "jeruk_4_54_notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "4_54_subdir.xlsx"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	files, err := discovery.FindWorkbooks(dir, "4_54")
	if err != nil {
		t.Fatalf("FindWorkbooks failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "jeruk_4_54_a.xlsx"),
		filepath.Join(dir, "jeruk_4_54_b.xlsx"),
	}
	if len(files) != len(want) {
		t.Fatalf("files=%v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d]=%q, want %q (sorted)", i, files[i], want[i])
		}
	}
}

func TestFindWorkbooksCaseSensitivePrefix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "jeruk_4_54_a.xlsx")

	files, err := discovery.FindWorkbooks(dir, "4_54_A")
	if err != nil {
		t.Fatalf("FindWorkbooks failed: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("files=%v, want none for case-mismatched prefix", files)
	}
}

func TestFindWorkbooksMissingDirIsError(t *testing.T) {
	if _, err := discovery.FindWorkbooks(filepath.Join(t.TempDir(), "absent"), "4_54"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
