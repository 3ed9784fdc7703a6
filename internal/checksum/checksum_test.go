package checksum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSumDeterministic(t *testing.T) {
	a := Sum([]byte("voice memo bytes"))
	b := Sum([]byte("voice memo bytes"))
	if a != b {
		t.Errorf("identical bytes produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(a))
	}
}

func TestSumDistinctInputs(t *testing.T) {
	a := Sum([]byte("memo one"))
	b := Sum([]byte("memo two"))
	if a == b {
		t.Error("distinct bytes produced the same fingerprint")
	}
}

func TestFileMatchesSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memo.m4a")
	data := []byte{0x00, 0x01, 0x02, 0xff, 0xfe}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != Sum(data) {
		t.Errorf("File = %s, want %s", got, Sum(data))
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "absent.m4a")); err == nil {
		t.Error("expected error for missing file")
	}
}
