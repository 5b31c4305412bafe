package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromBytesTxt(t *testing.T) {
	got, err := FromBytes([]byte("  John Doe\nSoftware Engineer \n"), "txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got != "John Doe\nSoftware Engineer" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestFromBytesUnsupportedType(t *testing.T) {
	_, err := FromBytes([]byte("x"), "doc")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestFromBytesCorruptPDF(t *testing.T) {
	if _, err := FromBytes([]byte("not a pdf"), "pdf"); err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestFromBytesCorruptDocx(t *testing.T) {
	if _, err := FromBytes([]byte("not a docx"), "docx"); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}

func TestTextDerivesTypeFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("plain resume"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	got, err := Text(path, "")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "plain resume" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextMissingFile(t *testing.T) {
	if _, err := Text(filepath.Join(t.TempDir(), "missing.pdf"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
