package hamarc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javi11/hamarc/hamming"
)

func writeInput(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestCreateListExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", []byte("hello, hamarc"))
	b := writeInput(t, dir, "b.bin", []byte{0x00, 0xFF, 0x10, 0x42, 0x07})

	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a, b}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	listing, err := List(archive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(listing))
	}
	if listing[0].Name != "a.txt" || listing[1].Name != "b.bin" {
		t.Fatalf("List order/names = %+v", listing)
	}

	extractDir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(extractDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	if err := Extract(archive, opts, nil); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	gotA, err := os.ReadFile(filepath.Join(extractDir, "a.txt"))
	if err != nil {
		t.Fatalf("read extracted a.txt: %v", err)
	}
	if string(gotA) != "hello, hamarc" {
		t.Errorf("a.txt = %q, want %q", gotA, "hello, hamarc")
	}
	gotB, err := os.ReadFile(filepath.Join(extractDir, "b.bin"))
	if err != nil {
		t.Fatalf("read extracted b.bin: %v", err)
	}
	want := []byte{0x00, 0xFF, 0x10, 0x42, 0x07}
	if string(gotB) != string(want) {
		t.Errorf("b.bin = %v, want %v", gotB, want)
	}
}

func TestCreateRejectsDuplicateBasenames(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	a := writeInput(t, dir, "dup.txt", []byte("first"))
	b := writeInput(t, sub, "dup.txt", []byte("second"))

	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a, b}); err == nil {
		t.Fatal("Create: want error for duplicate basenames")
	}
}

func TestExtractFailsBeforeWritingOnMissingName(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", []byte("content"))
	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	extractDir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(extractDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	if err := Extract(archive, opts, []string{"a.txt", "missing.txt"}); err == nil {
		t.Fatal("Extract: want error for missing name")
	}
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Extract wrote output despite failure: %v", entries)
	}
}

func TestAppendAddsFilesAndPreservesOld(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", []byte("first file"))
	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	b := writeInput(t, dir, "b.txt", []byte("second file"))
	if err := Append(archive, opts, []string{b}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	listing, err := List(archive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(listing))
	}

	extractDir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(extractDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	if err := Extract(archive, opts, nil); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(extractDir, "a.txt"))
	if err != nil || string(got) != "first file" {
		t.Errorf("a.txt after append = %q, err=%v", got, err)
	}
}

func TestDeleteRemovesEntryAndFailsOnMissing(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", []byte("keep me"))
	b := writeInput(t, dir, "b.txt", []byte("drop me"))
	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a, b}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := Delete(archive, []string{"missing.txt"}); err == nil {
		t.Fatal("Delete: want error for missing entry")
	}

	if err := Delete(archive, []string{"b.txt"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	listing, err := List(archive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing) != 1 || listing[0].Name != "a.txt" {
		t.Fatalf("List after delete = %+v", listing)
	}

	if err := Delete(archive, []string{"a.txt"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	listing, err = List(archive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing) != 0 {
		t.Fatalf("List after emptying archive = %+v, want none", listing)
	}
}

func TestConcatenateRenamesCollisions(t *testing.T) {
	dir := t.TempDir()
	opts := hamming.Options{DataBits: 8, ParityBits: 4}

	d1 := filepath.Join(dir, "one")
	d2 := filepath.Join(dir, "two")
	os.MkdirAll(d1, 0o755)
	os.MkdirAll(d2, 0o755)

	a1 := writeInput(t, d1, "dup.bin", []byte("from archive one"))
	a2 := writeInput(t, d2, "dup.bin", []byte("from archive two"))

	arc1 := filepath.Join(dir, "one.haf")
	arc2 := filepath.Join(dir, "two.haf")
	if err := Create(arc1, opts, []string{a1}); err != nil {
		t.Fatalf("Create arc1: %v", err)
	}
	if err := Create(arc2, opts, []string{a2}); err != nil {
		t.Fatalf("Create arc2: %v", err)
	}

	target := filepath.Join(dir, "combined.haf")
	if err := Concatenate(target, []string{arc1, arc2}); err != nil {
		t.Fatalf("Concatenate: %v", err)
	}

	listing, err := List(target)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(listing))
	}
	if listing[0].Name != "dup.bin" || listing[1].Name != "dup.bin(2)" {
		t.Fatalf("List names = %q, %q", listing[0].Name, listing[1].Name)
	}
}

func TestConcatenateRequiresTwoSources(t *testing.T) {
	dir := t.TempDir()
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	a := writeInput(t, dir, "a.txt", []byte("x"))
	archive := filepath.Join(dir, "one.haf")
	if err := Create(archive, opts, []string{a}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := Concatenate(filepath.Join(dir, "combined.haf"), []string{archive}); err == nil {
		t.Fatal("Concatenate: want error with fewer than two sources")
	}
}

func TestCorruptedMagicFailsList(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", []byte("data"))
	archive := filepath.Join(dir, "out.haf")
	opts := hamming.Options{DataBits: 8, ParityBits: 4}
	if err := Create(archive, opts, []string{a}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(archive)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	raw[0] ^= 0xFF
	if err := os.WriteFile(archive, raw, 0o644); err != nil {
		t.Fatalf("corrupt archive: %v", err)
	}

	if _, err := List(archive); err == nil {
		t.Fatal("List: want error for corrupted magic")
	}
}
