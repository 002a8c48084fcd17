package hamarc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/javi11/hamarc/hamming"
)

// Listing summarizes one archived file for the list operation.
type Listing struct {
	Name         string
	OriginalSize uint64
}

// FormatListing renders a Listing the way list's output prints it:
// "<name> (<original_size> bytes)".
func FormatListing(l Listing) string {
	return fmt.Sprintf("%s (%d bytes)", l.Name, l.OriginalSize)
}

// Create packs inputPaths into a new archive at archivePath under opts,
// verifying every input exists and is a regular file, failing fast
// otherwise. A failure after the archive file is opened deletes the
// partially written archive.
func Create(archivePath string, opts hamming.Options, inputPaths []string) error {
	return createFS(defaultFS, archivePath, opts, inputPaths)
}

func createFS(fsys FileSystem, archivePath string, opts hamming.Options, inputPaths []string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("%w: create requires at least one input file", ErrArgument)
	}
	codec, err := hamming.NewCodec(opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	}

	entries, err := buildNewEntries(fsys, codec, inputPaths, nil)
	if err != nil {
		return err
	}
	AssignOffsets(entries)

	if err := ensureParentDir(fsys, archivePath); err != nil {
		return err
	}

	out, err := fsys.Create(archivePath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrFilesystem, archivePath, err)
	}
	if err := writeFreshArchive(fsys, out, entries, inputPaths, codec); err != nil {
		out.Close()
		fsys.Remove(archivePath)
		return err
	}
	if err := out.Close(); err != nil {
		fsys.Remove(archivePath)
		return fmt.Errorf("%w: close %s: %v", ErrIO, archivePath, err)
	}
	return nil
}

func writeFreshArchive(fsys FileSystem, out io.Writer, entries []FileEntry, inputPaths []string, codec *hamming.Codec) error {
	if err := WriteHeader(out, entries); err != nil {
		return err
	}
	for i, p := range inputPaths {
		if err := encodeFileInto(fsys, out, p, codec); err != nil {
			return fmt.Errorf("encode %s: %w", entries[i].Name, err)
		}
	}
	return nil
}

// buildNewEntries stats each input path, rejecting non-regular files and
// basenames already present in used (the existing archive's names, for
// append; nil for create). used is mutated to include the new names.
func buildNewEntries(fsys FileSystem, codec *hamming.Codec, inputPaths []string, used map[string]bool) ([]FileEntry, error) {
	if used == nil {
		used = map[string]bool{}
	}
	entries := make([]FileEntry, 0, len(inputPaths))
	for _, p := range inputPaths {
		info, err := fsys.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %v", ErrFilesystem, p, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a regular file", ErrFilesystem, p)
		}
		name := filepath.Base(p)
		if used[name] {
			return nil, fmt.Errorf("%w: duplicate basename %q", ErrArgument, name)
		}
		used[name] = true
		size := uint64(info.Size())
		entries = append(entries, FileEntry{
			Name:         name,
			OriginalSize: size,
			EncodedSize:  codec.EncodedSize(size),
		})
	}
	return entries, nil
}

func encodeFileInto(fsys FileSystem, out io.Writer, path string, codec *hamming.Codec) error {
	in, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrFilesystem, path, err)
	}
	defer in.Close()
	if err := codec.EncodeStream(out, in); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func ensureParentDir(fsys FileSystem, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrFilesystem, dir, err)
	}
	return nil
}

// List reads an archive's header and returns one Listing per entry in
// payload order.
func List(archivePath string) ([]Listing, error) {
	return listFS(defaultFS, archivePath)
}

func listFS(fsys FileSystem, archivePath string) ([]Listing, error) {
	entries, err := readHeaderFromPath(fsys, archivePath)
	if err != nil {
		return nil, err
	}
	out := make([]Listing, len(entries))
	for i, e := range entries {
		out[i] = Listing{Name: e.Name, OriginalSize: e.OriginalSize}
	}
	return out, nil
}

func readHeaderFromPath(fsys FileSystem, archivePath string) ([]FileEntry, error) {
	f, err := fsys.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrFilesystem, archivePath, err)
	}
	defer f.Close()
	return ReadHeader(f)
}

// rewriteToTemp writes a full header+payload archive to tmpPath, deleting
// it on any failure. body is handed the open temp file positioned right
// after the header and must write exactly the payload region.
func rewriteToTemp(fsys FileSystem, tmpPath string, entries []FileEntry, body func(io.Writer) error) error {
	tmp, err := fsys.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrFilesystem, tmpPath, err)
	}
	if err := WriteHeader(tmp, entries); err != nil {
		tmp.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := body(tmp); err != nil {
		tmp.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", ErrIO, tmpPath, err)
	}
	return nil
}

// finalizeRewrite deletes the original archive (if present) and renames the
// temp file over it, per the "delete the original, rename temp over it"
// lifecycle shared by append/delete/concatenate.
func finalizeRewrite(fsys FileSystem, archivePath, tmpPath string) error {
	if err := fsys.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		fsys.Remove(tmpPath)
		return fmt.Errorf("%w: remove %s: %v", ErrFilesystem, archivePath, err)
	}
	if err := fsys.Rename(tmpPath, archivePath); err != nil {
		return fmt.Errorf("%w: rename %s to %s: %v", ErrFilesystem, tmpPath, archivePath, err)
	}
	return nil
}
