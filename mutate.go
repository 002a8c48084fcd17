package hamarc

import (
	"fmt"
	"io"

	"github.com/javi11/hamarc/hamming"
)

// Append adds inputPaths to the archive at archivePath, rebuilding it whole
// into a sibling temp file. Existing entries' encoded payloads are
// byte-copied verbatim rather than re-encoded, preserving any Hamming-level
// corrections already embedded.
func Append(archivePath string, opts hamming.Options, inputPaths []string) error {
	return appendFS(defaultFS, archivePath, opts, inputPaths)
}

func appendFS(fsys FileSystem, archivePath string, opts hamming.Options, inputPaths []string) error {
	if len(inputPaths) == 0 {
		return fmt.Errorf("%w: append requires at least one input file", ErrArgument)
	}
	codec, err := hamming.NewCodec(opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	}

	oldEntries, err := readHeaderFromPath(fsys, archivePath)
	if err != nil {
		return err
	}
	used := make(map[string]bool, len(oldEntries))
	for _, e := range oldEntries {
		used[e.Name] = true
	}

	newEntries, err := buildNewEntries(fsys, codec, inputPaths, used)
	if err != nil {
		return err
	}

	combined := make([]FileEntry, 0, len(oldEntries)+len(newEntries))
	combined = append(combined, oldEntries...)
	combined = append(combined, newEntries...)
	AssignOffsets(combined)

	tmpPath := archivePath + ".tmp"
	err = rewriteToTemp(fsys, tmpPath, combined, func(tmp io.Writer) error {
		if err := copyExistingPayloads(fsys, archivePath, oldEntries, tmp); err != nil {
			return err
		}
		for i, p := range inputPaths {
			if err := encodeFileInto(fsys, tmp, p, codec); err != nil {
				return fmt.Errorf("encode %s: %w", newEntries[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return finalizeRewrite(fsys, archivePath, tmpPath)
}

func copyExistingPayloads(fsys FileSystem, archivePath string, entries []FileEntry, dst io.Writer) error {
	if len(entries) == 0 {
		return nil
	}
	src, err := fsys.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrFilesystem, archivePath, err)
	}
	defer src.Close()
	for _, e := range entries {
		if _, err := src.Seek(int64(e.Offset), io.SeekStart); err != nil {
			return fmt.Errorf("%w: seek %s: %v", ErrIO, e.Name, err)
		}
		if _, err := io.CopyN(dst, src, int64(e.EncodedSize)); err != nil {
			return fmt.Errorf("%w: copy %s: %v", ErrIO, e.Name, err)
		}
	}
	return nil
}

// Delete removes the entries named by names from the archive at
// archivePath, rebuilding it whole. It fails, without modifying the
// archive, if any named entry is absent or if the deletion would remove
// nothing.
func Delete(archivePath string, names []string) error {
	return deleteFS(defaultFS, archivePath, names)
}

func deleteFS(fsys FileSystem, archivePath string, names []string) error {
	entries, err := readHeaderFromPath(fsys, archivePath)
	if err != nil {
		return err
	}

	toDelete := make(map[string]bool, len(names))
	for _, n := range names {
		toDelete[n] = true
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name] = true
	}
	for _, n := range names {
		if !present[n] {
			return fmt.Errorf("%w: %s not found in archive", ErrArgument, n)
		}
	}

	oldOffset := make(map[string]uint64, len(entries))
	keep := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		if toDelete[e.Name] {
			continue
		}
		oldOffset[e.Name] = e.Offset
		keep = append(keep, e)
	}
	if len(keep) == len(entries) {
		return fmt.Errorf("%w: no files were deleted", ErrArgument)
	}

	AssignOffsets(keep)

	tmpPath := archivePath + ".tmp"
	err = rewriteToTemp(fsys, tmpPath, keep, func(tmp io.Writer) error {
		src, err := fsys.Open(archivePath)
		if err != nil {
			return fmt.Errorf("%w: open %s: %v", ErrFilesystem, archivePath, err)
		}
		defer src.Close()
		for _, e := range keep {
			if _, err := src.Seek(int64(oldOffset[e.Name]), io.SeekStart); err != nil {
				return fmt.Errorf("%w: seek %s: %v", ErrIO, e.Name, err)
			}
			if _, err := io.CopyN(tmp, src, int64(e.EncodedSize)); err != nil {
				return fmt.Errorf("%w: copy %s: %v", ErrIO, e.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return finalizeRewrite(fsys, archivePath, tmpPath)
}
