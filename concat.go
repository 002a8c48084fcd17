package hamarc

import (
	"fmt"
	"io"

	"github.com/javi11/hamarc/internal/namefmt"
)

// sourceSpan records where one source archive's payload region lives on
// disk, mirroring the teacher library's per-volume header-size accounting.
type sourceSpan struct {
	path       string
	dataStart  int64
	dataLength int64
}

// Concatenate merges the entries of sourcePaths (at least two) into a new
// archive at targetPath. Payload bytes are copied verbatim from each source
// in input order; colliding basenames are renamed "(2)", "(3)", ….
func Concatenate(targetPath string, sourcePaths []string) error {
	return concatenateFS(defaultFS, targetPath, sourcePaths)
}

func concatenateFS(fsys FileSystem, targetPath string, sourcePaths []string) error {
	if len(sourcePaths) < 2 {
		return fmt.Errorf("%w: concatenate requires at least two source archives", ErrArgument)
	}

	used := map[string]bool{}
	var combined []FileEntry
	var spans []sourceSpan

	for _, src := range sourcePaths {
		entries, err := readHeaderFromPath(fsys, src)
		if err != nil {
			return err
		}
		info, err := fsys.Stat(src)
		if err != nil {
			return fmt.Errorf("%w: stat %s: %v", ErrFilesystem, src, err)
		}
		dataStart := int64(HeaderSize(entries))
		spans = append(spans, sourceSpan{path: src, dataStart: dataStart, dataLength: info.Size() - dataStart})

		for _, e := range entries {
			name := namefmt.Dedupe(e.Name, used)
			used[name] = true
			combined = append(combined, FileEntry{
				Name:         name,
				OriginalSize: e.OriginalSize,
				EncodedSize:  e.EncodedSize,
			})
		}
	}
	AssignOffsets(combined)

	if err := ensureParentDir(fsys, targetPath); err != nil {
		return err
	}

	tmpPath := targetPath + ".tmp"
	err := rewriteToTemp(fsys, tmpPath, combined, func(tmp io.Writer) error {
		for _, sp := range spans {
			if sp.dataLength <= 0 {
				continue
			}
			if err := copySpan(fsys, sp, tmp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return finalizeRewrite(fsys, targetPath, tmpPath)
}

func copySpan(fsys FileSystem, sp sourceSpan, dst io.Writer) error {
	src, err := fsys.Open(sp.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrFilesystem, sp.path, err)
	}
	defer src.Close()
	if _, err := src.Seek(sp.dataStart, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek %s: %v", ErrIO, sp.path, err)
	}
	if _, err := io.CopyN(dst, src, sp.dataLength); err != nil {
		return fmt.Errorf("%w: copy %s: %v", ErrIO, sp.path, err)
	}
	return nil
}
