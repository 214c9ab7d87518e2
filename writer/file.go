package writer

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// FileWriter renders into memory and writes the result to a file on commit.
// The file is only rewritten when its content changes, so downstream build
// steps watching its modification time are not triggered needlessly.
type FileWriter struct {
	*Writer
	sink *fileSink
}

type fileSink struct {
	bufferSink
	path        string
	perm        os.FileMode
	previous    string
	hasPrevious bool
	log         *zap.Logger
}

// NewFile creates a writer targeting path. Existing content is read now and
// used for change detection.
func NewFile(path string, cfg Config) (*FileWriter, error) {
	cfg = cfg.WithDefaults()
	sink := &fileSink{
		path: path,
		perm: 0o644,
		log:  cfg.Logger.With(zap.String("path", path)),
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		sink.previous, sink.hasPrevious = string(data), true
		if info, statErr := os.Stat(path); statErr == nil {
			sink.perm = info.Mode().Perm()
		}
	case errors.Is(err, os.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		// no previous content; a bad parent path is reported by Commit
	default:
		return nil, ioError(err, "reading %s", path)
	}

	return &FileWriter{Writer: New(sink, cfg), sink: sink}, nil
}

func (f *fileSink) IsChanged() bool {
	return !f.hasPrevious || f.previous != f.String()
}

func (f *fileSink) Commit(force bool) error {
	if !force && !f.IsChanged() {
		f.log.Debug("output unchanged, file not written")
		return nil
	}

	current := f.String()
	if err := writeFileAtomic(f.path, []byte(current), f.perm); err != nil {
		return err
	}
	f.previous, f.hasPrevious = current, true
	f.log.Debug("file written", zap.Int("bytes", len(current)))
	return nil
}

// writeFileAtomic writes data next to path and renames it into place, so
// readers never observe a half-written file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmpName)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errors.Wrapf(err, "setting mode on %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming %s to %s", tmpName, path)
	}
	return nil
}

// Path returns the target file.
func (f *FileWriter) Path() string { return f.sink.path }

// HasPrevious reports whether the target existed when the writer was created.
func (f *FileWriter) HasPrevious() bool { return f.sink.hasPrevious }

// Current returns the output rendered so far.
func (f *FileWriter) Current() string { return f.sink.String() }

// Diff returns a unified diff from the file's previous content to the
// current output. It is empty when nothing changed.
func (f *FileWriter) Diff() (string, error) {
	return unifiedDiff(f.sink.path, f.sink.previous, f.sink.String())
}
