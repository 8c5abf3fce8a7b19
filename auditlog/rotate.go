package auditlog

import (
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// rotateLocked archives the active segment as <path>.<timestamp>.zst and
// starts a fresh one. The caller holds the mutex.
func (l *Log) rotateLocked() error {
	if err := l.f.Close(); err != nil {
		return err
	}

	archived := l.path + "." + time.Now().UTC().Format("20060102T150405.000000000Z")
	renameErr := os.Rename(l.path, archived)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	l.f = f
	l.size = 0

	if renameErr != nil {
		return renameErr
	}
	if err := compressSegment(archived); err != nil {
		return err
	}
	return os.Remove(archived)
}

// compressSegment writes path's contents to path.zst.
func compressSegment(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".zst")
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		return err
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		out.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
