package artifact

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// snappyMagic opens every snappy framed stream.
const snappyMagic = "\xff\x06\x00\x00sNaPpY"

// ParseDestination splits "s3://bucket/key" into its parts. Anything else is
// treated as a local path.
func ParseDestination(dest string) (Destination, error) {
	if dest == "" {
		return Destination{}, fmt.Errorf("%w: empty", ErrInvalidDestination)
	}
	if !strings.HasPrefix(dest, S3Scheme) {
		return Destination{Path: dest}, nil
	}
	rest := strings.TrimPrefix(dest, S3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Destination{}, fmt.Errorf("%w: %q needs s3://bucket/key", ErrInvalidDestination, dest)
	}
	return Destination{Bucket: bucket, Key: key}, nil
}

// IsRemote reports whether the destination is an object store location.
func (d Destination) IsRemote() bool { return d.Bucket != "" }

func (d Destination) String() string {
	if d.IsRemote() {
		return S3Scheme + d.Bucket + "/" + d.Key
	}
	return d.Path
}

// Writer streams one artifact. Local artifacts are written as they arrive;
// remote ones are buffered and uploaded on Close.
type Writer struct {
	ctx     context.Context
	dest    Destination
	opts    Options
	file    *os.File
	buf     *bytes.Buffer
	snappy  *snappy.Writer
	out     io.Writer
	written int64
	closed  bool
}

// Create opens an artifact for writing.
func Create(ctx context.Context, dest string, opts Options) (*Writer, error) {
	d, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}

	w := &Writer{ctx: ctx, dest: d, opts: opts}
	if d.IsRemote() {
		if opts.Uploader == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoUploader, d)
		}
		w.buf = new(bytes.Buffer)
		w.out = w.buf
	} else {
		f, err := os.Create(d.Path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", d.Path, err)
		}
		w.file = f
		w.out = f
	}

	if opts.Compress {
		w.snappy = snappy.NewBufferedWriter(w.out)
		w.out = w.snappy
	}
	return w, nil
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}
	n, err := w.out.Write(p)
	w.written += int64(n)
	return n, err
}

// Written returns the number of uncompressed bytes accepted so far.
func (w *Writer) Written() int64 { return w.written }

// Destination returns where the artifact goes.
func (w *Writer) Destination() Destination { return w.dest }

// Close flushes compression, then closes the file or performs the upload.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var firstErr error
	if w.snappy != nil {
		if err := w.snappy.Close(); err != nil {
			firstErr = fmt.Errorf("flush snappy stream: %w", err)
		}
	}

	if w.file != nil {
		if err := w.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", w.dest.Path, err)
		}
		return firstErr
	}

	if firstErr != nil {
		return firstErr
	}
	contentType := w.opts.ContentType
	if w.opts.Compress {
		contentType = "application/x-snappy-framed"
	}
	size := int64(w.buf.Len())
	if err := w.opts.Uploader.Upload(w.ctx, w.dest.Bucket, w.dest.Key, w.buf, size, contentType); err != nil {
		return fmt.Errorf("upload %s: %w", w.dest, err)
	}
	return nil
}

// Abort discards the artifact: a local file is removed and nothing is
// uploaded.
func (w *Writer) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.file == nil {
		w.buf = nil
		return nil
	}
	w.file.Close()
	if err := os.Remove(w.dest.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Open reads a local artifact, transparently decoding snappy framed files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	head, err := br.Peek(len(snappyMagic))
	if err == nil && string(head) == snappyMagic {
		return readCloser{Reader: snappy.NewReader(br), Closer: f}, nil
	}
	return readCloser{Reader: br, Closer: f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
