package artifact

import (
	"context"
	"errors"
	"io"
)

// S3Scheme prefixes destinations that are uploaded rather than written to
// the local filesystem.
const S3Scheme = "s3://"

var (
	ErrInvalidDestination = errors.New("invalid destination")
	ErrNoUploader         = errors.New("s3 destination requires an uploader")
)

// Destination is a parsed output location. Exactly one of Path or
// Bucket/Key is set.
type Destination struct {
	Path   string
	Bucket string
	Key    string
}

// Uploader stores a finished object in a bucket.
type Uploader interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
}

// Options controls how an artifact is written.
type Options struct {
	// Compress wraps the stream in the snappy framing format.
	Compress    bool
	ContentType string
	Uploader    Uploader
}
