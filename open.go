package dnatraits

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Export is an opened genome export: decompressed, with its delimiter
// guessed from the first SampleSize bytes.
type Export struct {
	io.Reader

	Path      string
	Size      int64 // bytes on disk or in the bucket, before decompression
	DataType  DataType
	Delimiter rune

	closers []func() error
}

// Close releases the underlying file or storage object, and the storage
// client if Open created one.
func (e *Export) Close() error {
	var err error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if cerr := e.closers[i](); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens a local path (with ~ expansion) or a gs://bucket/object path. If
// client is nil and a gs:// path is requested, a client with default
// credentials is created and closed along with the export.
func Open(ctx context.Context, path string, client *storage.Client) (*Export, error) {
	out := &Export{Path: path}

	raw, size, closer, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, err
	}
	out.Size = size
	out.closers = append(out.closers, closer...)

	decompressed, dt, err := Decompress(raw)
	if err != nil {
		out.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	out.DataType = dt
	if c, ok := decompressed.(io.Closer); ok && dt != DataTypeNoCompression {
		out.closers = append(out.closers, c.Close)
	}

	br := bufio.NewReaderSize(decompressed, SampleSize)
	sample, err := br.Peek(SampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		out.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	out.Delimiter = DetermineDelimiter(bytes.NewReader(sample))
	out.Reader = br

	return out, nil
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.Reader, int64, []func() error, error) {
	if !strings.HasPrefix(path, "gs://") {
		local, err := ExpandHome(path)
		if err != nil {
			return nil, 0, nil, err
		}

		f, err := os.Open(local)
		if err != nil {
			return nil, 0, nil, pfx.Err(err)
		}
		fstat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, nil, pfx.Err(err)
		}
		return f, fstat.Size(), []func() error{f.Close}, nil
	}

	bucketName, objectName, err := SplitGSPath(path)
	if err != nil {
		return nil, 0, nil, err
	}

	var closers []func() error
	if client == nil {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, 0, nil, pfx.Err(err)
		}
		closers = append(closers, client.Close)
	}

	obj := &GSObjectReader{
		ObjectHandle: client.Bucket(bucketName).Object(objectName),
		Context:      ctx,
	}
	closers = append(closers, obj.Close)

	// Make a hard call to get the filesize
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, 0, nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return obj, attrs.Size, closers, nil
}

// SplitGSPath splits gs://bucket/path/to/object into its bucket and object
// names.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("tried to split %q into a bucket and an object, but got %d parts: %v", path, len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// GSObjectReader decorates a Google Storage object handle with io.Reader and
// io.Closer. The object is only fetched on the first Read. Derived from
// https://github.com/googleapis/google-cloud-go/issues/1124#issuecomment-419070541
type GSObjectReader struct {
	*storage.ObjectHandle
	Context context.Context
	r       *storage.Reader
}

func (s *GSObjectReader) Read(buf []byte) (int, error) {
	if s.r == nil {
		var err error
		s.r, err = s.NewRangeReader(s.Context, 0, -1)
		if err != nil {
			return 0, err
		}
	}

	return s.r.Read(buf)
}

// Close is a nop if nothing was read.
func (s *GSObjectReader) Close() error {
	if s.r == nil {
		return nil
	}

	err := s.r.Close()
	s.r = nil
	return err
}
