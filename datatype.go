package dnatraits

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

var ErrUnsupportedCompression = errors.New("unsupported compression")

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "plain"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "compress"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. Nothing is consumed from r. Byte code
// signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(r *bufio.Reader) (DataType, error) {
	buff, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(buff, sig) {
			return dt, nil
		}
	}

	return DataTypeNoCompression, nil
}

// Decompress wraps r in the decompressor its leading bytes call for. Zip
// archives yield their first member. Uncompressed input is returned as-is.
func Decompress(r io.Reader) (io.Reader, DataType, error) {
	br := bufio.NewReader(r)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, dt, err
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		return gz, dt, err
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, dt, fmt.Errorf("zip: %w", err)
		}
		return zr, dt, nil
	case DataTypeBZip2:
		return bzip2.NewReader(br), dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		return reader, dt, err
	case DataTypeZ:
		// LZW .Z streams carry a flags header that compress/lzw does not read
		return nil, dt, fmt.Errorf("%s: %w", dt, ErrUnsupportedCompression)
	}

	return br, dt, nil
}
