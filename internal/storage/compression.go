package storage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is applied to the whole encoded unit
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionSnappy Compression = "snappy"
	CompressionZstd   Compression = "zstd"
	CompressionLZ4    Compression = "lz4"
)

func ParseCompression(s string) (Compression, error) {
	c := Compression(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CompressionNone, nil
	}
	switch c {
	case CompressionNone, CompressionSnappy, CompressionZstd, CompressionLZ4:
		return c, nil
	}
	return "", fmt.Errorf("unsupported compression %q", s)
}

// extension is appended to the format suffix of unit file names
func (c Compression) extension() string {
	switch c {
	case CompressionSnappy:
		return ".sz"
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	}
	return ""
}

func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil

	case CompressionSnappy:
		return snappy.Encode(nil, data), nil

	case CompressionZstd:
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, nil), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 close: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported compression %q", string(c))
}

func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil

	case CompressionSnappy:
		return snappy.Decode(nil, data)

	case CompressionZstd:
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer decoder.Close()
		return decoder.DecodeAll(data, nil)

	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	}
	return nil, fmt.Errorf("unsupported compression %q", string(c))
}
