package cache

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
)

// Encode marshals v to JSON and gzips it, producing the exact bytes
// stored in the object store and served to clients.
func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cache: marshal: %w", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return nil, fmt.Errorf("cache: compress: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("cache: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(b []byte, v any) error {
	gz, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("cache: decompress: %w", err)
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		return fmt.Errorf("cache: decompress: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("cache: decompress: %w", err)
	}
	return json.Unmarshal(raw, v)
}
