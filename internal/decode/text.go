package decode

import (
	"fmt"
	"io"
)

// TextDecoder handles plain text files. The content is already the raw
// text blob, so decoding is a straight read.
type TextDecoder struct{}

func (d *TextDecoder) Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}
