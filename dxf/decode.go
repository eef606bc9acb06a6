// Package dxf turns base64-embedded DXF content into a normalized,
// fully-resolved entity model: decode, tokenize the group-code grammar
// into loose records, normalize the records into tagged entities, and
// reduce their geometry to drawing bounds.
package dxf

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeError reports content that could not be base64-decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode dxf content: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeContent decodes a base64 payload into DXF text. The payload may
// carry a data-URL prefix ("data:application/dxf;base64,..."); everything
// up to and including the first comma is stripped before decoding.
func DecodeContent(content string) (string, error) {
	payload := content
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Data-URL payloads are sometimes emitted unpadded.
		raw, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	return string(raw), nil
}

// NormalizeLineEndings rewrites CRLF and bare CR to LF. Used by the parse
// retry path for files produced with inconsistent line endings.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
