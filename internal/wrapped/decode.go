package wrapped

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Decode error categories. Always surfaced wrapped, never swallowed; a
// failed decode never yields a partial or zeroed story.
var (
	// ErrTransport means the text was not valid unpadded base64url.
	ErrTransport = errors.New("wrapped: transport decode failed")
	// ErrPayload means the binary bytes did not unpack into the V3 shape.
	ErrPayload = errors.New("wrapped: malformed payload")
	// ErrVersion means the payload announced a format version this decoder
	// does not speak.
	ErrVersion = errors.New("wrapped: unsupported format version")
)

// Decode is the inverse of Encode: base64url decode, msgpack unpack, heatmap
// RLE expansion, then reconstruction with the hard-coded defaults for
// ambiguous empty fields (traits, streaks, token stats).
func Decode(encoded string) (*Story, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	// Probe the version before committing to the full V3 shape so an old
	// payload reports a version mismatch, not a shape error.
	var fields []msgpack.RawMessage
	if err := msgpack.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty payload array", ErrPayload)
	}
	var version int
	if err := msgpack.Unmarshal(fields[0], &version); err != nil {
		return nil, fmt.Errorf("%w: unreadable version field: %v", ErrPayload, err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, version, FormatVersion)
	}

	var payload wirePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return reconstruct(payload), nil
}
