package wrapped

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a story to the URL-safe transport string: positional
// msgpack over the assembled wire shape, then unpadded base64url. The output
// uses only [A-Za-z0-9_-] and slots directly into a ?d= query parameter.
func Encode(s *Story) (string, error) {
	if s == nil {
		return "", fmt.Errorf("wrapped: nil story")
	}
	if s.Version != FormatVersion {
		return "", fmt.Errorf("wrapped: cannot encode version %d, this encoder writes version %d", s.Version, FormatVersion)
	}

	payload := assemble(s)
	raw, err := msgpack.Marshal(&payload)
	if err != nil {
		return "", fmt.Errorf("wrapped: pack: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
