// Package customid encodes routing prefixes and small payloads into Discord
// component custom ids and decodes them back on interaction receipt. The
// payload travels msgpack-packed and base64-encoded after the prefix, so a
// handler can round-trip state through the platform without server-side
// storage. Custom ids are bounded at 100 characters by the platform; Encode
// rejects anything longer.
package customid

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxLength is the platform bound on a component custom id.
const MaxLength = 100

const sep = ":"

var (
	// ErrTooLong is returned when the encoded id would not fit the platform bound.
	ErrTooLong = errors.New("customid: encoded id exceeds 100 characters")
	// ErrNoPayload is returned when DecodePayload is called on an id without one.
	ErrNoPayload = errors.New("customid: id carries no payload")
	// ErrBadPayload is returned when a payload fails to decode.
	ErrBadPayload = errors.New("customid: malformed payload")
)

var b64 = base64.RawURLEncoding

// New returns a unique custom id under prefix with no payload.
func New(prefix string) string {
	return prefix + sep + ulid.Make().String()
}

// Encode packs payload under prefix. The payload must msgpack-marshal; keep
// it to a few small fields or the result will blow the platform bound.
func Encode(prefix string, payload any) (string, error) {
	packed, err := msgpack.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("customid: marshal payload: %w", err)
	}
	id := prefix + sep + b64.EncodeToString(packed)
	if len(id) > MaxLength {
		return "", fmt.Errorf("%w (%d)", ErrTooLong, len(id))
	}
	return id, nil
}

// Split separates a custom id into its routing prefix and the remainder.
// An id without a separator is all prefix.
func Split(customID string) (prefix, rest string) {
	prefix, rest, _ = strings.Cut(customID, sep)
	return prefix, rest
}

// DecodePayload unpacks the payload portion returned by Split into v.
func DecodePayload(rest string, v any) error {
	if rest == "" {
		return ErrNoPayload
	}
	packed, err := b64.DecodeString(rest)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if err := msgpack.Unmarshal(packed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return nil
}

// Decode splits customID and unpacks its payload into v in one step.
func Decode(customID string, v any) (prefix string, err error) {
	prefix, rest := Split(customID)
	return prefix, DecodePayload(rest, v)
}
