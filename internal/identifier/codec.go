// Package identifier encrypts resource identifiers so raw student and teacher
// ids never appear in URLs.
//
// The scheme is deterministic: AES in ECB mode with a static key and zero-byte
// fill, so the same (kind, id) pair always produces the same string and no
// lookup table is needed to reverse it.
package identifier

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/everyclass_server/internal/model"
)

var (
	ErrDecode       = errors.New("resource identifier is invalid")
	ErrTypeMismatch = errors.New("resource type does not correspond")
	ErrInvalidKind  = errors.New("resource type is not valid")
	ErrInvalidKey   = errors.New("encryption key must be 1 to 31 bytes long")
	ErrInvalidID    = errors.New("resource id must be non-empty and not end with a zero byte")
)

var payloadPattern = regexp.MustCompile(`^(student|teacher|klass|room|people);([\s\S]+)$`)

// Codec encodes and decodes opaque resource identifiers
type Codec struct {
	block cipher.Block
}

// NewCodec creates a codec for the given key
func NewCodec(key string) (*Codec, error) {
	if len(key) == 0 || len(key) >= 32 {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(fill16([]byte(key)))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return &Codec{block: block}, nil
}

// Encode returns the opaque form of (kind, rawID)
func (c *Codec) Encode(kind model.ResourceKind, rawID string) (string, error) {
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	// хвостовые нули неотличимы от заполнения блока
	if rawID == "" || strings.HasSuffix(rawID, "\x00") {
		return "", ErrInvalidID
	}

	plain := fill16([]byte(string(kind) + ";" + rawID))
	encrypted := make([]byte, len(plain))
	for i := 0; i < len(plain); i += aes.BlockSize {
		c.block.Encrypt(encrypted[i:i+aes.BlockSize], plain[i:i+aes.BlockSize])
	}

	return strings.ReplaceAll(base64.StdEncoding.EncodeToString(encrypted), "/", "-"), nil
}

// Decode reverses Encode
func (c *Codec) Decode(data string) (model.ResourceKind, string, error) {
	data = strings.ReplaceAll(data, "-", "/")
	data = strings.ReplaceAll(data, "%3D", "=")

	encrypted, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return "", "", fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrDecode)
	}

	plain := make([]byte, len(encrypted))
	for i := 0; i < len(encrypted); i += aes.BlockSize {
		c.block.Decrypt(plain[i:i+aes.BlockSize], encrypted[i:i+aes.BlockSize])
	}

	plain = bytes.TrimRight(plain, "\x00")
	if !utf8.Valid(plain) {
		return "", "", fmt.Errorf("%w: decrypted data is not text", ErrDecode)
	}

	groups := payloadPattern.FindStringSubmatch(string(plain))
	if groups == nil {
		return "", "", fmt.Errorf("%w: decrypted data does not match", ErrDecode)
	}

	return model.ResourceKind(groups[1]), groups[2], nil
}

// DecodeAs decodes data and checks that it carries the expected kind
func (c *Codec) DecodeAs(data string, expected model.ResourceKind) (string, error) {
	kind, rawID, err := c.Decode(data)
	if err != nil {
		return "", err
	}
	if kind != expected {
		return "", ErrTypeMismatch
	}
	return rawID, nil
}

// fill16 appends zero bytes up to the next multiple of 16. A full block is
// added when b is already aligned, so the result is never equal to the input.
func fill16(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(b, make([]byte, n)...)
}
