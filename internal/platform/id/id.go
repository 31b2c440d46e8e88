package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"

	"leadclip/internal/platform/clock"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// LocalDraftID returns the all-digit identifier carried by drafts that
// have never been persisted. The backend issues opaque non-numeric ids,
// so the digit shape is what distinguishes create from update on save.
func LocalDraftID(clk clock.Clock) string {
	return strconv.FormatInt(clk.Now().UnixMilli(), 10)
}

// IsLocal reports whether an identifier has the locally-generated
// all-digit shape.
func IsLocal(identifier string) bool {
	if identifier == "" {
		return false
	}
	for _, r := range identifier {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
