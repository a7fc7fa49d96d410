package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewReference returns a gateway reference. The random part is what makes the
// reference usable as a bearer token for the confirmation callback.
func NewReference(now time.Time) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	return fmt.Sprintf("PAY_%d_%s", now.UnixMilli(), hex.EncodeToString(buf)), nil
}
