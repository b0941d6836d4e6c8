package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionReference builds a client-facing payment reference
// with a recognisable prefix, e.g. LEVY-20240131-9F1C2A7B. Uniqueness
// comes from the UUID fragment; the date part is for human scanning.
func GenerateTransactionReference(prefix string) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), fragment)
}

// GenerateQRCode builds the opaque QR payload assigned to a trader.
func GenerateQRCode() string {
	return "SBM-QR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
