package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocumentNumber builds a human-readable unique document identifier, e.g.
// QT-2026-3F9A21C4 for quotations or INV-2026-09B7E512 for invoices.
func DocumentNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Year(), suffix)
}
