package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReceiptNumber builds a receipt number in the assembly's
// format: RCP-<year>-<random block>.
func GenerateReceiptNumber() string {
	block := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("RCP-%d-%s", time.Now().Year(), block)
}

// GeneratePaymentReference builds a caller-side payment reference for
// flows that did not supply one (e.g. cash walk-ins keyed by an officer).
func GeneratePaymentReference() string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:14])
}
