package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatBillNumber renders a bill sequence as BILL-000001
func FormatBillNumber(prefix string, sequence int64) string {
	return fmt.Sprintf("%s-%06d", prefix, sequence)
}

// FormatUserCode renders a directory code such as CUS-0001
func FormatUserCode(prefix string, sequence int64) string {
	return fmt.Sprintf("%s-%04d", prefix, sequence)
}
