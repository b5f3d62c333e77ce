package service

import (
	"fmt"
	"strings"
	"time"
)

const codePrefix = "NAV"

// generateBookingCode builds the human-facing code NAV-<UTC stamp>-<user
// suffix>. taken reports whether a candidate is already assigned; on a
// same-second collision a numeric suffix is appended until the code is free.
func generateBookingCode(now time.Time, userID string, taken func(string) (bool, error)) (string, error) {
	suffix := userID
	if i := strings.IndexByte(suffix, '-'); i > 0 {
		suffix = suffix[:i]
	}
	base := fmt.Sprintf("%s-%s-%s", codePrefix, now.UTC().Format("20060102150405"), suffix)
	code := base
	for n := 2; ; n++ {
		exists, err := taken(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		code = fmt.Sprintf("%s-%d", base, n)
	}
}
