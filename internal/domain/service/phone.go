package service

import (
	"strings"

	"github.com/diegoclair/oncall-phone-agent/internal/domain"
)

// NormalizeCell rewrites a configured cell number to +1XXXXXXXXXX. Only ASCII
// digits are kept.
func NormalizeCell(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	digits = strings.TrimPrefix(digits, "1")
	return domain.CountryCode + digits
}

// ExpandDesk turns a short desk extension into a dialable number by replacing
// its internal prefix with the outside line prefix. Extensions without the
// prefix are returned unchanged.
func ExpandDesk(extension, prefix, replacement string) string {
	if prefix == "" || !strings.HasPrefix(extension, prefix) {
		return extension
	}
	return replacement + strings.TrimPrefix(extension, prefix)
}
