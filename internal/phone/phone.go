package phone

import (
	"regexp"
	"strings"
)

// countryPrefix is prepended to national numbers (Brazil).
const countryPrefix = "55"

var digitRun = regexp.MustCompile(`\d{10,13}`)

// Normalize extracts a WhatsApp-able number from free text: separators are
// stripped, the first run of 10-13 digits is taken and the country prefix is
// added when missing. Returns false when no usable number is present.
//
// Beyond the digit-count window there is no structural validation; whatever
// the sheet contains is passed through as-is.
func Normalize(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	clean := strings.NewReplacer("-", "", "(", "", ")", "", " ", "").Replace(raw)

	num := digitRun.FindString(clean)
	if num == "" {
		return "", false
	}
	if !strings.HasPrefix(num, countryPrefix) {
		num = countryPrefix + num
	}
	return num, true
}
