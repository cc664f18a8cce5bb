package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Lenient phone formats for a disaster-relief context: callers in the field
// often omit area codes, leading zeros, or separators.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^09\d{8}$`),           // mobile
	regexp.MustCompile(`^9\d{8}$`),            // mobile missing leading 0
	regexp.MustCompile(`^0[2-8]\d{7,8}$`),     // landline with area code
	regexp.MustCompile(`^\d{7,8}$`),           // local number only
	regexp.MustCompile(`^0800\d{6}$`),         // toll free
	regexp.MustCompile(`^\+886[2-9]\d{7,8}$`), // international
}

var phoneSeparators = regexp.MustCompile(`[\s\-()]`)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://\S+$`),
	regexp.MustCompile(`^www\.\S+$`),
}

// CheckPhone validates a phone number leniently. Empty input is accepted,
// since phone fields are optional across the relief resources.
func CheckPhone(phone string) error {
	if phone == "" {
		return nil
	}
	clean := phoneSeparators.ReplaceAllString(phone, "")
	for _, p := range phonePatterns {
		if p.MatchString(clean) {
			return nil
		}
	}
	return fmt.Errorf("invalid phone number format: %s", phone)
}

// CheckURL validates a URL, allowing a missing scheme when the host starts
// with www. Empty input is accepted.
func CheckURL(url string) error {
	if url == "" {
		return nil
	}
	url = strings.TrimSpace(url)
	for _, p := range urlPatterns {
		if p.MatchString(url) {
			return nil
		}
	}
	return fmt.Errorf("invalid URL format: %s", url)
}
