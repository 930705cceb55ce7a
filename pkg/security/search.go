package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// MaxSearchTermLength defines the maximum allowed length for search terms.
const MaxSearchTermLength = 100

// dangerousPatterns contains patterns that could indicate injection attempts.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(union|select|insert|update|delete|drop|create|alter|exec|execute)`),
	regexp.MustCompile(`(?i)(or|and)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`(?i)(--|#|/\*|\*/)`),
	regexp.MustCompile(`(?i)(waitfor|delay|benchmark|sleep)`),
	regexp.MustCompile(`(?i)(<script|</script|javascript:|onload=|onerror=)`),
}

// ValidateSearchTerm validates a user-supplied search term before it is
// interpolated into a LIKE pattern. The statement itself is parameterized;
// this screen keeps hostile noise out of logs and LIKE wildcards honest.
func ValidateSearchTerm(term string) (string, error) {
	if term == "" {
		return "", nil
	}

	if len(term) > MaxSearchTermLength {
		return "", errors.New("search term too long")
	}

	term = strings.TrimSpace(term)

	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(term) {
			return "", errors.New("search term contains invalid characters")
		}
	}

	for _, char := range term {
		if !isValidSearchChar(char) {
			return "", errors.New("search term contains invalid characters")
		}
	}

	return term, nil
}

// isValidSearchChar checks if a character is safe for search terms.
func isValidSearchChar(char rune) bool {
	return unicode.IsLetter(char) || unicode.IsNumber(char) ||
		char == ' ' || char == '-' || char == '_' || char == '.' ||
		char == '@' || char == '+'
}

// EscapeLike escapes LIKE wildcards in a search term.
func EscapeLike(term string) string {
	term = strings.ReplaceAll(term, `%`, `\%`)
	term = strings.ReplaceAll(term, `_`, `\_`)
	return term
}
