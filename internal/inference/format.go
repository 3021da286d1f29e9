package inference

import (
	"strings"
	"unicode"

	"github.com/toyz/axondoc/internal/models"
)

// nameRule maps a parameter-name heuristic onto a format
type nameRule struct {
	format models.Format
	match  func(lower, original string) bool
}

// nameRules are tried in order against string-typed parameters
var nameRules = []nameRule{
	{models.FormatDateTime, func(lower, original string) bool {
		return strings.Contains(lower, "date") ||
			strings.Contains(lower, "time") ||
			isTimestampName(lower, original)
	}},
	{models.FormatEmail, containsAny("email")},
	{models.FormatPassword, containsAny("password")},
	{models.FormatURI, containsAny("url", "uri")},
	{models.FormatUUID, containsAny("uuid")},
	{models.FormatIPv4, containsAny("ip")},
}

// InferFormat derives a format from the declared type first and, for string
// parameters only, from the parameter name. It returns FormatNone when no rule
// matches.
func InferFormat(token models.TypeToken, paramName string) models.Format {
	lower := strings.ToLower(paramName)

	switch CanonicalWireType(token) {
	case models.WireInteger:
		if strings.Contains(lower, "id") {
			return models.FormatInt64
		}
		return models.FormatInt32
	case models.WireNumber:
		return models.FormatFloat
	case models.WireString:
		if IsDateTimeToken(token) {
			return models.FormatDateTime
		}
		return formatFromName(lower, paramName)
	default:
		return models.FormatNone
	}
}

func formatFromName(lower, original string) models.Format {
	for _, rule := range nameRules {
		if rule.match(lower, original) {
			return rule.format
		}
	}
	return models.FormatNone
}

func containsAny(needles ...string) func(lower, original string) bool {
	return func(lower, _ string) bool {
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return true
			}
		}
		return false
	}
}

// isTimestampName matches created_at / updated_at style names in snake case
// ("published_at") and camel case ("publishedAt")
func isTimestampName(lower, original string) bool {
	if strings.HasSuffix(lower, "_at") {
		return true
	}
	if len(original) < 3 || !strings.HasSuffix(original, "At") {
		return false
	}
	return unicode.IsLower(rune(original[len(original)-3]))
}
