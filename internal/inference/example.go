package inference

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/toyz/axondoc/internal/models"
)

var (
	integerPattern = regexp.MustCompile(`^[-+]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[-+]?[0-9]*\.[0-9]+$`)

	// validate is safe for concurrent use
	validate = validator.New()
)

// dateTimeLayouts are the RFC3339-like layouts accepted for date-time examples
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// hostlessSchemes are the URL schemes accepted without a host
var hostlessSchemes = map[string]bool{
	"file":   true,
	"mailto": true,
	"tel":    true,
	"urn":    true,
}

// formatCheck is one step of the ordered example-format ladder
type formatCheck struct {
	format models.Format
	match  func(value string) bool
}

var exampleFormatChecks = []formatCheck{
	{models.FormatEmail, validTag("email")},
	{models.FormatDate, isDate},
	{models.FormatDateTime, isDateTime},
	{models.FormatURI, isURL},
	{models.FormatIPv4, validTag("ipv4")},
	{models.FormatIPv6, validTag("ipv6")},
	{models.FormatUUID, isUUID},
}

// InferExampleType classifies a literal example value
func InferExampleType(value string) models.WireType {
	value = strings.TrimSpace(value)
	switch {
	case integerPattern.MatchString(value):
		return models.WireInteger
	case decimalPattern.MatchString(value):
		return models.WireNumber
	case strings.EqualFold(value, "true"), strings.EqualFold(value, "false"):
		return models.WireBoolean
	default:
		return models.WireString
	}
}

// InferExampleFormat detects a well-known format in a literal example value.
// Checks run in order: email, date, date-time, URL, IP, UUID.
func InferExampleFormat(value string) models.Format {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.FormatNone
	}
	for _, check := range exampleFormatChecks {
		if check.match(value) {
			return check.format
		}
	}
	return models.FormatNone
}

// NewExample builds an example record from a literal value
func NewExample(value string) *models.Example {
	value = strings.TrimSpace(value)
	return &models.Example{
		Value:  value,
		Type:   InferExampleType(value),
		Format: InferExampleFormat(value),
	}
}

func validTag(tag string) func(string) bool {
	return func(value string) bool {
		return validate.Var(value, tag) == nil
	}
}

// isURL accepts values the validator's url tag accepts that also name a
// host, so "price:desc" style sort and filter values stay plain strings
func isURL(value string) bool {
	if validate.Var(value, "url") != nil {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Host != "" || hostlessSchemes[strings.ToLower(parsed.Scheme)]
}

func isDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func isDateTime(value string) bool {
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func isUUID(value string) bool {
	return len(value) == 36 && uuid.Validate(value) == nil
}
