package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/axondoc/internal/models"
)

func TestCanonicalWireType(t *testing.T) {
	tests := []struct {
		token    models.TypeToken
		expected models.WireType
	}{
		{"", models.WireString},
		{"string", models.WireString},
		{"int", models.WireInteger},
		{"Integer", models.WireInteger},
		{"uint64", models.WireInteger},
		{"*int", models.WireInteger},
		{"bool", models.WireBoolean},
		{"Boolean", models.WireBoolean},
		{"float", models.WireNumber},
		{"float64", models.WireNumber},
		{"double", models.WireNumber},
		{"number", models.WireNumber},
		{"array", models.WireArray},
		{"object", models.WireObject},
		{"[]string", models.WireArray},
		{"int[]", models.WireArray},
		{"int|string", models.WireInteger},
		{"string|int", models.WireString},
		{"mixed", models.WireString},
		{"time.Time", models.WireString},
	}

	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			assert.Equal(t, tt.expected, CanonicalWireType(tt.token))
		})
	}
}

func TestInferFormat_TypeRules(t *testing.T) {
	tests := []struct {
		name     string
		token    models.TypeToken
		param    string
		expected models.Format
	}{
		{"integer defaults to int32", "int", "page", models.FormatInt32},
		{"integer id is int64", "int", "userId", models.FormatInt64},
		{"integer id snake case", "integer", "user_id", models.FormatInt64},
		{"number is float", "float64", "price", models.FormatFloat},
		{"double is float", "double", "ratio", models.FormatFloat},
		{"date token", "date", "from", models.FormatDateTime},
		{"go time token", "time.Time", "since", models.FormatDateTime},
		{"boolean has no format", "bool", "active", models.FormatNone},
		{"array has no format", "array", "tags", models.FormatNone},
		{"boolean ignores name heuristics", "bool", "email", models.FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferFormat(tt.token, tt.param))
		})
	}
}

func TestInferFormat_NameRules(t *testing.T) {
	tests := []struct {
		param    string
		expected models.Format
	}{
		{"start_date", models.FormatDateTime},
		{"timeout", models.FormatDateTime},
		{"created_at", models.FormatDateTime},
		{"updatedAt", models.FormatDateTime},
		{"email", models.FormatEmail},
		{"contact_email", models.FormatEmail},
		{"password", models.FormatPassword},
		{"callback_url", models.FormatURI},
		{"redirectUri", models.FormatURI},
		{"uuid", models.FormatUUID},
		{"client_ip", models.FormatIPv4},
		{"userId", models.FormatNone},
		{"filter", models.FormatNone},
		{"format", models.FormatNone},
		{"At", models.FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferFormat("string", tt.param))
		})
	}
}

func TestInferFormat_UntypedFallsBackToName(t *testing.T) {
	assert.Equal(t, models.FormatEmail, InferFormat("", "email"))
	assert.Equal(t, models.FormatNone, InferFormat("", "q"))
}

func TestInferFormat_FirstNameRuleWins(t *testing.T) {
	// "date" is checked before "email"
	assert.Equal(t, models.FormatDateTime, InferFormat("string", "email_date"))
}

func TestInferExampleType(t *testing.T) {
	tests := []struct {
		value    string
		expected models.WireType
	}{
		{"3", models.WireInteger},
		{"-42", models.WireInteger},
		{"3.14", models.WireNumber},
		{".5", models.WireNumber},
		{"true", models.WireBoolean},
		{"FALSE", models.WireBoolean},
		{"abc", models.WireString},
		{"1.2.3", models.WireString},
		{"", models.WireString},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferExampleType(tt.value))
		})
	}
}

func TestInferExampleFormat(t *testing.T) {
	tests := []struct {
		value    string
		expected models.Format
	}{
		{"user@example.com", models.FormatEmail},
		{"2024-01-15", models.FormatDate},
		{"2024-01-15T10:30:00Z", models.FormatDateTime},
		{"2024-01-15T10:30:00+02:00", models.FormatDateTime},
		{"2024-01-15 10:30:00", models.FormatDateTime},
		{"https://example.com/path", models.FormatURI},
		{"ftp://files.example.com/report.csv", models.FormatURI},
		{"mailto:team@example.com", models.FormatURI},
		{"file:///var/data/report.csv", models.FormatURI},
		{"price:desc", models.FormatNone},
		{"name:asc", models.FormatNone},
		{"status:active", models.FormatNone},
		{"urn-like:thing", models.FormatNone},
		{"192.168.0.1", models.FormatIPv4},
		{"::1", models.FormatIPv6},
		{"550e8400-e29b-41d4-a716-446655440000", models.FormatUUID},
		{"3", models.FormatNone},
		{"electronics", models.FormatNone},
		{"", models.FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferExampleFormat(tt.value))
		})
	}
}

func TestNewExample(t *testing.T) {
	example := NewExample(" 3 ")
	assert.Equal(t, &models.Example{Value: "3", Type: models.WireInteger}, example)

	example = NewExample("2024-01-15")
	assert.Equal(t, models.WireString, example.Type)
	assert.Equal(t, models.FormatDate, example.Format)
}

func TestIsPrimitiveScalar(t *testing.T) {
	for _, token := range []models.TypeToken{"string", "*string", "int", "int64", "uint8", "float32", "float64", "bool", "double", "integer"} {
		assert.True(t, IsPrimitiveScalar(token), token)
	}
	for _, token := range []models.TypeToken{"", "[]string", "time.Time", "echo.Context", "*http.Request", "map[string]string", "**int"} {
		assert.False(t, IsPrimitiveScalar(token), token)
	}
}
