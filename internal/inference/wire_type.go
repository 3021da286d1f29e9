// Package inference maps free-form type tokens, parameter names and example
// values onto canonical wire types and formats.
//
// Every function here is pure. Rules are ordered and the first match wins.
package inference

import (
	"strings"

	"github.com/toyz/axondoc/internal/models"
)

// wireTypeAliases are honoured as exact matches after the substring ladder
var wireTypeAliases = map[string]models.WireType{
	"integer": models.WireInteger,
	"number":  models.WireNumber,
	"boolean": models.WireBoolean,
	"array":   models.WireArray,
	"object":  models.WireObject,
}

// dateTimeTokens are type words that always carry the date-time format
var dateTimeTokens = map[string]bool{
	"date":      true,
	"datetime":  true,
	"date-time": true,
	"time":      true,
	"timestamp": true,
	"time.time": true,
	"carbon":    true,
}

// primitiveScalars are the declared types a signature parameter may have to be
// picked up as a query parameter without an explicit directive
var primitiveScalars = map[string]bool{
	"string":  true,
	"bool":    true,
	"boolean": true,
	"int":     true,
	"int8":    true,
	"int16":   true,
	"int32":   true,
	"int64":   true,
	"integer": true,
	"uint":    true,
	"uint8":   true,
	"uint16":  true,
	"uint32":  true,
	"uint64":  true,
	"float":   true,
	"float32": true,
	"float64": true,
	"double":  true,
}

// CanonicalWireType maps a raw type token onto a wire type.
// Only the first union alternative is considered. Empty and unknown tokens
// map to string.
func CanonicalWireType(token models.TypeToken) models.WireType {
	primary := normalizeToken(token)
	if primary == "" {
		return models.WireString
	}

	switch {
	case isSliceToken(primary):
		return models.WireArray
	case strings.Contains(primary, "int"):
		return models.WireInteger
	case strings.Contains(primary, "bool"):
		return models.WireBoolean
	case strings.Contains(primary, "float"), strings.Contains(primary, "double"):
		return models.WireNumber
	case strings.Contains(primary, "array"):
		return models.WireArray
	}

	if alias, ok := wireTypeAliases[primary]; ok {
		return alias
	}
	return models.WireString
}

// IsPrimitiveScalar reports whether a declared type is one of the scalar
// tokens accepted as an implicit query parameter. One level of pointer
// indirection is allowed.
func IsPrimitiveScalar(token models.TypeToken) bool {
	primary := strings.TrimPrefix(token.Primary(), "*")
	return primitiveScalars[strings.ToLower(primary)]
}

// IsDateTimeToken reports whether the token names a date or time type
func IsDateTimeToken(token models.TypeToken) bool {
	return dateTimeTokens[normalizeToken(token)]
}

// normalizeToken lower-cases the primary alternative and drops pointer stars
func normalizeToken(token models.TypeToken) string {
	primary := strings.ToLower(token.Primary())
	return strings.TrimLeft(primary, "*")
}

func isSliceToken(token string) bool {
	return strings.HasPrefix(token, "[]") || strings.HasSuffix(token, "[]")
}
