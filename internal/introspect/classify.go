// Package introspect decides which declared parameters of a handler are
// query inputs.
package introspect

import (
	"strings"

	"github.com/toyz/axondoc/internal/annotations"
	"github.com/toyz/axondoc/internal/inference"
	"github.com/toyz/axondoc/internal/models"
	"github.com/toyz/axondoc/internal/registry"
)

// Reason records which rule decided a parameter
type Reason int

const (
	IncludedTagged         Reason = iota // named by a @queryParam directive
	IncludedScalar                       // primitive scalar
	ExcludedRequestCarrier               // request envelope type
	ExcludedResource                     // registered resource binding
	ExcludedPathParameter                // bound by the route path
	ExcludedDocumentedPath               // marked by @pathParam
	ExcludedNotScalar                    // neither tagged nor a primitive scalar
)

// String returns the string representation of the reason
func (r Reason) String() string {
	switch r {
	case IncludedTagged:
		return "tagged"
	case IncludedScalar:
		return "scalar"
	case ExcludedRequestCarrier:
		return "request carrier"
	case ExcludedResource:
		return "resource binding"
	case ExcludedPathParameter:
		return "path parameter"
	case ExcludedDocumentedPath:
		return "documented path parameter"
	case ExcludedNotScalar:
		return "not a scalar"
	default:
		return "unknown"
	}
}

// Included reports whether the reason keeps the parameter
func (r Reason) Included() bool {
	return r == IncludedTagged || r == IncludedScalar
}

// Decision is the outcome for one declared parameter
type Decision struct {
	Parameter models.ParameterDescriptor
	Reason    Reason
}

// Classification is the full result of classifying a signature
type Classification struct {
	// Query holds the included parameters in signature order
	Query []models.ParameterDescriptor
	// Suppressed holds names that must not surface as query parameters
	// from any source: request carriers, resource bindings and route
	// path parameters
	Suppressed models.NameSet
	// Decisions holds one entry per declared parameter
	Decisions []Decision
}

// Classify returns the declared parameters that are query inputs. rawText is
// the callable's comment block and may be empty.
func Classify(params []models.ParameterDescriptor, rawText string, pathParams models.NameSet, resources registry.ResourceBinder) []models.ParameterDescriptor {
	return ClassifyBlock(params, annotations.ParseDirectives(rawText), pathParams, resources).Query
}

// ClassifyBlock classifies params against an already parsed comment block
func ClassifyBlock(params []models.ParameterDescriptor, block annotations.Block, pathParams models.NameSet, resources registry.ResourceBinder) Classification {
	result := Classification{
		Query:      make([]models.ParameterDescriptor, 0, len(params)),
		Suppressed: models.NewNameSet(),
		Decisions:  make([]Decision, 0, len(params)),
	}

	for _, param := range params {
		reason := decide(param, block, pathParams, resources)
		result.Decisions = append(result.Decisions, Decision{Parameter: param, Reason: reason})

		switch {
		case reason.Included():
			param.Origin = models.OriginSignature
			result.Query = append(result.Query, param)
		case reason == ExcludedRequestCarrier, reason == ExcludedResource, reason == ExcludedPathParameter:
			result.Suppressed.Add(param.Name)
		}
	}

	return result
}

// decide applies the rules in order; the first match wins
func decide(param models.ParameterDescriptor, block annotations.Block, pathParams models.NameSet, resources registry.ResourceBinder) Reason {
	switch {
	case IsRequestCarrier(param.DeclaredType):
		return ExcludedRequestCarrier
	case resources != nil && resources.Binds(param.DeclaredType):
		return ExcludedResource
	case pathParams.Has(param.Name):
		return ExcludedPathParameter
	case block.HasQueryParam(param.Name):
		return IncludedTagged
	case !inference.IsPrimitiveScalar(param.DeclaredType):
		return ExcludedNotScalar
	case block.IsPathParam(param.Name):
		return ExcludedDocumentedPath
	default:
		return IncludedScalar
	}
}

// IsRequestCarrier reports whether the declared type is a request envelope
func IsRequestCarrier(token models.TypeToken) bool {
	return strings.Contains(string(token), "Request")
}
