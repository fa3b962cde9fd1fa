package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/buildcfg/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined reports whether expr was actually written in the source.
// For omitted optional attributes the decoder substitutes a static null
// expression whose source range has zero width, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// stringExprValue evaluates a literal string attribute. It returns ok=false
// when the attribute is absent or null, and a diagnostic-backed error when it
// holds anything other than a known string.
func stringExprValue(ctx context.Context, expr hcl.Expression, attrName string) (value string, ok bool, err error) {
	if !isExprDefined(ctx, expr, attrName) {
		return "", false, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, nil
	}
	if !val.IsKnown() || !val.Type().Equals(cty.String) {
		return "", false, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute type",
			Detail:   "The \"" + attrName + "\" attribute must be a string, got " + val.Type().FriendlyName() + ".",
			Subject:  expr.Range().Ptr(),
		}
	}
	return val.AsString(), true, nil
}
