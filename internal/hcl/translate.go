// This file contains the logic for translating HCL schema structs into the
// format-agnostic settings model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/zmkgrid/internal/config"
	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func translateRoot(ctx context.Context, root *fileRoot) (*config.Settings, error) {
	settings := config.New()

	if root.Metadata != nil {
		settings.Metadata = &config.MetadataOverride{
			Name:    root.Metadata.Name,
			Version: root.Metadata.Version,
			Layout:  root.Metadata.Layout,
		}
	}

	symbols, err := translateSymbols(ctx, root.Symbols)
	if err != nil {
		return nil, err
	}
	settings.Symbols = symbols

	if root.Publish != nil {
		timeout, err := translateDuration(ctx, root.Publish.Timeout, "timeout")
		if err != nil {
			return nil, fmt.Errorf("in publish block: %w", err)
		}
		settings.Publish = &config.Publish{
			URL:       root.Publish.URL,
			Namespace: root.Publish.Namespace,
			Event:     root.Publish.Event,
			Timeout:   timeout,
		}
	}

	return settings, nil
}

// translateSymbols evaluates the `symbols` attribute into a string map.
func translateSymbols(ctx context.Context, expr hcl.Expression) (map[string]string, error) {
	out := make(map[string]string)
	if !isExprDefined(ctx, expr, "symbols") {
		return out, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid symbols value: %w", diags)
	}
	if val.IsNull() {
		return out, nil
	}

	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("symbols at %s must be a map of strings: %w", expr.Range(), err)
	}
	if converted.LengthInt() == 0 {
		return out, nil
	}
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("symbols at %s: %w", expr.Range(), err)
	}
	return out, nil
}

// translateDuration accepts either a Go duration string ("10s") or a number
// of seconds.
func translateDuration(ctx context.Context, expr hcl.Expression, attrName string) (time.Duration, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return 0, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid %s value: %w", attrName, diags)
	}
	if val.IsNull() {
		return 0, nil
	}

	switch val.Type() {
	case cty.Number:
		var seconds float64
		if err := gocty.FromCtyValue(val, &seconds); err != nil {
			return 0, fmt.Errorf("%s at %s: %w", attrName, expr.Range(), err)
		}
		if seconds <= 0 {
			return 0, fmt.Errorf("%s at %s must be positive", attrName, expr.Range())
		}
		return time.Duration(seconds * float64(time.Second)), nil
	default:
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return 0, fmt.Errorf("%s at %s must be a duration string: %w", attrName, expr.Range(), err)
		}
		d, err := time.ParseDuration(str.AsString())
		if err != nil {
			return 0, fmt.Errorf("%s at %s: %w", attrName, expr.Range(), err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%s at %s must be positive", attrName, expr.Range())
		}
		return d, nil
	}
}

// isExprDefined checks if an HCL expression was actually present in the
// source. The HCL decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is insufficient.
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
