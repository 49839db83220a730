package publish

import (
	"errors"
	"fmt"

	"github.com/vk/zmkgrid/internal/export"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/zclconf/go-cty/cty"
)

// payload turns cfg into the plain map the socket.io client serializes.
func payload(cfg *keymap.KeymapConfig) (map[string]any, error) {
	val, err := export.Value(cfg)
	if err != nil {
		return nil, err
	}
	data, err := plain(val)
	if err != nil {
		return nil, fmt.Errorf("failed to convert keymap to payload: %w", err)
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("keymap payload is %T, not an object", data)
	}
	return m, nil
}

// ackError reports a rejection carried by ack arguments: the first argument
// is an object with a non-empty string "error" field. Any other ack accepts.
func ackError(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	obj, ok := args[0].(map[string]any)
	if !ok {
		return nil
	}
	if msg, ok := obj["error"].(string); ok && msg != "" {
		return errors.New(msg)
	}
	return nil
}

// plain converts a known cty value into maps, slices and scalars that
// encoding/json can marshal. Whole numbers become int64.
func plain(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); bf.IsInt() && acc == 0 {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			elem, err := plain(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k.AsString(), err)
			}
			out[k.AsString()] = elem
		}
		return out, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			elem, err := plain(v)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
}
