package export

import (
	"fmt"

	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var (
	configType  cty.Type
	bindingType cty.Type
)

func init() {
	var err error
	if configType, err = gocty.ImpliedType(keymap.KeymapConfig{}); err != nil {
		panic(fmt.Sprintf("export: cannot derive cty type for KeymapConfig: %s", err))
	}
	if bindingType, err = gocty.ImpliedType(keymap.Binding{}); err != nil {
		panic(fmt.Sprintf("export: cannot derive cty type for Binding: %s", err))
	}
}

// Value converts cfg into its cty representation. Fields without a `cty`
// tag, such as Binding.Kind, are left out.
func Value(cfg *keymap.KeymapConfig) (cty.Value, error) {
	if cfg == nil {
		return cty.NilVal, fmt.Errorf("export: nil keymap config")
	}
	normalized := *cfg
	if normalized.Layers == nil {
		normalized.Layers = []keymap.Layer{}
	}
	val, err := gocty.ToCtyValue(normalized, configType)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to convert keymap config: %w", err)
	}
	return val, nil
}

func bindingValue(b keymap.Binding) (cty.Value, error) {
	return gocty.ToCtyValue(b, bindingType)
}
