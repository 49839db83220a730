package export

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/zmkgrid/internal/keyid"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/zclconf/go-cty/cty"
)

// HCLBytes renders cfg as an HCL document: one `metadata` block followed by
// one `layer "<name>"` block per layer. Keys inside a layer are written in
// row-major key-id order.
func HCLBytes(cfg *keymap.KeymapConfig) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("export: nil keymap config")
	}

	f := hclwrite.NewEmptyFile()
	root := f.Body()

	md := root.AppendNewBlock("metadata", nil).Body()
	md.SetAttributeValue("name", cty.StringVal(cfg.Metadata.Name))
	md.SetAttributeValue("version", cty.StringVal(cfg.Metadata.Version))
	md.SetAttributeValue("layout", cty.StringVal(cfg.Metadata.Layout))
	md.SetAttributeValue("total_keys", cty.NumberIntVal(int64(cfg.Metadata.TotalKeys)))

	for _, layer := range cfg.Layers {
		root.AppendNewline()
		body := root.AppendNewBlock("layer", []string{layer.Name}).Body()
		body.SetAttributeValue("id", cty.StringVal(layer.ID))

		keys, err := keyTokens(layer.Keys)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		body.SetAttributeRaw("keys", keys)
	}

	return hclwrite.Format(f.Bytes()), nil
}

// HCL writes cfg to w as an HCL document.
func HCL(w io.Writer, cfg *keymap.KeymapConfig) error {
	b, err := HCLBytes(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func keyTokens(keys map[string]keymap.Binding) (hclwrite.Tokens, error) {
	ids := make([]string, 0, len(keys))
	for id := range keys {
		ids = append(ids, id)
	}
	keyid.SortStrings(ids)

	attrs := make([]hclwrite.ObjectAttrTokens, 0, len(ids))
	for _, id := range ids {
		val, err := bindingValue(keys[id])
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", id, err)
		}
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier(id),
			Value: hclwrite.TokensForValue(val),
		})
	}
	return hclwrite.TokensForObject(attrs), nil
}
