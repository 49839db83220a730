package keymap

import "github.com/hashicorp/hcl/v2"

// BindingType is the coarse category of a binding, used by consumers to pick
// a display style.
type BindingType string

const (
	TypeKeycode  BindingType = "keycode"
	TypeLayer    BindingType = "layer"
	TypeModifier BindingType = "modifier"
	TypeCombo    BindingType = "combo"
)

// Kind identifies which binding form a token was recognised as. KindRaw is
// the fallback for tokens no matcher accepted.
type Kind int

const (
	KindRaw Kind = iota
	KindTransparent
	KindNone
	KindKeyPress
	KindMomentary
	KindModTap
	KindLayerTap
	KindToggle
	KindSticky
	KindCombo
)

var kindNames = [...]string{
	KindRaw:         "raw",
	KindTransparent: "transparent",
	KindNone:        "none",
	KindKeyPress:    "keypress",
	KindMomentary:   "momentary",
	KindModTap:      "mod-tap",
	KindLayerTap:    "layer-tap",
	KindToggle:      "toggle",
	KindSticky:      "sticky",
	KindCombo:       "combo",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Binding is the action assigned to one key on one layer.
type Binding struct {
	Code  string      `cty:"code"`
	Label string      `cty:"label"`
	Type  BindingType `cty:"type"`
	Kind  Kind
}

// RawLayer is a layer as it appears in the source, before its bindings are
// classified and placed on the board.
type RawLayer struct {
	Name     string
	Bindings []string
	// Range is the source span of the layer node.
	Range hcl.Range
}

// Layer is a complete set of bindings for every key, addressed by key-id.
type Layer struct {
	ID   string             `cty:"id"`
	Name string             `cty:"name"`
	Keys map[string]Binding `cty:"keys"`
}

// Metadata describes the parsed file.
type Metadata struct {
	Name      string `cty:"name"`
	Version   string `cty:"version"`
	Layout    string `cty:"layout"`
	TotalKeys int    `cty:"totalKeys"`
}

// DefaultMetadata returns the metadata attached to every parse result unless
// the caller overrides it.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:      "Parsed ZMK Keymap",
		Version:   "1.0.0",
		Layout:    "ZMK",
		TotalKeys: TotalKeys,
	}
}

// KeymapConfig is the result of parsing one keymap file.
type KeymapConfig struct {
	Layers   []Layer  `cty:"layers"`
	Metadata Metadata `cty:"metadata"`
}

// Layer returns the layer with the given id, or nil.
func (c *KeymapConfig) Layer(id string) *Layer {
	for i := range c.Layers {
		if c.Layers[i].ID == id {
			return &c.Layers[i]
		}
	}
	return nil
}
