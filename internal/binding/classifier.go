package binding

import (
	"github.com/vk/zmkgrid/internal/dts"
	"github.com/vk/zmkgrid/internal/keymap"
)

// Classifier turns binding tokens into keymap.Binding values using a fixed
// symbol table. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	symbols SymbolTable
}

// NewClassifier creates a classifier that labels keys from symbols.
func NewClassifier(symbols SymbolTable) *Classifier {
	return &Classifier{symbols: symbols}
}

// Default is a classifier using DefaultSymbols.
var Default = NewClassifier(DefaultSymbols())

// Symbols returns the table the classifier labels keys with.
func (c *Classifier) Symbols() SymbolTable {
	return c.symbols
}

// Classify maps one binding token to a Binding. It never fails: a token that
// matches no known form comes back as a keycode binding whose code and label
// are the token text.
func (c *Classifier) Classify(token string) keymap.Binding {
	text := dts.Preprocess(token)

	for _, m := range matchers {
		sub := m.pattern.FindStringSubmatch(text)
		if sub == nil {
			continue
		}
		b := m.build(sub, c.symbols)
		b.Kind = m.kind
		return b
	}

	return keymap.Binding{
		Code:  text,
		Label: text,
		Type:  keymap.TypeKeycode,
		Kind:  keymap.KindRaw,
	}
}

// Classify uses the Default classifier.
func Classify(token string) keymap.Binding {
	return Default.Classify(token)
}

// SupportedBindings lists the binding syntaxes the classifier understands,
// for help output.
func SupportedBindings() []string {
	return []string{
		"&kp KEY - Keypress",
		"&mo LAYER - Momentary layer",
		"&mt MOD KEY - Mod-tap",
		"&lt LAYER KEY - Layer-tap",
		"&tog LAYER - Toggle layer",
		"&sk MOD - Sticky key",
		"&trans - Transparent",
		"&none - No operation",
	}
}
