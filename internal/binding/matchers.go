package binding

import (
	"regexp"
	"strings"

	"github.com/vk/zmkgrid/internal/keymap"
)

// matcher recognises one binding form. build receives the submatches of
// pattern and the symbol table of the classifier.
type matcher struct {
	kind    keymap.Kind
	pattern *regexp.Regexp
	build   func(m []string, syms SymbolTable) keymap.Binding
}

// matchers are tried in order. The argument-less forms come first so that
// `&trans` and `&none` never reach a pattern that could also accept them.
var matchers = []matcher{
	{
		kind:    keymap.KindTransparent,
		pattern: regexp.MustCompile(`(?i)^&trans$`),
		build: func(_ []string, _ SymbolTable) keymap.Binding {
			return keymap.Binding{Code: "TRANS", Label: "▽", Type: keymap.TypeKeycode}
		},
	},
	{
		kind:    keymap.KindNone,
		pattern: regexp.MustCompile(`(?i)^&none$`),
		build: func(_ []string, _ SymbolTable) keymap.Binding {
			return keymap.Binding{Code: "NONE", Label: "", Type: keymap.TypeKeycode}
		},
	},
	{
		kind:    keymap.KindKeyPress,
		pattern: regexp.MustCompile(`(?i)^&kp\s+([A-Z0-9_]+)$`),
		build: func(m []string, syms SymbolTable) keymap.Binding {
			key := strings.ToUpper(m[1])
			return keymap.Binding{Code: key, Label: syms.Label(key), Type: keymap.TypeKeycode}
		},
	},
	{
		kind:    keymap.KindMomentary,
		pattern: regexp.MustCompile(`(?i)^&mo\s+(\d+)$`),
		build: func(m []string, _ SymbolTable) keymap.Binding {
			return keymap.Binding{Code: "MO(" + m[1] + ")", Label: "L" + m[1], Type: keymap.TypeLayer}
		},
	},
	{
		kind:    keymap.KindModTap,
		pattern: regexp.MustCompile(`(?i)^&mt\s+([A-Z0-9_]+)\s+([A-Z0-9_]+)$`),
		build: func(m []string, syms SymbolTable) keymap.Binding {
			mod, key := strings.ToUpper(m[1]), strings.ToUpper(m[2])
			return keymap.Binding{
				Code:  "MT(" + mod + ", " + key + ")",
				Label: syms.Label(mod) + "/" + syms.Label(key),
				Type:  keymap.TypeModifier,
			}
		},
	},
	{
		kind:    keymap.KindLayerTap,
		pattern: regexp.MustCompile(`(?i)^&lt\s+(\d+)\s+([A-Z0-9_]+)$`),
		build: func(m []string, syms SymbolTable) keymap.Binding {
			layer, key := m[1], strings.ToUpper(m[2])
			return keymap.Binding{
				Code:  "LT(" + layer + ", " + key + ")",
				Label: "L" + layer + "/" + syms.Label(key),
				Type:  keymap.TypeLayer,
			}
		},
	},
	{
		kind:    keymap.KindToggle,
		pattern: regexp.MustCompile(`(?i)^&tog\s+(\d+)$`),
		build: func(m []string, _ SymbolTable) keymap.Binding {
			return keymap.Binding{Code: "TG(" + m[1] + ")", Label: "TG" + m[1], Type: keymap.TypeLayer}
		},
	},
	{
		kind:    keymap.KindSticky,
		pattern: regexp.MustCompile(`(?i)^&sk\s+([A-Z0-9_]+)$`),
		build: func(m []string, syms SymbolTable) keymap.Binding {
			mod := strings.ToUpper(m[1])
			return keymap.Binding{
				Code:  "SK(" + mod + ")",
				Label: "SK(" + syms.Label(mod) + ")",
				Type:  keymap.TypeModifier,
			}
		},
	},
	{
		kind:    keymap.KindCombo,
		pattern: regexp.MustCompile(`(?i)^&combo_([A-Z0-9_]+)$`),
		build: func(m []string, _ SymbolTable) keymap.Binding {
			return keymap.Binding{
				Code:  "COMBO_" + strings.ToUpper(m[1]),
				Label: m[1],
				Type:  keymap.TypeCombo,
			}
		},
	},
}
