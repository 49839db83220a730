package binding

// SymbolTable maps ZMK key names to the glyph shown on a keycap. It is
// immutable once built; use Merge to derive a table with overrides.
type SymbolTable struct {
	m map[string]string
}

// NewSymbolTable copies m into a new table.
func NewSymbolTable(m map[string]string) SymbolTable {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return SymbolTable{m: cp}
}

// Lookup returns the glyph for key, if one is defined.
func (s SymbolTable) Lookup(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

// Label returns the glyph for key, or key itself.
func (s SymbolTable) Label(key string) string {
	if v, ok := s.m[key]; ok {
		return v
	}
	return key
}

// Len returns the number of entries.
func (s SymbolTable) Len() int {
	return len(s.m)
}

// Merge returns a new table holding s with overrides applied on top.
func (s SymbolTable) Merge(overrides map[string]string) SymbolTable {
	cp := make(map[string]string, len(s.m)+len(overrides))
	for k, v := range s.m {
		cp[k] = v
	}
	for k, v := range overrides {
		cp[k] = v
	}
	return SymbolTable{m: cp}
}

// DefaultSymbols returns the built-in ZMK key label table.
func DefaultSymbols() SymbolTable {
	return NewSymbolTable(zmkKeyLabels)
}

var zmkKeyLabels = map[string]string{
	"TAB":         "⇥",
	"BSPC":        "⌫",
	"DEL":         "⌦",
	"ESC":         "⎋",
	"RET":         "⏎",
	"ENTER":       "⏎",
	"SPACE":       "␣",
	"LSHIFT":      "⇧",
	"RSHIFT":      "⇧",
	"LCTRL":       "⌃",
	"RCTRL":       "⌃",
	"LALT":        "⌥",
	"RALT":        "⌥",
	"LGUI":        "⌘",
	"RGUI":        "⌘",
	"CAPS":        "⇪",
	"CAPSLOCK":    "⇪",
	"UP":          "↑",
	"DOWN":        "↓",
	"LEFT":        "←",
	"RIGHT":       "→",
	"HOME":        "⇱",
	"END":         "⇲",
	"PGUP":        "⇞",
	"PGDN":        "⇟",
	"SEMI":        ";",
	"SQT":         "'",
	"GRAVE":       "`",
	"COMMA":       ",",
	"DOT":         ".",
	"FSLH":        "/",
	"BSLH":        "\\",
	"LBKT":        "[",
	"RBKT":        "]",
	"LBRC":        "{",
	"RBRC":        "}",
	"LPAR":        "(",
	"RPAR":        ")",
	"MINUS":       "-",
	"EQUAL":       "=",
	"PLUS":        "+",
	"UNDER":       "_",
	"EXCL":        "!",
	"AT":          "@",
	"HASH":        "#",
	"DLLR":        "$",
	"PRCNT":       "%",
	"CARET":       "^",
	"AMPS":        "&",
	"STAR":        "*",
	"KP_MULTIPLY": "*",
	"PIPE":        "|",
	"TILDE":       "~",
}
