package dts

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/zmkgrid/internal/keymap"
)

// DefaultFilename labels source ranges when the caller has no file name.
const DefaultFilename = "<input>"

const bindingsProperty = "bindings"

// ExtractLayers finds the keymap node in src and returns every layer that
// declares a `bindings` property, in source order. A keymap without layers
// yields an empty slice and no error.
func ExtractLayers(src string) ([]keymap.RawLayer, error) {
	return Extract(DefaultFilename, src)
}

// Extract is ExtractLayers with an explicit file name for diagnostics.
func Extract(filename, src string) ([]keymap.RawLayer, error) {
	p := &extractor{toks: Tokenize(filename, src)}

	if !p.seekKeymap() {
		return nil, ErrNoKeymapBlock
	}
	return p.keymapBody()
}

type extractor struct {
	toks []Token
	pos  int
}

func (p *extractor) peek() Token {
	return p.toks[p.pos]
}

func (p *extractor) next() Token {
	tok := p.toks[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

// seekKeymap positions the extractor just past the `{` of the first
// `keymap {` in the input, whatever its nesting depth.
func (p *extractor) seekKeymap() bool {
	for p.peek().Type != EOF {
		tok := p.next()
		if tok.Type == Word && tok.Text == "keymap" && p.peek().Type == LBrace {
			p.next()
			return true
		}
	}
	return false
}

// keymapBody reads the children of the keymap node up to its closing brace.
func (p *extractor) keymapBody() ([]keymap.RawLayer, error) {
	open := p.toks[p.pos-1]
	layers := []keymap.RawLayer{}

	for {
		tok := p.peek()
		switch tok.Type {
		case EOF:
			return nil, syntaxError(open.Range, "Unclosed keymap block",
				"The keymap node opened here has no matching '}'.")
		case RBrace:
			p.next()
			return layers, nil
		case Semicolon, Directive:
			p.next()
			continue
		}

		name, isNode, err := p.statementHead()
		if err != nil {
			return nil, err
		}
		if !isNode {
			if err := p.skipProperty(); err != nil {
				return nil, err
			}
			continue
		}

		layer, found, err := p.layerNode(name)
		if err != nil {
			return nil, err
		}
		if found {
			layers = append(layers, layer)
		}
	}
}

// statementHead consumes the words that start a statement. For a node it
// returns the node name and stops after '{'; for a property it stops after
// '=' (or before ';' for a valueless property).
func (p *extractor) statementHead() (Token, bool, error) {
	var name Token
	for {
		tok := p.peek()
		switch tok.Type {
		case Word:
			p.next()
			name = tok
		case Colon:
			// `label: node-name {`
			p.next()
		case LBrace:
			p.next()
			if name.Type != Word {
				return Token{}, false, syntaxError(tok.Range, "Unnamed node",
					"Expected a node name before '{'.")
			}
			return name, true, nil
		case Equals:
			p.next()
			return name, false, nil
		case Semicolon:
			return name, false, nil
		default:
			return Token{}, false, syntaxError(tok.Range, "Unexpected token",
				fmt.Sprintf("Unexpected %s where a node or property was expected.", tok))
		}
	}
}

// skipProperty consumes a property value up to and including its ';'.
func (p *extractor) skipProperty() error {
	for {
		tok := p.peek()
		switch tok.Type {
		case Semicolon:
			p.next()
			return nil
		case LAngle:
			if _, err := p.cellGroup(); err != nil {
				return err
			}
		case LBrace, RBrace, EOF:
			return syntaxError(tok.Range, "Unterminated property",
				fmt.Sprintf("Expected ';' to end the property, found %s.", tok))
		default:
			p.next()
		}
	}
}

// layerNode reads one child of the keymap node. The returned bool is false
// when the node has no bindings property.
func (p *extractor) layerNode(name Token) (keymap.RawLayer, bool, error) {
	layer := keymap.RawLayer{Name: name.Text}
	found := false

	for {
		tok := p.peek()
		switch tok.Type {
		case EOF:
			return layer, false, syntaxError(name.Range, "Unclosed node",
				fmt.Sprintf("Node %q has no matching '}'.", name.Text))
		case RBrace:
			closing := p.next()
			if p.peek().Type == Semicolon {
				closing = p.next()
			}
			layer.Range = hcl.RangeBetween(name.Range, closing.Range)
			return layer, found, nil
		case Semicolon, Directive:
			p.next()
			continue
		}

		prop, isNode, err := p.statementHead()
		if err != nil {
			return layer, false, err
		}
		if isNode {
			if err := p.skipNode(prop); err != nil {
				return layer, false, err
			}
			continue
		}

		if prop.Text != bindingsProperty || p.toks[p.pos-1].Type != Equals {
			if err := p.skipProperty(); err != nil {
				return layer, false, err
			}
			continue
		}

		bindings, err := p.bindingsValue()
		if err != nil {
			return layer, false, err
		}
		layer.Bindings = append(layer.Bindings, bindings...)
		found = true
	}
}

// skipNode steps over a nested node whose '{' was already consumed.
func (p *extractor) skipNode(name Token) error {
	depth := 1
	for depth > 0 {
		tok := p.next()
		switch tok.Type {
		case LBrace:
			depth++
		case RBrace:
			depth--
		case EOF:
			return syntaxError(name.Range, "Unclosed node",
				fmt.Sprintf("Node %q has no matching '}'.", name.Text))
		}
	}
	if p.peek().Type == Semicolon {
		p.next()
	}
	return nil
}

// bindingsValue reads `<...>, <...>;` and returns the binding tokens of all
// groups in order.
func (p *extractor) bindingsValue() ([]string, error) {
	var out []string
	for {
		tok := p.peek()
		if tok.Type != LAngle {
			return nil, syntaxError(tok.Range, "Invalid bindings value",
				fmt.Sprintf("Expected '<' to open the bindings list, found %s.", tok))
		}
		group, err := p.cellGroup()
		if err != nil {
			return nil, err
		}
		out = append(out, group...)

		switch tok := p.next(); tok.Type {
		case Comma:
			continue
		case Semicolon:
			return out, nil
		default:
			return nil, syntaxError(tok.Range, "Invalid bindings value",
				fmt.Sprintf("Expected ',' or ';' after '>', found %s.", tok))
		}
	}
}

// cellGroup reads one `< ... >` group. A binding is '&' immediately followed
// by a name of letters and underscores, then the whitespace-separated
// arguments made of upper-case letters, digits and underscores. The first
// word that is not entirely such an argument contributes its leading
// argument characters, if any, and ends the binding: `&kp LS(A)` yields
// `&kp LS` and `&kp a` yields `&kp`.
func (p *extractor) cellGroup() ([]string, error) {
	open := p.next()
	var (
		out       []string
		current   []string
		takesArgs bool
	)
	flush := func() {
		if current != nil {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
		takesArgs = false
	}

	for {
		tok := p.next()
		switch tok.Type {
		case RAngle:
			flush()
			return out, nil
		case Amp:
			flush()
			next := p.peek()
			if next.Type != Word || next.Range.Start.Byte != tok.Range.End.Byte {
				continue
			}
			word := p.next().Text
			name := leading(word, isNameByte)
			if name == "" {
				continue
			}
			current = []string{"&" + name}
			takesArgs = len(name) == len(word)
		case Word:
			if !takesArgs {
				continue
			}
			arg := leading(tok.Text, isArgByte)
			if arg != "" {
				current = append(current, arg)
			}
			takesArgs = len(arg) == len(tok.Text)
		case String, Comma, Colon, Equals, Directive:
			// Not part of any binding; cells before the first '&' are ignored
			// the same way.
			takesArgs = false
		default:
			return nil, syntaxError(open.Range, "Unterminated cell list",
				fmt.Sprintf("The '<' opened here is not closed before %s.", tok))
		}
	}
}

// leading returns the longest prefix of s whose bytes all satisfy ok.
func leading(s string, ok func(byte) bool) string {
	i := 0
	for i < len(s) && ok(s[i]) {
		i++
	}
	return s[:i]
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isArgByte(c byte) bool {
	return c == '_' || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
