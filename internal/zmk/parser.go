package zmk

import (
	"errors"
	"io"
	"log/slog"

	"github.com/vk/zmkgrid/internal/binding"
	"github.com/vk/zmkgrid/internal/dts"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/vk/zmkgrid/internal/layout"
	"github.com/vk/zmkgrid/internal/validate"
)

// ErrNoLayers is the cause of a ParseError for a keymap with no layers.
var ErrNoLayers = errors.New("No layers found in keymap file")

// Parser parses keymap text with a fixed configuration. It is safe for
// concurrent use.
type Parser struct {
	classifier *binding.Classifier
	metadata   keymap.Metadata
	logger     *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSymbols sets the symbol table used for key labels.
func WithSymbols(symbols binding.SymbolTable) Option {
	return func(p *Parser) {
		p.classifier = binding.NewClassifier(symbols)
	}
}

// WithMetadata replaces the metadata attached to parse results. TotalKeys is
// always the board's key count.
func WithMetadata(md keymap.Metadata) Option {
	return func(p *Parser) {
		md.TotalKeys = keymap.TotalKeys
		p.metadata = md
	}
}

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		classifier: binding.Default,
		metadata:   keymap.DefaultMetadata(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a whole keymap file. On failure it returns a *ParseError and
// no partial result.
func (p *Parser) Parse(content string) (*keymap.KeymapConfig, error) {
	return p.ParseFile(dts.DefaultFilename, content)
}

// ParseFile is Parse with a file name used in syntax error positions.
func (p *Parser) ParseFile(filename, content string) (*keymap.KeymapConfig, error) {
	p.logger.Debug("Parsing keymap.", "file", filename, "bytes", len(content))

	raws, err := dts.Extract(filename, content)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(raws) == 0 {
		return nil, &ParseError{Err: ErrNoLayers}
	}
	p.logger.Debug("Layers extracted.", "file", filename, "count", len(raws))

	layers, err := layout.Normalize(p.classifier, raws)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	cfg := &keymap.KeymapConfig{
		Layers:   layers,
		Metadata: p.metadata,
	}
	p.logger.Debug("Keymap parsed.", "file", filename, "layers", len(cfg.Layers))
	return cfg, nil
}

// Validate runs the advisory checks over content.
func (p *Parser) Validate(content string) validate.Result {
	res := validate.Validate(content)
	p.logger.Debug("Keymap validated.", "valid", res.Valid, "errors", len(res.Errors))
	return res
}

// ParseBinding classifies one binding token with the parser's symbols.
func (p *Parser) ParseBinding(token string) keymap.Binding {
	return p.classifier.Classify(token)
}

var defaultParser = New()

// ParseKeymapFile parses content with default options.
func ParseKeymapFile(content string) (*keymap.KeymapConfig, error) {
	return defaultParser.Parse(content)
}

// ValidateKeymapFile reports structural problems in content. It never fails.
func ValidateKeymapFile(content string) validate.Result {
	return defaultParser.Validate(content)
}

// ParseBinding classifies one binding token with the default symbols.
func ParseBinding(token string) keymap.Binding {
	return defaultParser.ParseBinding(token)
}

// GetSupportedBindings lists the binding syntaxes the parser understands.
func GetSupportedBindings() []string {
	return binding.SupportedBindings()
}
