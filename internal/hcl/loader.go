package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/zmkgrid/internal/config"
	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths, in order, and merges them
// into one Settings value.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	settings := config.New()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		fileSettings, err := l.decodeFile(ctx, hclFile)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		settings.Merge(fileSettings)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "symbols", len(settings.Symbols), "publish", settings.Publish != nil)
	return settings, nil
}

// LoadBytes decodes a single settings document held in memory.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) (*config.Settings, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	settings, err := l.decodeFile(ctx, hclFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return settings, nil
}

func (l *Loader) decodeFile(ctx context.Context, file *hcl.File) (*config.Settings, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	if err := rejectUnknown(root.Remain); err != nil {
		return nil, err
	}
	return translateRoot(ctx, &root)
}

// rejectUnknown reports any top-level attribute or block the schema does not
// know about.
func rejectUnknown(body hcl.Body) error {
	if body == nil {
		return nil
	}
	_, diags := body.Content(&hcl.BodySchema{})
	if diags.HasErrors() {
		return diags
	}
	return nil
}
