package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vk/zmkgrid/internal/keymap"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// JSONBytes encodes cfg as indented JSON. Object keys are sorted.
func JSONBytes(cfg *keymap.KeymapConfig) ([]byte, error) {
	val, err := Value(cfg)
	if err != nil {
		return nil, err
	}
	raw, err := ctyjson.Marshal(val, configType)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keymap config as JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// JSON writes cfg to w as indented JSON.
func JSON(w io.Writer, cfg *keymap.KeymapConfig) error {
	b, err := JSONBytes(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
