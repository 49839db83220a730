package dts

import (
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/zmkgrid/internal/testutil"
)

func TestExtractLayers_Corne(t *testing.T) {
	layers, err := ExtractLayers(testutil.CorneKeymap)
	require.NoError(t, err)
	require.Len(t, layers, 3)

	assert.Equal(t, "default_layer", layers[0].Name)
	assert.Equal(t, "lower_layer", layers[1].Name)
	assert.Equal(t, "raise_layer", layers[2].Name)

	for _, layer := range layers {
		assert.Len(t, layer.Bindings, 42, "layer %s", layer.Name)
	}

	base := layers[0].Bindings
	assert.Equal(t, "&kp TAB", base[0])
	assert.Equal(t, "&kp BSPC", base[11])
	assert.Equal(t, "&mo 1", base[37])
	assert.Equal(t, "&kp RALT", base[41])

	lower := layers[1].Bindings
	assert.Equal(t, "&bt BT_SEL 0", lower[25])

	raise := layers[2].Bindings
	assert.Equal(t, "&kp EXCL", raise[0], "commented-out bindings must be skipped")
	assert.Equal(t, "&mt LCTRL ESC", raise[12])
	assert.Equal(t, "&lt 1 TAB", raise[37])
	assert.Equal(t, "&combo_esc", raise[35])
}

func TestExtractLayers_Ranges(t *testing.T) {
	src := "keymap {\n  base {\n    bindings = <&kp A>;\n  };\n};"
	layers, err := Extract("mini.keymap", src)
	require.NoError(t, err)
	require.Len(t, layers, 1)

	rng := layers[0].Range
	assert.Equal(t, "mini.keymap", rng.Filename)
	assert.Equal(t, 2, rng.Start.Line)
	assert.Equal(t, 4, rng.End.Line)
}

func TestExtractLayers(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string][]string
		order    []string
	}{
		{
			name:  "single line",
			input: "keymap { base { bindings = <&kp A &mt LSHIFT B &trans>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp A", "&mt LSHIFT B", "&trans"},
			},
		},
		{
			name:  "multiple cell groups",
			input: "keymap { base { bindings = <&kp A>, <&kp B &kp C>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp A", "&kp B", "&kp C"},
			},
		},
		{
			name:  "sensor bindings are not bindings",
			input: "keymap { base { sensor-bindings = <&inc_dec_kp UP DOWN>; bindings = <&kp A>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp A"},
			},
		},
		{
			name:  "node without bindings is skipped",
			input: "keymap { compatible = \"zmk,keymap\"; empty { display-name = \"e\"; }; base { bindings = <&kp A>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp A"},
			},
		},
		{
			name:  "labelled node and nested child",
			input: "keymap { b: base { child { bindings = <&kp Z>; }; bindings = <&kp A>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp A"},
			},
		},
		{
			name:  "function style arguments keep their leading code",
			input: "keymap { base { bindings = <&kp LS(N1) &kp LC(LS(A)) &mt LS(A) B>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp LS", "&kp LC", "&mt LS"},
			},
		},
		{
			name:  "lower case arguments are not part of the binding",
			input: "keymap { base { bindings = <&kp a &kp A &mt LSHIFT esc &kp Nx>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp", "&kp A", "&mt LSHIFT", "&kp N"},
			},
		},
		{
			name:  "ampersand without a name is skipped",
			input: "keymap { base { bindings = <& kp A &1 B &kp C>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&kp C"},
			},
		},
		{
			name:  "keymap nested under root with other nodes",
			input: "/ { behaviors { hm: homerow { #binding-cells = <2>; }; }; keymap { l0 { bindings = <&kp A>; }; l1 { bindings = <&kp B>; }; }; };",
			order: []string{"l0", "l1"},
			expected: map[string][]string{
				"l0": {"&kp A"},
				"l1": {"&kp B"},
			},
		},
		{
			name:     "keymap without layers",
			input:    "keymap { compatible = \"zmk,keymap\"; };",
			order:    []string{},
			expected: map[string][]string{},
		},
		{
			name:  "include line mentioning keymap is ignored",
			input: "#include <dt-bindings/zmk/keymap.h>\nkeymap { base { bindings = <&none>; }; };",
			order: []string{"base"},
			expected: map[string][]string{
				"base": {"&none"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layers, err := ExtractLayers(tc.input)
			require.NoError(t, err)

			names := make([]string, len(layers))
			for i, layer := range layers {
				names[i] = layer.Name
				assert.Equal(t, tc.expected[layer.Name], layer.Bindings, "layer %s", layer.Name)
			}
			assert.Equal(t, tc.order, names)
		})
	}
}

func TestExtractLayers_NoKeymapBlock(t *testing.T) {
	for _, input := range []string{"hello world", "", "keymap = <1>;", "// keymap { }"} {
		_, err := ExtractLayers(input)
		require.ErrorIs(t, err, ErrNoKeymapBlock, "input %q", input)
		assert.Equal(t, "No keymap block found in file", err.Error())
	}
}

func TestExtractLayers_SyntaxErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		summary string
		line    int
	}{
		{
			name:    "unclosed keymap",
			input:   "keymap {\n  base { bindings = <&kp A>; };\n",
			summary: "Unclosed keymap block",
			line:    1,
		},
		{
			name:    "unclosed layer",
			input:   "keymap {\n  base {\n    bindings = <&kp A>;\n",
			summary: "Unclosed node",
			line:    2,
		},
		{
			name:    "unterminated cell list",
			input:   "keymap {\n  base {\n    bindings = <&kp A\n  };\n};",
			summary: "Unterminated cell list",
			line:    3,
		},
		{
			name:    "bindings without angle brackets",
			input:   "keymap { base { bindings = &kp A; }; };",
			summary: "Invalid bindings value",
			line:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractLayers(tc.input)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrNoKeymapBlock))

			var diags hcl.Diagnostics
			require.True(t, errors.As(err, &diags), "expected hcl.Diagnostics, got %T", err)
			require.Len(t, diags, 1)
			assert.Equal(t, tc.summary, diags[0].Summary)
			require.NotNil(t, diags[0].Subject)
			assert.Equal(t, tc.line, diags[0].Subject.Start.Line)
			assert.Contains(t, err.Error(), DefaultFilename)
		})
	}
}
