package testutil

import (
	"fmt"
	"strings"
)

// LayerSpec describes one layer of a generated keymap source.
type LayerSpec struct {
	Name     string
	Bindings []string
}

// RepeatBinding returns n copies of binding.
func RepeatBinding(binding string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = binding
	}
	return out
}

// KeyPresses returns n distinct `&kp` bindings: letters first, then digits
// as N0..N9, then F-keys.
func KeyPresses(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i < 26:
			out = append(out, fmt.Sprintf("&kp %c", 'A'+i))
		case i < 36:
			out = append(out, fmt.Sprintf("&kp N%d", i-26))
		default:
			out = append(out, fmt.Sprintf("&kp F%d", i-35))
		}
	}
	return out
}

// KeymapSource renders layers as a ZMK keymap file, twelve bindings per line.
func KeymapSource(layers ...LayerSpec) string {
	var sb strings.Builder
	sb.WriteString("#include <behaviors.dtsi>\n")
	sb.WriteString("#include <dt-bindings/zmk/keys.h>\n\n")
	sb.WriteString("/ {\n    keymap {\n        compatible = \"zmk,keymap\";\n")
	for _, layer := range layers {
		fmt.Fprintf(&sb, "\n        %s {\n", layer.Name)
		fmt.Fprintf(&sb, "            display-name = %q;\n", layer.Name)
		sb.WriteString("            bindings = <\n")
		for i := 0; i < len(layer.Bindings); i += 12 {
			end := i + 12
			if end > len(layer.Bindings) {
				end = len(layer.Bindings)
			}
			sb.WriteString("                ")
			sb.WriteString(strings.Join(layer.Bindings[i:end], "  "))
			sb.WriteByte('\n')
		}
		sb.WriteString("            >;\n        };\n")
	}
	sb.WriteString("    };\n};\n")
	return sb.String()
}

// CorneKeymap is a three-layer keymap for the 42-key board, in the shape the
// ZMK project ships for the Corne, with comments, includes and a sensor
// binding mixed in.
const CorneKeymap = `/*
 * Copyright (c) 2020 The ZMK Contributors
 *
 * SPDX-License-Identifier: MIT
 */

#include <behaviors.dtsi>
#include <dt-bindings/zmk/keys.h>
#include <dt-bindings/zmk/bt.h>

/ {
    keymap {
        compatible = "zmk,keymap";

        default_layer {
            display-name = "QWERTY";
// -----------------------------------------------------------------------------------------
// |  TAB |  Q  |  W  |  E  |  R  |  T  |   |  Y  |  U   |  I  |  O  |  P  | BSPC |
// | CTRL |  A  |  S  |  D  |  F  |  G  |   |  H  |  J   |  K  |  L  |  ;  |  '   |
// | SHFT |  Z  |  X  |  C  |  V  |  B  |   |  N  |  M   |  ,  |  .  |  /  | ESC  |
//                    | GUI | LWR | SPC |   | ENT | RSE  | ALT |
            bindings = <
   &kp TAB   &kp Q &kp W &kp E &kp R &kp T   &kp Y &kp U  &kp I     &kp O   &kp P    &kp BSPC
   &kp LCTRL &kp A &kp S &kp D &kp F &kp G   &kp H &kp J  &kp K     &kp L   &kp SEMI &kp SQT
   &kp LSHIFT &kp Z &kp X &kp C &kp V &kp B  &kp N &kp M  &kp COMMA &kp DOT &kp FSLH &kp ESC
                  &kp LGUI &mo 1 &kp SPACE   &kp RET &mo 2 &kp RALT
            >;
            sensor-bindings = <&inc_dec_kp C_VOL_UP C_VOL_DN>;
        };

        lower_layer {
            display-name = "NUMBER";
            bindings = <
   &kp TAB    &kp N1       &kp N2       &kp N3 &kp N4 &kp N5   &kp N6   &kp N7   &kp N8 &kp N9    &kp N0 &kp BSPC
   &kp LCTRL  &bt BT_CLR   &none        &none  &none  &none    &kp LEFT &kp DOWN &kp UP &kp RIGHT &none  &none
   &kp LSHIFT &bt BT_SEL 0 &bt BT_SEL 1 &none  &none  &none    &none    &none    &none  &none     &none  &none
                           &kp LGUI &trans &kp SPACE   &kp RET &mo 3 &kp RALT
            >;
        };

        raise_layer {
            display-name = "SYMBOL";
            /* &kp Q &kp Q &kp Q must not leak into the bindings */
            bindings = <
   &kp EXCL        &kp AT &kp HASH &kp DLLR &kp PRCNT &kp CARET   &kp AMPS  &kp STAR &kp LPAR &kp RPAR  &kp MINUS &kp EQUAL
   &mt LCTRL ESC   &none  &none    &none    &none     &none       &kp LBKT  &kp RBKT &kp LBRC &kp RBRC  &kp BSLH  &kp GRAVE
   &sk LSHIFT      &none  &none    &none    &none     &none       &kp UNDER &kp PLUS &kp PIPE &kp TILDE &tog 1    &combo_esc
                           &kp LGUI &lt 1 TAB &kp SPACE   &kp RET &trans &kp RALT
            >;
        };
    };
};
`
