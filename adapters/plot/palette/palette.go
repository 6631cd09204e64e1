// Package palette resolves named or literal color palettes for plots.
package palette

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"py50/domain/core"
)

// Default is used when no palette is requested
const Default = "deep"

var named = map[string][]string{
	"deep":       {"4C72B0", "DD8452", "55A868", "C44E52", "8172B3", "937860", "DA8BC3", "8C8C8C", "CCB974", "64B5CD"},
	"muted":      {"4878D0", "EE854A", "6ACC64", "D65F5F", "956CB4", "8C613C", "DC7EC0", "797979", "D5BB67", "82C6E2"},
	"pastel":     {"A1C9F4", "FFB482", "8DE5A1", "FF9F9B", "D0BBFF", "DEBB9B", "FAB0E4", "CFCFCF", "FFFEA3", "B9F2F0"},
	"bright":     {"023EFF", "FF7C00", "1AC938", "E8000B", "8B2BE2", "9F4800", "F14CC1", "A3A3A3", "FFC400", "00D7FF"},
	"dark":       {"001C7F", "B1400D", "12711C", "8C0800", "591E71", "592F0D", "A23582", "3C3C3C", "B8850A", "006374"},
	"colorblind": {"0173B2", "DE8F05", "029E73", "D55E00", "CC78BC", "CA9161", "FBAFE4", "949494", "ECE133", "56B4E9"},
}

// Palette is an ordered list of colors, cycled when there are more
// categories than colors.
type Palette []drawing.Color

// At returns the color for category i
func (p Palette) At(i int) drawing.Color {
	if len(p) == 0 {
		return drawing.ColorBlack
	}
	return p[i%len(p)]
}

// Names lists the built-in palettes
func Names() []string {
	out := make([]string, 0, len(named))
	for n := range named {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Resolve turns a palette name or a comma separated list of hex colors
// ("#1f77b4,#ff7f0e") into colors. An empty spec yields the default palette.
func Resolve(spec string) (Palette, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = Default
	}
	if hexes, ok := named[strings.ToLower(spec)]; ok {
		return fromHex(hexes)
	}
	if !strings.Contains(spec, "#") && !strings.Contains(spec, ",") {
		return nil, fmt.Errorf("%w %q: use one of %s or a list of hex colors",
			core.ErrUnknownPalette, spec, strings.Join(Names(), ", "))
	}

	var hexes []string
	for _, part := range strings.Split(spec, ",") {
		if h := strings.TrimSpace(part); h != "" {
			hexes = append(hexes, h)
		}
	}
	return fromHex(hexes)
}

func fromHex(hexes []string) (Palette, error) {
	out := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		h = strings.TrimPrefix(h, "#")
		if len(h) != 6 {
			return nil, fmt.Errorf("%w: %q is not a 6 digit hex color", core.ErrUnknownPalette, h)
		}
		if _, err := strconv.ParseUint(h, 16, 32); err != nil {
			return nil, fmt.Errorf("%w: %q is not a 6 digit hex color", core.ErrUnknownPalette, h)
		}
		out = append(out, drawing.ColorFromHex(h))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no colors given", core.ErrUnknownPalette)
	}
	return out, nil
}
