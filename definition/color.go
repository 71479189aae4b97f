// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package definition

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// DefaultColor is the color of items that do not specify one.
var DefaultColor = colornames.Lightsteelblue

// ParseColor parses a hex color (#rgb, #rrggbb or #rrggbbaa) or an SVG
// color name. The empty string is [DefaultColor].
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("definition: unknown color %q", s)
}

func parseHex(x string) (color.RGBA, error) {
	var r, g, b uint8
	a := uint8(255)
	var n int
	var err error
	switch len(x) {
	case 3:
		n, err = fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
		n++
	case 6:
		n, err = fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
		n++
	case 8:
		n, err = fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.RGBA{}, fmt.Errorf("definition: invalid hex color #%s", x)
	}
	if err != nil || n != 4 {
		return color.RGBA{}, fmt.Errorf("definition: invalid hex color #%s", x)
	}
	return color.RGBA{r, g, b, a}, nil
}

// FormatColor returns the #rrggbbaa form of the color.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
