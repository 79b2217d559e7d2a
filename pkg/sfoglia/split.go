package sfoglia

import (
	"strings"

	"github.com/rivo/uniseg"
)

// SplitText decomposes text into animation units. Character splitting works
// on grapheme clusters so emoji and combining sequences animate as single
// units; whitespace-only units are dropped since animating them is invisible.
func SplitText(text string, unit SplitUnit) []string {
	switch unit {
	case SplitWords:
		return strings.Fields(text)
	case SplitLines:
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		return lines
	default:
		var units []string
		graphemes := uniseg.NewGraphemes(text)
		for graphemes.Next() {
			cluster := graphemes.Str()
			if strings.TrimSpace(cluster) == "" {
				continue
			}
			units = append(units, cluster)
		}
		return units
	}
}

// materializeUnits splits el's text into unit child elements, once. Units
// start invisible and offset so the reveal timeline can stagger them in.
// With MaskReveal the parent acts as a clipping box: units stay opaque and
// slide up from below the box instead of fading.
func materializeUnits(el *Element, d Descriptor) []*Element {
	if el.split {
		return el.Query("unit")
	}
	el.split = true

	view := el.view
	for _, text := range SplitText(el.Text, d.SplitUnit) {
		unit := view.NewElement("unit")
		unit.Text = text
		if d.MaskReveal {
			unit.SetOpacity(1)
			unit.SetOffset(0, d.Magnitude*1.5)
		} else {
			unit.SetOpacity(0)
			unit.SetOffset(0, d.Magnitude)
		}
		view.Append(el, unit)
	}

	if d.MaskReveal {
		// Parent clips its children while units travel in from outside.
		el.SetClip(DirectionBottom, 1)
	}

	return el.Query("unit")
}
