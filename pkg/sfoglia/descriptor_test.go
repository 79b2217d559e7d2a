package sfoglia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsma/sfoglia/pkg/sfoglia/internal"
	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

func TestThemeDefaultEasingReachesBuiltTweens(t *testing.T) {
	prev := internal.GetTheme()
	t.Cleanup(func() { internal.SetTheme(prev) })

	theme := internal.DefaultTheme()
	theme.DefaultEasing = "linear"
	internal.SetTheme(theme)

	reg := NewRegistry()
	view := NewView(router.Route("/work"), reg)
	el := view.NewElement("p")
	view.Append(view.Root(), el)
	view.Mount()

	reg.Attach(el, Descriptor{
		Kind:      KindFade,
		Direction: DirectionUp,
		Duration:  1,
		Magnitude: 24,
	})

	d, ok := reg.Read(el)
	require.True(t, ok)
	assert.Equal(t, "linear", d.Easing)

	// Halfway through a linear fade the opacity is exactly one half; under
	// the stock power2.out curve it would be well past that.
	seq := NewSequencer(reg, nil)
	tl := seq.Reveal(view, nil, 0)
	tl.Advance(0.5)
	assert.InDelta(t, 0.5, el.Visual().Opacity, 1e-9)
}

func TestDescriptorEasingBeatsThemeDefault(t *testing.T) {
	prev := internal.GetTheme()
	t.Cleanup(func() { internal.SetTheme(prev) })

	theme := internal.DefaultTheme()
	theme.DefaultEasing = "linear"
	internal.SetTheme(theme)

	reg := NewRegistry()
	view := NewView(router.Route("/work"), reg)
	el := view.NewElement("p")
	view.Append(view.Root(), el)

	reg.Attach(el, Descriptor{Kind: KindFade, Easing: "expo.out"})

	d, _ := reg.Read(el)
	assert.Equal(t, "expo.out", d.Easing)
}

func TestPerKindEasingDefaultsWithoutThemeOverride(t *testing.T) {
	prev := internal.GetTheme()
	t.Cleanup(func() { internal.SetTheme(prev) })
	internal.SetTheme(internal.DefaultTheme())

	reg := NewRegistry()
	view := NewView(router.Route("/work"), reg)

	clip := view.NewElement("section")
	fade := view.NewElement("p")
	view.Append(view.Root(), clip)
	view.Append(view.Root(), fade)

	reg.Attach(clip, Descriptor{Kind: KindClip})
	reg.Attach(fade, Descriptor{Kind: KindFade})

	d, _ := reg.Read(clip)
	assert.Equal(t, "power3.inOut", d.Easing)
	d, _ = reg.Read(fade)
	assert.Equal(t, "power2.out", d.Easing)
}
