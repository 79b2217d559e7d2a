package sfoglia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsma/sfoglia/pkg/sfoglia"
	"github.com/patsma/sfoglia/pkg/sfoglia/router"
)

func TestElementIDsAreUnique(t *testing.T) {
	reg := sfoglia.NewRegistry()
	view := sfoglia.NewView(router.Route("/"), reg)

	seen := make(map[sfoglia.ElementID]bool)
	for i := 0; i < 100; i++ {
		el := view.NewElement("p")
		require.False(t, seen[el.ID()])
		seen[el.ID()] = true
	}
}

func TestQuerySelectors(t *testing.T) {
	reg := sfoglia.NewRegistry()
	view := sfoglia.NewView(router.Route("/"), reg)

	heading := view.NewElement("h1")
	para := view.NewElement("p")
	para.Class = "lead"
	other := view.NewElement("p")
	view.Append(view.Root(), heading)
	view.Append(view.Root(), para)
	view.Append(view.Root(), other)

	assert.Len(t, view.Root().Query(""), 3)
	assert.Equal(t, []*sfoglia.Element{heading}, view.Root().Query("h1"))
	assert.Equal(t, []*sfoglia.Element{para}, view.Root().Query(".lead"))
	assert.Len(t, view.Root().Query("p"), 2)
	assert.Empty(t, view.Root().Query(".missing"))
}

func TestQueryMatchesDirectChildrenOnly(t *testing.T) {
	reg := sfoglia.NewRegistry()
	view := sfoglia.NewView(router.Route("/"), reg)

	section := view.NewElement("section")
	nested := view.NewElement("p")
	view.Append(view.Root(), section)
	view.Append(section, nested)

	assert.Empty(t, view.Root().Query("p"), "grandchildren must not match")
}

func TestAppendRejectsForeignElements(t *testing.T) {
	reg := sfoglia.NewRegistry()
	home := sfoglia.NewView(router.Route("/"), reg)
	work := sfoglia.NewView(router.Route("/work"), reg)

	stray := work.NewElement("p")
	home.Append(home.Root(), stray)

	assert.Empty(t, home.Root().Children())
	assert.False(t, home.Contains(stray))
}

func TestNewElementStartsVisible(t *testing.T) {
	reg := sfoglia.NewRegistry()
	view := sfoglia.NewView(router.Route("/"), reg)

	el := view.NewElement("h1")
	assert.Equal(t, 1.0, el.Visual().Opacity)
	assert.Equal(t, 1.0, el.Visual().ClipFraction)
	assert.Zero(t, el.Visual().OffsetX)
	assert.Zero(t, el.Visual().OffsetY)
}
