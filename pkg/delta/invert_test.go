package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvert_Insert(t *testing.T) {
	base := New().Insert("Hello", nil)
	change := New().Retain(2, nil).Insert("XY", nil)
	inverted, err := change.Invert(base)
	require.NoError(t, err)
	assert.Equal(t, []Op{Retain{Count: 2}, Delete{Count: 2}}, inverted.Ops)
}

func TestInvert_DeleteRestoresContent(t *testing.T) {
	base := New().Insert("Hello", AttributeMap{"bold": true})
	change := New().Retain(1, nil).Delete(3)
	inverted, err := change.Invert(base)
	require.NoError(t, err)
	assert.Equal(t, []Op{
		Retain{Count: 1},
		Insert{Text: "ell", Attributes: AttributeMap{"bold": true}},
	}, inverted.Ops)
}

func TestInvert_FormatRetain(t *testing.T) {
	base := New().Insert("Hello", AttributeMap{"bold": true})
	change := New().Retain(5, AttributeMap{"bold": nil, "italic": true})
	inverted, err := change.Invert(base)
	require.NoError(t, err)
	assert.Equal(t, []Op{
		Retain{Count: 5, Attributes: AttributeMap{"bold": true, "italic": nil}},
	}, inverted.Ops)
}

func TestInvert_EmbedRetain(t *testing.T) {
	RegisterEmbed("counter", counterHandler{})
	defer UnregisterEmbed("counter")

	base := New().InsertEmbed(Embed{"counter": 5.0}, nil)
	change := New().RetainEmbed(Embed{"counter": 2.0}, nil)
	inverted, err := change.Invert(base)
	require.NoError(t, err)
	assert.Equal(t, []Op{Retain{Embed: Embed{"counter": -2.0}}}, inverted.Ops)

	doc := mustCompose(base, change)
	assert.True(t, mustCompose(doc, inverted).Equals(base))
}

func TestInvert_EmbedRetainOverTextFails(t *testing.T) {
	base := New().Insert("a", nil)
	change := New().RetainEmbed(Embed{"counter": 2.0}, nil)
	_, err := change.Invert(base)
	assert.ErrorIs(t, err, ErrCannotRetainNonObject)
}

func TestInvert_RoundTripScenario(t *testing.T) {
	base := New().Insert("Hello", AttributeMap{"bold": true})
	change := New().Retain(5, AttributeMap{"bold": nil, "italic": true})
	inverted, err := change.Invert(base)
	require.NoError(t, err)

	doc := mustCompose(base, change)
	assert.True(t, mustCompose(doc, inverted).Equals(base))
}

func TestInvert_RoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		base := randomDocument(15 + rng.Intn(25))
		change := randomChange(base)
		inverted, err := change.Invert(base)
		require.NoError(t, err)

		doc := mustCompose(base, change)
		restored := mustCompose(doc, inverted)
		assert.True(t, restored.Equals(base), "base=%s change=%s inv=%s got=%s", base, change, inverted, restored)
	}
}
