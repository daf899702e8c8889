package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterHandler implements a toy embed: an insert payload holds the
// counter value, a retain payload holds an increment.
type counterHandler struct{}

func (counterHandler) Compose(a, b interface{}, _ bool) interface{} {
	return a.(float64) + b.(float64)
}

func (counterHandler) Invert(a, _ interface{}) interface{} {
	return -a.(float64)
}

func (counterHandler) Transform(_, b interface{}, _ bool) interface{} {
	// Increments commute.
	return b
}

func TestRegisterEmbed_Lookup(t *testing.T) {
	RegisterEmbed("counter", counterHandler{})
	defer UnregisterEmbed("counter")

	h, err := getHandler("counter")
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.NotNil(t, peekHandler("counter"))
}

func TestRegisterEmbed_OverwritesPrevious(t *testing.T) {
	RegisterEmbed("counter", counterHandler{})
	RegisterEmbed("counter", counterHandler{})
	defer UnregisterEmbed("counter")

	_, err := getHandler("counter")
	assert.NoError(t, err)
}

func TestUnregisterEmbed(t *testing.T) {
	RegisterEmbed("counter", counterHandler{})
	UnregisterEmbed("counter")

	_, err := getHandler("counter")
	assert.ErrorIs(t, err, ErrUnknownEmbedType)
	assert.Nil(t, peekHandler("counter"))
}

func TestEmbedTypeAndData(t *testing.T) {
	embedType, aData, bData, err := embedTypeAndData(
		Embed{"image": "a.png"},
		Embed{"image": "b.png"},
	)
	require.NoError(t, err)
	assert.Equal(t, "image", embedType)
	assert.Equal(t, "a.png", aData)
	assert.Equal(t, "b.png", bData)
}

func TestEmbedTypeAndData_Mismatch(t *testing.T) {
	_, _, _, err := embedTypeAndData(Embed{"image": "a.png"}, Embed{"video": "b.mp4"})
	assert.ErrorIs(t, err, ErrEmbedTypeMismatch)
}

func TestEmbedTypeAndData_NonObject(t *testing.T) {
	_, _, _, err := embedTypeAndData(nil, Embed{"image": "a.png"})
	assert.ErrorIs(t, err, ErrCannotRetainNonObject)

	_, _, _, err = embedTypeAndData(Embed{"a": 1, "b": 2}, Embed{"image": "a.png"})
	assert.ErrorIs(t, err, ErrCannotRetainNonObject)
}

func TestEmbedTypeName(t *testing.T) {
	name, ok := Embed{"image": "a.png"}.TypeName()
	assert.True(t, ok)
	assert.Equal(t, "image", name)

	_, ok = Embed{}.TypeName()
	assert.False(t, ok)
	_, ok = Embed{"a": 1, "b": 2}.TypeName()
	assert.False(t, ok)
}
