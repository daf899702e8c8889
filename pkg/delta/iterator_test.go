package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func iteratorFixture() *opIterator {
	d := New().
		Insert("Hello", AttributeMap{"bold": true}).
		Retain(3, nil).
		InsertEmbed(Embed{"image": "a.png"}, AttributeMap{"width": 100}).
		Delete(4)
	return newIterator(d.Ops)
}

func TestIterator_Peek(t *testing.T) {
	it := iteratorFixture()
	assert.Equal(t, KindInsert, it.peekType())
	assert.Equal(t, 5, it.peekLength())
	assert.True(t, it.hasNext())
}

func TestIterator_PeekAtEnd(t *testing.T) {
	it := newIterator(nil)
	assert.Nil(t, it.peek())
	assert.Equal(t, KindRetain, it.peekType())
	assert.Equal(t, infinity, it.peekLength())
	assert.False(t, it.hasNext())
}

func TestIterator_NextSlicesText(t *testing.T) {
	it := iteratorFixture()
	assert.Equal(t, Insert{Text: "He", Attributes: AttributeMap{"bold": true}}, it.next(2))
	assert.Equal(t, 3, it.peekLength())
	assert.Equal(t, Insert{Text: "llo", Attributes: AttributeMap{"bold": true}}, it.next(infinity))
	assert.Equal(t, KindRetain, it.peekType())
}

func TestIterator_NextSlicesByCodePoints(t *testing.T) {
	it := newIterator([]Op{Insert{Text: "日本語"}})
	assert.Equal(t, Insert{Text: "日"}, it.next(1))
	assert.Equal(t, Insert{Text: "本語"}, it.next(infinity))
}

func TestIterator_EmbedsComeBackWhole(t *testing.T) {
	it := iteratorFixture()
	it.next(5)
	it.next(3)
	op := it.next(1)
	assert.Equal(t, Insert{Embed: Embed{"image": "a.png"}, Attributes: AttributeMap{"width": 100}}, op)
	assert.Equal(t, KindDelete, it.peekType())
}

func TestIterator_NextSlicesCounts(t *testing.T) {
	it := newIterator([]Op{Delete{Count: 4}, Retain{Count: 5, Attributes: AttributeMap{"bold": true}}})
	assert.Equal(t, Delete{Count: 3}, it.next(3))
	assert.Equal(t, Delete{Count: 1}, it.next(infinity))
	assert.Equal(t, Retain{Count: 2, Attributes: AttributeMap{"bold": true}}, it.next(2))
}

func TestIterator_NextPastEnd(t *testing.T) {
	it := newIterator(nil)
	assert.Equal(t, Retain{Count: infinity}, it.next(infinity))
}

func TestIterator_Rest(t *testing.T) {
	it := iteratorFixture()
	it.next(2)
	rest := it.rest()
	assert.Equal(t, Insert{Text: "llo", Attributes: AttributeMap{"bold": true}}, rest[0])
	assert.Len(t, rest, 4)
	// rest does not move the cursor.
	assert.Equal(t, 3, it.peekLength())

	it.next(infinity)
	assert.Equal(t, []Op{
		Retain{Count: 3},
		Insert{Embed: Embed{"image": "a.png"}, Attributes: AttributeMap{"width": 100}},
		Delete{Count: 4},
	}, it.rest())
}
