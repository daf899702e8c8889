package delta

import (
	"math/rand"
	"strings"
)

// Fixed seed keeps the randomized property tests reproducible.
var rng = rand.New(rand.NewSource(0x5eed))

// randomText generates a random lowercase string with occasional
// newlines.
func randomText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if rng.Float64() < 0.1 {
			b.WriteRune('\n')
		} else {
			b.WriteRune('a' + rune(rng.Intn(26)))
		}
	}
	return b.String()
}

// randomFormat picks a small attribute map, sometimes nil.
func randomFormat() AttributeMap {
	switch rng.Intn(4) {
	case 0:
		return AttributeMap{"bold": true}
	case 1:
		return AttributeMap{"italic": true}
	case 2:
		return AttributeMap{"color": "red"}
	default:
		return nil
	}
}

// randomUnformat is like randomFormat but may also clear a format.
func randomUnformat() AttributeMap {
	switch rng.Intn(4) {
	case 0:
		return AttributeMap{"bold": true}
	case 1:
		return AttributeMap{"bold": nil}
	case 2:
		return AttributeMap{"italic": true, "color": "blue"}
	default:
		return AttributeMap{"color": nil}
	}
}

// randomDocument builds a document of roughly n positions out of
// variously formatted text runs.
func randomDocument(n int) *Delta {
	doc := New()
	for doc.Length() < n {
		chunk := 1 + rng.Intn(8)
		if left := n - doc.Length(); chunk > left {
			chunk = left
		}
		doc.Insert(randomText(chunk), randomFormat())
	}
	return doc
}

// randomChange builds a change applicable to doc: a mix of retains,
// formatting retains, deletes, and inserts.
func randomChange(doc *Delta) *Delta {
	change := New()
	pos := 0
	baseLen := doc.Length()
	for pos < baseLen {
		left := baseLen - pos
		length := 1 + rng.Intn(min(left, 6))
		switch rng.Intn(5) {
		case 0:
			change.Insert(randomText(1+rng.Intn(5)), randomFormat())
		case 1:
			change.Delete(length)
			pos += length
		case 2:
			change.Retain(length, randomUnformat())
			pos += length
		default:
			change.Retain(length, nil)
			pos += length
		}
	}
	if rng.Intn(3) == 0 {
		change.Insert(randomText(1+rng.Intn(5)), randomFormat())
	}
	return change
}

// mustCompose keeps property tests readable; none of them involve
// embeds, so composition cannot fail.
func mustCompose(a, b *Delta) *Delta {
	out, err := a.Compose(b)
	if err != nil {
		panic(err)
	}
	return out
}
