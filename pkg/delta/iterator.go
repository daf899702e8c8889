package delta

import (
	"math"
	"strings"
	"unicode/utf8"
)

// infinity marks an unbounded slice request; next(infinity) consumes
// whatever remains of the current op.
const infinity = math.MaxInt

// opIterator is a splittable cursor over a fixed op sequence. It walks
// ops in order and can hand out slices of the current op, which is how
// the algebra keeps two deltas aligned position by position.
type opIterator struct {
	ops    []Op
	index  int
	offset int
}

func newIterator(ops []Op) *opIterator {
	return &opIterator{ops: ops}
}

// hasNext reports whether any positions remain.
func (it *opIterator) hasNext() bool {
	return it.peekLength() < infinity
}

// peek returns the current op without advancing, or nil at the end.
func (it *opIterator) peek() Op {
	if it.index < len(it.ops) {
		return it.ops[it.index]
	}
	return nil
}

// peekLength returns the unconsumed length of the current op, or
// infinity at the end. It never returns 0 on a real op: next always
// either advances past an op or leaves a positive remainder.
func (it *opIterator) peekLength() int {
	if it.index < len(it.ops) {
		return it.ops[it.index].Length() - it.offset
	}
	return infinity
}

// peekType returns the kind of the current op. Past the end it reports
// KindRetain, so a consumer pairing two iterators naturally pads the
// shorter side with retains until both are exhausted.
func (it *opIterator) peekType() OpKind {
	if it.index < len(it.ops) {
		return it.ops[it.index].Kind()
	}
	return KindRetain
}

// next returns a slice of the current op covering at most n positions
// and advances the cursor. Text inserts slice by code points; deletes
// and integer retains slice by count. Embed inserts and retains are
// indivisible: they are returned whole (callers only ever request
// n >= 1, which the algebra guarantees). Past the end, next returns an
// unbounded bare retain.
func (it *opIterator) next(n int) Op {
	if it.index >= len(it.ops) {
		return Retain{Count: infinity}
	}
	op := it.ops[it.index]
	offset := it.offset
	length := op.Length()
	if n >= length-offset {
		n = length - offset
		it.index++
		it.offset = 0
	} else {
		it.offset += n
	}
	switch op := op.(type) {
	case Delete:
		return Delete{Count: n}
	case Retain:
		if op.Embed != nil {
			return Retain{Embed: op.Embed, Attributes: op.Attributes}
		}
		return Retain{Count: n, Attributes: op.Attributes}
	case Insert:
		if op.Embed != nil {
			return Insert{Embed: op.Embed, Attributes: op.Attributes}
		}
		return Insert{Text: sliceRunes(op.Text, offset, n), Attributes: op.Attributes}
	}
	return op
}

// rest returns the remaining ops, with the current op truncated to its
// unconsumed tail. The cursor is left where it was.
func (it *opIterator) rest() []Op {
	if !it.hasNext() {
		return nil
	}
	if it.offset == 0 {
		return it.ops[it.index:]
	}
	offset, index := it.offset, it.index
	head := it.next(infinity)
	rest := append([]Op{head}, it.ops[it.index:]...)
	it.offset, it.index = offset, index
	return rest
}

// sliceRunes returns count code points of s starting at rune position
// start.
func sliceRunes(s string, start, count int) string {
	if start == 0 && count >= utf8.RuneCountInString(s) {
		return s
	}
	rs := []rune(s)
	end := start + count
	if end > len(rs) {
		end = len(rs)
	}
	return string(rs[start:end])
}

// runeIndex returns the rune position of the first occurrence of sub in
// s at or after rune position from, or -1.
func runeIndex(s, sub string, from int) int {
	rs := []rune(s)
	if from > len(rs) {
		return -1
	}
	tail := string(rs[from:])
	i := strings.Index(tail, sub)
	if i < 0 {
		return -1
	}
	return from + utf8.RuneCountInString(tail[:i])
}
