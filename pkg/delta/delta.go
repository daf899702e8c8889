// Package delta implements the quill-delta change format: an ordered
// sequence of insert, delete, and retain ops that describes either a
// rich-text document or a change to one, together with the algebra a
// real-time collaborative editor needs over such sequences: Compose,
// Invert, Diff, and Transform.
//
// A delta consisting only of inserts is a document. All algebra
// functions treat their inputs as immutable and return fresh deltas.
package delta

// Delta is a change script: a finite ordered op sequence. The zero
// value and New() are ready to use. The fluent builder methods mutate
// the receiver and return it for chaining; the algebra methods
// (Compose, Invert, Diff, Transform) never mutate their inputs.
//
// Push maintains the canonical form: no zero-length ops, adjacent
// mergeable ops merged, inserts ordered before adjacent deletes, and
// attributes stored only when non-empty.
type Delta struct {
	Ops []Op
}

// New creates a delta over the given ops. The ops are stored as given;
// use Push to append with normalization.
func New(ops ...Op) *Delta {
	return &Delta{Ops: ops}
}

// Insert appends a text insert. No-op when text is empty.
func (d *Delta) Insert(text string, attributes AttributeMap) *Delta {
	if text == "" {
		return d
	}
	return d.Push(Insert{Text: text, Attributes: attributes})
}

// InsertEmbed appends an embed insert. No-op when embed is empty.
func (d *Delta) InsertEmbed(embed Embed, attributes AttributeMap) *Delta {
	if len(embed) == 0 {
		return d
	}
	return d.Push(Insert{Embed: embed, Attributes: attributes})
}

// Delete appends a delete of n positions. No-op when n <= 0.
func (d *Delta) Delete(n int) *Delta {
	if n <= 0 {
		return d
	}
	return d.Push(Delete{Count: n})
}

// Retain appends an integer retain of n positions. No-op when n <= 0.
func (d *Delta) Retain(n int, attributes AttributeMap) *Delta {
	if n <= 0 {
		return d
	}
	return d.Push(Retain{Count: n, Attributes: attributes})
}

// RetainEmbed appends an embed retain targeting the single embedded
// object at the current position. No-op when embed is empty.
func (d *Delta) RetainEmbed(embed Embed, attributes AttributeMap) *Delta {
	if len(embed) == 0 {
		return d
	}
	return d.Push(Retain{Embed: embed, Attributes: attributes})
}

// Push appends newOp, normalizing as it goes. The op is deep-cloned so
// the caller keeps ownership of the value it passed in. Normalization:
//
//  1. adjacent deletes merge;
//  2. an insert landing right after a delete is spliced before it, so
//     inserts precede deletes among consecutive non-retain ops;
//  3. text inserts and integer retains merge with an equal-attribute
//     predecessor (embeds never merge);
//  4. empty attribute maps are dropped.
//
// Zero-length ops are the callers' concern; the fluent methods above
// already elide them.
func (d *Delta) Push(newOp Op) *Delta {
	op := cloneOp(newOp)
	index := len(d.Ops)
	var lastOp Op
	if index > 0 {
		lastOp = d.Ops[index-1]
	}

	if del, ok := op.(Delete); ok {
		if lastDel, ok := lastOp.(Delete); ok {
			d.Ops[index-1] = Delete{Count: lastDel.Count + del.Count}
			return d
		}
	}

	// Deletes standing before an insert are pushed back so the insert
	// keeps its canonical position.
	if _, ok := lastOp.(Delete); ok {
		if _, isInsert := op.(Insert); isInsert {
			index--
			if index == 0 {
				d.Ops = append([]Op{op}, d.Ops...)
				return d
			}
			lastOp = d.Ops[index-1]
		}
	}

	switch cur := op.(type) {
	case Insert:
		if last, ok := lastOp.(Insert); ok &&
			cur.Embed == nil && last.Embed == nil &&
			attrsEqual(cur.Attributes, last.Attributes) {
			d.Ops[index-1] = Insert{Text: last.Text + cur.Text, Attributes: last.Attributes}
			return d
		}
	case Retain:
		if last, ok := lastOp.(Retain); ok &&
			cur.Embed == nil && last.Embed == nil &&
			attrsEqual(cur.Attributes, last.Attributes) {
			d.Ops[index-1] = Retain{Count: last.Count + cur.Count, Attributes: last.Attributes}
			return d
		}
	}

	if index == len(d.Ops) {
		d.Ops = append(d.Ops, op)
	} else {
		d.Ops = append(d.Ops, nil)
		copy(d.Ops[index+1:], d.Ops[index:])
		d.Ops[index] = op
	}
	return d
}

// Chop removes a trailing bare integer retain, putting the delta into
// terminal canonical form.
func (d *Delta) Chop() *Delta {
	if len(d.Ops) > 0 {
		if last, ok := d.Ops[len(d.Ops)-1].(Retain); ok && last.Embed == nil && len(last.Attributes) == 0 {
			d.Ops = d.Ops[:len(d.Ops)-1]
		}
	}
	return d
}

// Length returns the total number of positions covered by the ops.
func (d *Delta) Length() int {
	total := 0
	for _, op := range d.Ops {
		total += op.Length()
	}
	return total
}

// ChangeLength returns the document length change this delta causes
// when applied: inserted positions minus deleted positions.
func (d *Delta) ChangeLength() int {
	total := 0
	for _, op := range d.Ops {
		switch op := op.(type) {
		case Insert:
			total += op.Length()
		case Delete:
			total -= op.Count
		}
	}
	return total
}

// Filter returns the ops for which predicate is true.
func (d *Delta) Filter(predicate func(op Op, index int) bool) []Op {
	var out []Op
	for i, op := range d.Ops {
		if predicate(op, i) {
			out = append(out, op)
		}
	}
	return out
}

// ForEach calls fn for each op in order.
func (d *Delta) ForEach(fn func(op Op, index int)) {
	for i, op := range d.Ops {
		fn(op, i)
	}
}

// Map returns fn applied to each op.
func (d *Delta) Map(fn func(op Op, index int) interface{}) []interface{} {
	out := make([]interface{}, len(d.Ops))
	for i, op := range d.Ops {
		out[i] = fn(op, i)
	}
	return out
}

// Partition splits the ops into those passing and failing predicate.
func (d *Delta) Partition(predicate func(op Op) bool) (passed, failed []Op) {
	for _, op := range d.Ops {
		if predicate(op) {
			passed = append(passed, op)
		} else {
			failed = append(failed, op)
		}
	}
	return passed, failed
}

// Reduce folds fn over the ops starting from initial.
func (d *Delta) Reduce(fn func(acc interface{}, op Op, index int) interface{}, initial interface{}) interface{} {
	acc := initial
	for i, op := range d.Ops {
		acc = fn(acc, op, i)
	}
	return acc
}

// Slice returns a new delta covering the position range [start, end).
func (d *Delta) Slice(start, end int) *Delta {
	out := New()
	iter := newIterator(d.Ops)
	index := 0
	for index < end && iter.hasNext() {
		var nextOp Op
		if index < start {
			nextOp = iter.next(start - index)
		} else {
			nextOp = iter.next(end - index)
			out.Push(nextOp)
		}
		index += nextOp.Length()
	}
	return out
}

// Concat returns a new delta equivalent to this delta followed by
// other. The seam is normalized: other's first op is pushed so it can
// merge with this delta's last op.
func (d *Delta) Concat(other *Delta) *Delta {
	out := &Delta{Ops: append([]Op(nil), d.Ops...)}
	if len(other.Ops) > 0 {
		out.Push(other.Ops[0])
		out.Ops = append(out.Ops, other.Ops[1:]...)
	}
	return out
}

// Equals reports deep structural equality with other.
func (d *Delta) Equals(other *Delta) bool {
	return OpsEqual(d.Ops, other.Ops)
}

// String returns a debug representation, e.g.
// "retain 5, insert 'Hello', delete 3".
func (d *Delta) String() string {
	s := ""
	for i, op := range d.Ops {
		if i > 0 {
			s += ", "
		}
		s += op.String()
	}
	return s
}

// EachLine calls fn once per line of a document, splitting on newline
// (which defaults to "\n" when empty). line holds the ops between
// separators; attributes are those of the separator insert itself,
// which is how block formats travel. fn returns false to stop early.
// Iteration stops at the first non-insert op. A trailing partial line
// is emitted with nil attributes.
func (d *Delta) EachLine(fn func(line *Delta, attributes AttributeMap, index int) bool, newline string) {
	if newline == "" {
		newline = "\n"
	}
	iter := newIterator(d.Ops)
	line := New()
	i := 0
	for iter.hasNext() {
		if iter.peekType() != KindInsert {
			return
		}
		thisOp := iter.peek()
		start := thisOp.Length() - iter.peekLength()
		index := -1
		if ins, ok := thisOp.(Insert); ok && ins.Embed == nil {
			if at := runeIndex(ins.Text, newline, start); at >= 0 {
				index = at - start
			}
		}
		if index < 0 {
			line.Push(iter.next(infinity))
		} else if index > 0 {
			line.Push(iter.next(index))
		} else {
			if !fn(line, opAttributes(iter.next(1)), i) {
				return
			}
			i++
			line = New()
		}
	}
	if line.Length() > 0 {
		fn(line, nil, i)
	}
}
