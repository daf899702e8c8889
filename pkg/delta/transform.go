package delta

// Transform rewrites concurrent delta other so it can be applied after
// this delta while preserving its intent: given two deltas made against
// the same base, base.Compose(d).Compose(d.Transform(other, true))
// converges with the symmetric application order.
//
// priority breaks ties when both sides insert at the same position:
// with priority, this delta counts as earlier and its inserts push
// other's to the right.
//
// Example:
//
//	a := delta.New().Insert("A", nil)
//	b := delta.New().Insert("B", nil)
//	a.Transform(b, true)  // [retain 1, insert "B"]
//	a.Transform(b, false) // [insert "B"]
func (d *Delta) Transform(other *Delta, priority bool) *Delta {
	thisIter := newIterator(d.Ops)
	otherIter := newIterator(other.Ops)
	out := New()

	for thisIter.hasNext() || otherIter.hasNext() {
		if thisIter.peekType() == KindInsert && (priority || otherIter.peekType() != KindInsert) {
			// Content this side inserted; other must skip over it.
			out.Retain(thisIter.next(infinity).Length(), nil)
			continue
		}
		if otherIter.peekType() == KindInsert {
			out.Push(otherIter.next(infinity))
			continue
		}

		length := min(thisIter.peekLength(), otherIter.peekLength())
		thisOp := thisIter.next(length)
		otherOp := otherIter.next(length)

		if _, ok := thisOp.(Delete); ok {
			// Our delete already removed what other touched here.
			continue
		}
		if del, ok := otherOp.(Delete); ok {
			out.Push(del)
			continue
		}

		// Both sides retain.
		thisRetain, _ := thisOp.(Retain)
		otherRetain, _ := otherOp.(Retain)
		newOp := Retain{Count: length}
		if otherRetain.Embed != nil {
			newOp = Retain{Embed: otherRetain.Embed}
			if thisRetain.Embed != nil {
				thisType, thisOK := thisRetain.Embed.TypeName()
				otherType, otherOK := otherRetain.Embed.TypeName()
				if thisOK && otherOK && thisType == otherType {
					if handler := peekHandler(thisType); handler != nil {
						newOp = Retain{Embed: Embed{
							thisType: handler.Transform(thisRetain.Embed[thisType], otherRetain.Embed[otherType], priority),
						}}
					}
				}
			}
		}
		newOp.Attributes = TransformAttributes(opAttributes(thisOp), opAttributes(otherOp), priority)
		out.Push(newOp)
	}
	return out.Chop()
}

// TransformPosition maps a position in the base document through this
// delta. Deletes before the position pull it left; inserts push it
// right, except that with priority an insert exactly at the position
// stays behind it.
func (d *Delta) TransformPosition(position int, priority bool) int {
	iter := newIterator(d.Ops)
	offset := 0
	for iter.hasNext() && offset <= position {
		length := iter.peekLength()
		kind := iter.peekType()
		iter.next(infinity)
		switch kind {
		case KindDelete:
			position -= min(length, position-offset)
		case KindInsert:
			if offset < position || !priority {
				position += length
			}
		}
		// offset tracks base-document positions and advances by the
		// full op length for every kind, deletes included.
		offset += length
	}
	return position
}
