package delta

// Compose returns a delta equivalent to applying this delta and then
// other. When both sides present matching embeds at the same position,
// the registered handler for their type combines the payloads; a
// missing handler or mismatched embed types is an error.
//
// Example:
//
//	a := delta.New().Insert("Hello", nil)
//	b := delta.New().Retain(5, delta.AttributeMap{"bold": true})
//	c, _ := a.Compose(b)
//	// c == [insert "Hello" {bold}]
func (d *Delta) Compose(other *Delta) (*Delta, error) {
	thisIter := newIterator(d.Ops)
	otherIter := newIterator(other.Ops)
	out := New()

	// A bare integer retain at the head of other covers a prefix of
	// this delta unchanged; whole inserts under it pass straight
	// through without re-normalization.
	if len(other.Ops) > 0 {
		if first, ok := other.Ops[0].(Retain); ok && first.Embed == nil && len(first.Attributes) == 0 {
			firstLeft := first.Count
			for thisIter.peekType() == KindInsert && thisIter.peekLength() <= firstLeft {
				firstLeft -= thisIter.peekLength()
				out.Ops = append(out.Ops, thisIter.next(infinity))
			}
			if first.Count-firstLeft > 0 {
				otherIter.next(first.Count - firstLeft)
			}
		}
	}

	for thisIter.hasNext() || otherIter.hasNext() {
		if otherIter.peekType() == KindInsert {
			out.Push(otherIter.next(infinity))
			continue
		}
		if thisIter.peekType() == KindDelete {
			out.Push(thisIter.next(infinity))
			continue
		}
		length := min(thisIter.peekLength(), otherIter.peekLength())
		thisOp := thisIter.next(length)
		otherOp := otherIter.next(length)

		switch otherOp := otherOp.(type) {
		case Retain:
			newOp, err := composePair(thisOp, otherOp, length)
			if err != nil {
				return nil, err
			}
			out.Push(newOp)

			// Once other is exhausted the rest of this delta passes
			// through untouched, provided the last pairing was a clean
			// carry-over (push did not merge it away).
			if !otherIter.hasNext() && len(out.Ops) > 0 && opEqual(out.Ops[len(out.Ops)-1], newOp) {
				rest := &Delta{Ops: thisIter.rest()}
				return out.Concat(rest).Chop(), nil
			}
		case Delete:
			// A delete over retained content survives; a delete over an
			// insert cancels with it and emits nothing.
			if _, ok := thisOp.(Retain); ok {
				out.Push(otherOp)
			}
		}
	}
	return out.Chop(), nil
}

// composePair combines one aligned op pair where the second side is a
// retain of the given length.
func composePair(thisOp Op, otherOp Retain, length int) (Op, error) {
	var newOp Op
	thisRetain, thisIsRetain := thisOp.(Retain)
	thisIsIntRetain := thisIsRetain && thisRetain.Embed == nil

	switch {
	case thisIsIntRetain:
		if otherOp.Embed == nil {
			newOp = Retain{Count: length}
		} else {
			newOp = Retain{Embed: otherOp.Embed}
		}
	case otherOp.Embed == nil:
		// An integer retain over an insert or embed retain passes this
		// op's content through unchanged; no handler is involved.
		if ins, ok := thisOp.(Insert); ok {
			newOp = Insert{Text: ins.Text, Embed: ins.Embed}
		} else {
			newOp = Retain{Embed: thisRetain.Embed}
		}
	default:
		// Both sides are embeds: route through the handler, keeping nil
		// markers only when this side is a retain still awaiting its
		// base.
		var thisEmbed Embed
		if ins, ok := thisOp.(Insert); ok {
			thisEmbed = ins.Embed
		} else {
			thisEmbed = thisRetain.Embed
		}
		embedType, thisData, otherData, err := embedTypeAndData(thisEmbed, otherOp.Embed)
		if err != nil {
			return nil, err
		}
		handler, err := getHandler(embedType)
		if err != nil {
			return nil, err
		}
		composed := Embed{embedType: handler.Compose(thisData, otherData, thisIsRetain)}
		if thisIsRetain {
			newOp = Retain{Embed: composed}
		} else {
			newOp = Insert{Embed: composed}
		}
	}

	attrs := ComposeAttributes(opAttributes(thisOp), otherOp.Attributes, thisIsIntRetain)
	return withAttributes(newOp, attrs), nil
}
