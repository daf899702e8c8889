package delta

import "fmt"

// Invert returns the delta that undoes this delta against the document
// it was applied to: base.Compose(d) followed by the result yields base
// again. base must be the document state from before this delta.
func (d *Delta) Invert(base *Delta) (*Delta, error) {
	inverted := New()
	baseIndex := 0

	for _, op := range d.Ops {
		switch op := op.(type) {
		case Insert:
			inverted.Delete(op.Length())

		case Delete:
			// Restore whatever the delete removed.
			slice := base.Slice(baseIndex, baseIndex+op.Count)
			for _, baseOp := range slice.Ops {
				inverted.Push(baseOp)
			}
			baseIndex += op.Count

		case Retain:
			switch {
			case op.Embed != nil:
				slice := base.Slice(baseIndex, baseIndex+1)
				if len(slice.Ops) == 0 {
					return nil, fmt.Errorf("%w: no base op at position %d", ErrCannotRetainNonObject, baseIndex)
				}
				baseOp := slice.Ops[0]
				var baseEmbed Embed
				if ins, ok := baseOp.(Insert); ok {
					baseEmbed = ins.Embed
				}
				embedType, opData, baseData, err := embedTypeAndData(op.Embed, baseEmbed)
				if err != nil {
					return nil, err
				}
				handler, err := getHandler(embedType)
				if err != nil {
					return nil, err
				}
				inverted.Push(Retain{
					Embed:      Embed{embedType: handler.Invert(opData, baseData)},
					Attributes: InvertAttributes(op.Attributes, opAttributes(baseOp)),
				})
				baseIndex++

			case len(op.Attributes) == 0:
				inverted.Retain(op.Count, nil)
				baseIndex += op.Count

			default:
				// Reformatting retain: undo the attribute change against
				// each base op it covered.
				slice := base.Slice(baseIndex, baseIndex+op.Count)
				for _, baseOp := range slice.Ops {
					inverted.Push(Retain{
						Count:      baseOp.Length(),
						Attributes: InvertAttributes(op.Attributes, opAttributes(baseOp)),
					})
				}
				baseIndex += op.Count
			}
		}
	}
	return inverted.Chop(), nil
}
