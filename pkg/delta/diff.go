package delta

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// embedPlaceholder stands in for an embed when a document is flattened
// to a string for the text differ. NUL cannot appear in real text
// inserts, so placeholder positions only ever match each other.
const embedPlaceholder = "\x00"

// Diff returns the delta that turns this document into other. Both
// receivers must be documents (insert-only deltas). cursor is an
// optional hint (-1 for none): the position in this document where the
// edit happened, used to resolve ambiguous diffs such as typing inside
// a run of identical characters.
func (d *Delta) Diff(other *Delta, cursor int) (*Delta, error) {
	out := New()
	if d == other {
		return out, nil
	}

	thisStr, err := documentString(d, "on")
	if err != nil {
		return nil, err
	}
	otherStr, err := documentString(other, "with")
	if err != nil {
		return nil, err
	}

	thisIter := newIterator(d.Ops)
	otherIter := newIterator(other.Ops)
	for _, component := range stringDiff(thisStr, otherStr, cursor) {
		length := utf8.RuneCountInString(component.Text)
		for length > 0 {
			opLength := 0
			switch component.Type {
			case diffmatchpatch.DiffInsert:
				opLength = min(otherIter.peekLength(), length)
				out.Push(otherIter.next(opLength))
			case diffmatchpatch.DiffDelete:
				opLength = min(length, thisIter.peekLength())
				thisIter.next(opLength)
				out.Delete(opLength)
			case diffmatchpatch.DiffEqual:
				opLength = min(min(thisIter.peekLength(), otherIter.peekLength()), length)
				thisOp := thisIter.next(opLength)
				otherOp := otherIter.next(opLength)
				if insertContentEqual(thisOp, otherOp) {
					out.Retain(opLength, DiffAttributes(opAttributes(thisOp), opAttributes(otherOp)))
				} else {
					// Two different embeds flattened to the same
					// placeholder: replace rather than retain.
					out.Push(otherOp)
					out.Delete(opLength)
				}
			}
			length -= opLength
		}
	}
	return out.Chop(), nil
}

// documentString flattens a document to text, with each embed becoming
// a single placeholder position.
func documentString(d *Delta, side string) (string, error) {
	var sb strings.Builder
	for _, op := range d.Ops {
		ins, ok := op.(Insert)
		if !ok {
			return "", fmt.Errorf("diff called %s non-document: %w", side, ErrNotADocument)
		}
		if ins.Embed != nil {
			sb.WriteString(embedPlaceholder)
		} else {
			sb.WriteString(ins.Text)
		}
	}
	return sb.String(), nil
}

// insertContentEqual reports whether two insert slices carry the same
// content, ignoring attributes.
func insertContentEqual(a, b Op) bool {
	x, ok := a.(Insert)
	if !ok {
		return false
	}
	y, ok := b.(Insert)
	if !ok {
		return false
	}
	if x.Embed != nil || y.Embed != nil {
		return opEqual(Insert{Embed: x.Embed}, Insert{Embed: y.Embed})
	}
	return x.Text == y.Text
}

// stringDiff runs the text differ. With a cursor hint it first tries
// the shortcut for a single contiguous insertion or deletion at the
// cursor, which both is cheaper and picks the edit boundary a user
// would expect; otherwise it falls back to the full diff.
func stringDiff(oldText, newText string, cursor int) []diffmatchpatch.Diff {
	if cursor >= 0 {
		if diffs, ok := cursorEditDiff(oldText, newText, cursor); ok {
			return diffs
		}
	}
	dmp := diffmatchpatch.New()
	return dmp.DiffMain(oldText, newText, false)
}

// cursorEditDiff detects the two unambiguous single-edit shapes around
// a cursor at rune position cursor in oldText: an insertion made at the
// cursor, or a deletion ending at the cursor.
func cursorEditDiff(oldText, newText string, cursor int) ([]diffmatchpatch.Diff, bool) {
	oldRunes := []rune(oldText)
	newRunes := []rune(newText)
	if cursor > len(oldRunes) {
		return nil, false
	}
	switch change := len(newRunes) - len(oldRunes); {
	case change > 0:
		// oldText = A + B split at the cursor; newText = A + X + B.
		if string(newRunes[:cursor]) == string(oldRunes[:cursor]) &&
			string(newRunes[cursor+change:]) == string(oldRunes[cursor:]) {
			return packDiffs(
				string(oldRunes[:cursor]),
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: string(newRunes[cursor : cursor+change])},
				string(oldRunes[cursor:]),
			), true
		}
	case change < 0:
		// oldText = A + X + B with X ending at the cursor; newText = A + B.
		start := cursor + change
		if start >= 0 &&
			string(oldRunes[:start]) == string(newRunes[:start]) &&
			string(oldRunes[cursor:]) == string(newRunes[start:]) {
			return packDiffs(
				string(oldRunes[:start]),
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: string(oldRunes[start:cursor])},
				string(oldRunes[cursor:]),
			), true
		}
	}
	return nil, false
}

func packDiffs(prefix string, edit diffmatchpatch.Diff, suffix string) []diffmatchpatch.Diff {
	diffs := make([]diffmatchpatch.Diff, 0, 3)
	if prefix != "" {
		diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: prefix})
	}
	diffs = append(diffs, edit)
	if suffix != "" {
		diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: suffix})
	}
	return diffs
}
