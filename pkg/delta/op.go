package delta

import (
	"fmt"
	"reflect"
	"unicode/utf8"
)

// OpKind identifies the variant of an Op.
type OpKind int

const (
	// KindInsert adds new content at the current position.
	KindInsert OpKind = iota
	// KindDelete removes positions from the document.
	KindDelete
	// KindRetain advances over positions, optionally reformatting them.
	KindRetain
)

// Embed is a structured non-text value occupying a single document
// position. It must have exactly one top-level key, which names the
// embed type, e.g. Embed{"image": map[string]interface{}{"src": "a.png"}}.
type Embed map[string]interface{}

// TypeName returns the embed type (the single top-level key). ok is
// false when the map does not have exactly one key.
func (e Embed) TypeName() (name string, ok bool) {
	if len(e) != 1 {
		return "", false
	}
	for k := range e {
		return k, true
	}
	return "", false
}

// Op is a single atomic edit: an Insert, a Delete, or a Retain.
//
// Ops are plain values; the algebra never mutates an op it was handed
// and deep-clones ops on their way into a Delta (see Delta.Push), so a
// caller may freely reuse the value it passed in.
type Op interface {
	// Kind reports the variant.
	Kind() OpKind
	// Length returns the number of document positions the op covers:
	// the code point count for a text insert, 1 for an embed insert or
	// embed retain, and the count for a delete or integer retain.
	Length() int
	// String returns a debug representation.
	String() string
}

// Insert adds content at the current position. Exactly one of Text and
// Embed is set: a non-empty text run, or a one-key embed object.
type Insert struct {
	Text       string
	Embed      Embed
	Attributes AttributeMap
}

// Kind returns KindInsert.
func (o Insert) Kind() OpKind { return KindInsert }

// Length returns the code point count of the text, or 1 for an embed.
func (o Insert) Length() int {
	if o.Embed != nil {
		return 1
	}
	return utf8.RuneCountInString(o.Text)
}

// String returns a debug representation.
func (o Insert) String() string {
	if o.Embed != nil {
		name, _ := o.Embed.TypeName()
		return fmt.Sprintf("insert {%s}", name)
	}
	return fmt.Sprintf("insert '%s'", o.Text)
}

// Delete removes Count positions at the current position.
type Delete struct {
	Count int
}

// Kind returns KindDelete.
func (o Delete) Kind() OpKind { return KindDelete }

// Length returns the number of positions deleted.
func (o Delete) Length() int { return o.Count }

// String returns a debug representation.
func (o Delete) String() string { return fmt.Sprintf("delete %d", o.Count) }

// Retain advances over document positions without removing them.
// Exactly one of Count and Embed is set: an integer retain skips Count
// positions (reformatting them when Attributes is set); an embed retain
// targets the single embedded object at the current position with an
// update payload interpreted by the registered embed handler.
type Retain struct {
	Count      int
	Embed      Embed
	Attributes AttributeMap
}

// Kind returns KindRetain.
func (o Retain) Kind() OpKind { return KindRetain }

// Length returns the retained count, or 1 for an embed retain.
func (o Retain) Length() int {
	if o.Embed != nil {
		return 1
	}
	return o.Count
}

// String returns a debug representation.
func (o Retain) String() string {
	if o.Embed != nil {
		name, _ := o.Embed.TypeName()
		return fmt.Sprintf("retain {%s}", name)
	}
	return fmt.Sprintf("retain %d", o.Count)
}

// OpsEqual reports deep structural equality of two op sequences.
// Attribute maps compare order-insensitively; nil and empty attribute
// maps are considered equal.
func OpsEqual(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !opEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func opEqual(a, b Op) bool {
	switch x := a.(type) {
	case Insert:
		y, ok := b.(Insert)
		return ok && x.Text == y.Text &&
			reflect.DeepEqual(x.Embed, y.Embed) &&
			attrsEqual(x.Attributes, y.Attributes)
	case Delete:
		y, ok := b.(Delete)
		return ok && x.Count == y.Count
	case Retain:
		y, ok := b.(Retain)
		return ok && x.Count == y.Count &&
			reflect.DeepEqual(x.Embed, y.Embed) &&
			attrsEqual(x.Attributes, y.Attributes)
	}
	return false
}

// opAttributes returns the attribute map carried by op, or nil for
// deletes (which never carry attributes).
func opAttributes(op Op) AttributeMap {
	switch op := op.(type) {
	case Insert:
		return op.Attributes
	case Retain:
		return op.Attributes
	}
	return nil
}

// withAttributes returns op with its attribute map replaced.
func withAttributes(op Op, attrs AttributeMap) Op {
	switch op := op.(type) {
	case Insert:
		op.Attributes = attrs
		return op
	case Retain:
		op.Attributes = attrs
		return op
	}
	return op
}

// cloneOp returns a structural copy of op, including its attribute map
// and any embed payload.
func cloneOp(op Op) Op {
	switch op := op.(type) {
	case Insert:
		return Insert{Text: op.Text, Embed: cloneEmbed(op.Embed), Attributes: cloneAttributes(op.Attributes)}
	case Retain:
		return Retain{Count: op.Count, Embed: cloneEmbed(op.Embed), Attributes: cloneAttributes(op.Attributes)}
	}
	return op
}

func cloneEmbed(e Embed) Embed {
	if e == nil {
		return nil
	}
	out := make(Embed, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneAttributes(a AttributeMap) AttributeMap {
	if len(a) == 0 {
		return nil
	}
	out := make(AttributeMap, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies JSON-ish values: maps and slices are copied
// recursively, scalars are returned as-is.
func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case Embed:
		return cloneEmbed(v)
	case AttributeMap:
		return cloneAttributes(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
