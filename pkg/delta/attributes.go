package delta

import "reflect"

// AttributeMap maps attribute names to arbitrary JSON-ish values and
// represents inline formatting such as {"bold": true}. A nil value has
// distinguished meaning: within composition it unsets the attribute.
//
// All four algebra functions below are pure; they never mutate their
// inputs and return nil for an empty result ("no attributes").
type AttributeMap map[string]interface{}

// ComposeAttributes merges two attribute maps as if a were applied
// first and b second. b's values win for shared keys. When keepNull is
// false, keys whose final value is nil are dropped from the result.
func ComposeAttributes(a, b AttributeMap, keepNull bool) AttributeMap {
	out := make(AttributeMap, len(a)+len(b))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range a {
		if _, ok := b[k]; !ok {
			out[k] = v
		}
	}
	if !keepNull {
		for k, v := range out {
			if v == nil {
				delete(out, k)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// InvertAttributes returns the attribute map that undoes attr against
// base: every key attr changed is restored to its base value (nil when
// base had no value), and base keys untouched by attr are restated.
func InvertAttributes(attr, base AttributeMap) AttributeMap {
	out := AttributeMap{}
	for k, bv := range base {
		if _, ok := attr[k]; !ok {
			out[k] = bv
		}
	}
	for k, v := range attr {
		bv, ok := base[k]
		if !ok {
			out[k] = nil
		} else if !reflect.DeepEqual(v, bv) {
			out[k] = bv
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DiffAttributes returns the attribute changes that turn a into b:
// keys whose values differ map to b's value, or nil when b lacks the
// key. Keys with equal values are omitted.
func DiffAttributes(a, b AttributeMap) AttributeMap {
	out := AttributeMap{}
	for k := range a {
		bv, ok := b[k]
		if !ok {
			out[k] = nil
		} else if !reflect.DeepEqual(a[k], bv) {
			out[k] = bv
		}
	}
	for k, bv := range b {
		if _, ok := a[k]; !ok {
			out[k] = bv
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TransformAttributes rewrites b against concurrent a. With priority,
// a wins conflicts and only b's keys absent from a survive; without
// priority b passes through unchanged.
func TransformAttributes(a, b AttributeMap, priority bool) AttributeMap {
	if len(a) == 0 {
		if len(b) == 0 {
			return nil
		}
		return b
	}
	if len(b) == 0 {
		return nil
	}
	if !priority {
		return b
	}
	out := AttributeMap{}
	for k, v := range b {
		if _, ok := a[k]; !ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// attrsEqual compares attribute maps, treating nil and empty as equal.
func attrsEqual(a, b AttributeMap) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
