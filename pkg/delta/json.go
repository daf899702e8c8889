package delta

import (
	"encoding/json"
	"fmt"
)

// The wire form of a delta is the canonical quill-delta JSON: an array
// of one-key objects, e.g.
//
//	[{"insert":"Hello","attributes":{"bold":true}},{"retain":2},{"delete":1}]
//
// insert is a string or a one-key embed object; retain is a positive
// integer or a one-key embed object; delete is a positive integer.

// MarshalJSON encodes the delta as its op array. A delta with no ops
// encodes as [].
func (d *Delta) MarshalJSON() ([]byte, error) {
	if len(d.Ops) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Ops)
}

// UnmarshalJSON decodes an op array, validating each op's shape.
func (d *Delta) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ops := make([]Op, 0, len(raw))
	for _, r := range raw {
		op, err := decodeOp(r)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	d.Ops = ops
	return nil
}

// MarshalJSON encodes an insert as {"insert": text-or-embed}.
func (o Insert) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, 2)
	if o.Embed != nil {
		m["insert"] = o.Embed
	} else {
		m["insert"] = o.Text
	}
	if len(o.Attributes) > 0 {
		m["attributes"] = o.Attributes
	}
	return json.Marshal(m)
}

// MarshalJSON encodes a delete as {"delete": n}.
func (o Delete) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"delete": o.Count})
}

// MarshalJSON encodes a retain as {"retain": count-or-embed}.
func (o Retain) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, 2)
	if o.Embed != nil {
		m["retain"] = o.Embed
	} else {
		m["retain"] = o.Count
	}
	if len(o.Attributes) > 0 {
		m["attributes"] = o.Attributes
	}
	return json.Marshal(m)
}

func decodeOp(data []byte) (Op, error) {
	var raw struct {
		Insert     json.RawMessage `json:"insert"`
		Delete     *int            `json:"delete"`
		Retain     json.RawMessage `json:"retain"`
		Attributes AttributeMap    `json:"attributes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	set := 0
	if raw.Insert != nil {
		set++
	}
	if raw.Delete != nil {
		set++
	}
	if raw.Retain != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOp, data)
	}

	switch {
	case raw.Insert != nil:
		var text string
		if err := json.Unmarshal(raw.Insert, &text); err == nil {
			if text == "" {
				return nil, fmt.Errorf("%w: empty insert", ErrInvalidOp)
			}
			return Insert{Text: text, Attributes: raw.Attributes}, nil
		}
		embed, err := decodeEmbed(raw.Insert)
		if err != nil {
			return nil, err
		}
		return Insert{Embed: embed, Attributes: raw.Attributes}, nil

	case raw.Delete != nil:
		if *raw.Delete <= 0 {
			return nil, fmt.Errorf("%w: delete %d", ErrInvalidOp, *raw.Delete)
		}
		return Delete{Count: *raw.Delete}, nil

	default:
		var count int
		if err := json.Unmarshal(raw.Retain, &count); err == nil {
			if count <= 0 {
				return nil, fmt.Errorf("%w: retain %d", ErrInvalidOp, count)
			}
			return Retain{Count: count, Attributes: raw.Attributes}, nil
		}
		embed, err := decodeEmbed(raw.Retain)
		if err != nil {
			return nil, err
		}
		return Retain{Embed: embed, Attributes: raw.Attributes}, nil
	}
}

func decodeEmbed(data []byte) (Embed, error) {
	var embed Embed
	if err := json.Unmarshal(data, &embed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCannotRetainNonObject, data)
	}
	if _, ok := embed.TypeName(); !ok {
		return nil, fmt.Errorf("%w: embed must have exactly one key: %s", ErrCannotRetainNonObject, data)
	}
	return embed, nil
}
