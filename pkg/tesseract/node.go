package tesseract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the JSON value variants a Node can hold.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a closed variant over the JSON value kinds. Objects remember key
// insertion order, which the flattener depends on: the generated UI lays out
// fields in the order the schema author declared them.
//
// Numbers are held as json.Number so integer defaults stay integral through
// the pipeline.
type Node struct {
	kind   Kind
	b      bool
	num    json.Number
	str    string
	items  []Node
	keys   []string
	fields map[string]Node
}

// Null returns the null node.
func Null() Node { return Node{kind: KindNull} }

// Bool returns a boolean node.
func Bool(v bool) Node { return Node{kind: KindBool, b: v} }

// Number returns a numeric node.
func Number(v json.Number) Node { return Node{kind: KindNumber, num: v} }

// NumberFromInt returns a numeric node holding an integer literal.
func NumberFromInt(v int64) Node {
	return Number(json.Number(fmt.Sprintf("%d", v)))
}

// String returns a string node.
func String(v string) Node { return Node{kind: KindString, str: v} }

// Array returns an array node over the given items.
func Array(items ...Node) Node {
	return Node{kind: KindArray, items: items}
}

// Object returns an empty object node. Keys keep insertion order.
func Object() Node {
	return Node{kind: KindObject, fields: map[string]Node{}}
}

// Kind reports the variant this node holds.
func (n Node) Kind() Kind { return n.kind }

// BoolValue returns the boolean payload. Zero value for other kinds.
func (n Node) BoolValue() bool { return n.b }

// NumberValue returns the numeric payload. Empty for other kinds.
func (n Node) NumberValue() json.Number { return n.num }

// StringValue returns the string payload. Empty for other kinds.
func (n Node) StringValue() string { return n.str }

// Len returns the number of items (arrays) or keys (objects).
func (n Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.items)
	case KindObject:
		return len(n.keys)
	}
	return 0
}

// Index returns the i-th array item. Panics when out of range or not an
// array, same as slice indexing would.
func (n Node) Index(i int) Node {
	if n.kind != KindArray {
		panic(fmt.Sprintf("tesseract: Index on %s node", n.kind))
	}
	return n.items[i]
}

// Get looks up an object key.
func (n Node) Get(key string) (Node, bool) {
	if n.kind != KindObject {
		return Node{}, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether the object carries the key.
func (n Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the object's keys in insertion order. The returned slice is
// shared; callers must not mutate it.
func (n Node) Keys() []string {
	return n.keys
}

// Set writes an object key. Existing keys keep their position; new keys are
// appended, mirroring how encoding/json would have seen them.
func (n *Node) Set(key string, value Node) {
	if n.kind != KindObject {
		panic(fmt.Sprintf("tesseract: Set on %s node", n.kind))
	}
	if n.fields == nil {
		n.fields = map[string]Node{}
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}

// Delete removes an object key, preserving the order of the rest.
func (n *Node) Delete(key string) {
	if n.kind != KindObject {
		return
	}
	if _, exists := n.fields[key]; !exists {
		return
	}
	delete(n.fields, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i:i], n.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy. Stages clone before mutating so the document a
// caller handed in is never written to.
func (n Node) Clone() Node {
	switch n.kind {
	case KindArray:
		items := make([]Node, len(n.items))
		for i, item := range n.items {
			items[i] = item.Clone()
		}
		return Node{kind: KindArray, items: items}
	case KindObject:
		out := Object()
		for _, k := range n.keys {
			out.Set(k, n.fields[k].Clone())
		}
		return out
	}
	return n
}

// Value converts the node into plain Go values: nil, bool, json.Number,
// string, []any, or map[string]any. Object key order is lost; use the Node
// API where order matters.
func (n Node) Value() any {
	switch n.kind {
	case KindNull:
		return nil
	case KindBool:
		return n.b
	case KindNumber:
		return n.num
	case KindString:
		return n.str
	case KindArray:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Value()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			out[k] = n.fields[k].Value()
		}
		return out
	}
	return nil
}

// DecodeNode parses raw JSON into a Node, preserving object key order via a
// token walk instead of map decoding.
func DecodeNode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeValue(dec)
	if err != nil {
		return Node{}, fmt.Errorf("tesseract: decode document: %w", err)
	}
	if dec.More() {
		return Node{}, fmt.Errorf("tesseract: decode document: trailing data after top-level value")
	}
	return node, nil
}

func decodeValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return Node{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Node{}, fmt.Errorf("unexpected delimiter %q", t)
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	}
	return Node{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Node, error) {
	out := Object()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Node{}, fmt.Errorf("object key is %v, want string", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return Node{}, err
	}
	return out, nil
}

func decodeArray(dec *json.Decoder) (Node, error) {
	var items []Node
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Node{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return Node{}, err
	}
	return Array(items...), nil
}
