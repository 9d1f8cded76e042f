// Package doc decodes JSON or YAML text into an ordered document tree.
//
// Unlike map[string]any, an Object keeps its keys in declaration order, which
// the schema importer relies on to number structural properties.
package doc

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Kind enumerates node kinds.
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
	return [...]string{"null", "bool", "number", "string", "array", "object"}[k]
}

// Node is a decoded value. A nil *Node behaves like an absent value for all
// accessors.
type Node struct {
	Kind Kind
	text string // string value or number literal
	b    bool
	arr  []*Node
	obj  *Object
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value *Node
}

// Object is an insertion-ordered map.
type Object struct {
	members []Member
	index   map[string]int
}

func newObject() *Object { return &Object{index: make(map[string]int)} }

func (o *Object) has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// set stores v under key. A repeated key replaces the value but keeps the
// position of its first occurrence.
func (o *Object) set(key string, v *Node) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Constructors, mostly for tests.

func String(s string) *Node   { return &Node{Kind: KindString, text: s} }
func Number(lit string) *Node { return &Node{Kind: KindNumber, text: lit} }
func Bool(b bool) *Node       { return &Node{Kind: KindBool, b: b} }
func Null() *Node             { return &Node{Kind: KindNull} }
func Array(items ...*Node) *Node {
	return &Node{Kind: KindArray, arr: items}
}

// ObjectOf builds an object node from alternating key/value arguments.
func ObjectOf(kv ...any) *Node {
	o := newObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.set(kv[i].(string), kv[i+1].(*Node))
	}
	return &Node{Kind: KindObject, obj: o}
}

func (n *Node) IsObject() bool { return n != nil && n.Kind == KindObject }
func (n *Node) IsArray() bool  { return n != nil && n.Kind == KindArray }

// Get returns the member named key, or nil.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	if i, ok := n.obj.index[key]; ok {
		return n.obj.members[i].Value
	}
	return nil
}

// Has reports whether the object declares key.
func (n *Node) Has(key string) bool {
	if !n.IsObject() {
		return false
	}
	_, ok := n.obj.index[key]
	return ok
}

// Path follows keys through nested objects.
func (n *Node) Path(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
	}
	return cur
}

// Members returns the object members in declaration order.
func (n *Node) Members() []Member {
	if !n.IsObject() {
		return nil
	}
	return n.obj.members
}

// Items returns the array elements.
func (n *Node) Items() []*Node {
	if !n.IsArray() {
		return nil
	}
	return n.arr
}

// Len returns the number of array items or object members.
func (n *Node) Len() int {
	switch {
	case n.IsArray():
		return len(n.arr)
	case n.IsObject():
		return len(n.obj.members)
	}
	return 0
}

// Str returns the text of a string or number node, and "" otherwise.
func (n *Node) Str() string {
	if n == nil || (n.Kind != KindString && n.Kind != KindNumber) {
		return ""
	}
	return n.text
}

// Int returns the integer value of a number node, or of a string holding one.
func (n *Node) Int() (int, bool) {
	if n == nil || (n.Kind != KindNumber && n.Kind != KindString) {
		return 0, false
	}
	s := strings.TrimSpace(n.text)
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	if n.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// BoolValue returns the value of a bool node.
func (n *Node) BoolValue() (bool, bool) {
	if n == nil || n.Kind != KindBool {
		return false, false
	}
	return n.b, true
}

// Strings returns the string items of an array node, skipping non-strings.
func (n *Node) Strings() []string {
	var out []string
	for _, it := range n.Items() {
		if it.Kind == KindString {
			out = append(out, it.text)
		}
	}
	return out
}

// MarshalJSON encodes the node preserving member order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf []byte
	return n.appendJSON(buf)
}

func (n *Node) appendJSON(buf []byte) ([]byte, error) {
	switch n.Kind {
	case KindBool:
		return strconv.AppendBool(buf, n.b), nil
	case KindNumber:
		return append(buf, n.text...), nil
	case KindString:
		b, err := json.Marshal(n.text)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil
	case KindArray:
		buf = append(buf, '[')
		for i, it := range n.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = it.appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case KindObject:
		buf = append(buf, '{')
		for i, m := range n.obj.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return nil, err
			}
			buf = append(append(buf, k...), ':')
			if buf, err = m.Value.appendJSON(buf); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	default:
		return append(buf, "null"...), nil
	}
}

// Decode stores the node into v using JSON struct decoding rules (including
// case-insensitive field matching).
func (n *Node) Decode(v any) error {
	b, err := n.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
