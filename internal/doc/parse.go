package doc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth bounds container nesting.
const DefaultMaxDepth = 512

var (
	// ErrEmpty is returned for input without any value.
	ErrEmpty = errors.New("doc: empty input")
	// ErrMaxDepth is returned when nesting exceeds the configured depth.
	ErrMaxDepth = errors.New("doc: max depth exceeded")
)

// Options controls decoding.
type Options struct {
	// MaxDepth limits nesting of arrays and objects; 0 means DefaultMaxDepth.
	MaxDepth int
	// OnDuplicate, when set, is called for every repeated object key. The
	// last value wins either way.
	OnDuplicate func(key string)
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Parse decodes JSON or YAML text. Input whose first significant byte is '{'
// or '[' is JSON; anything else is YAML.
func Parse(data []byte, opts Options) (*Node, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.OnDuplicate == nil {
		opts.OnDuplicate = func(string) {}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return parseJSON(trimmed, opts)
	}
	return parseYAML(data, opts)
}

// ---- JSON ----

type jsonDecoder struct {
	dec      *json.Decoder
	depth    int
	maxDepth int
	onDup    func(string)
}

func parseJSON(data []byte, opts Options) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, maxDepth: opts.MaxDepth, onDup: opts.OnDuplicate}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("doc: invalid JSON: %w", err)
	}
	n, err := d.value(tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, errors.New("doc: invalid JSON: unexpected data after top-level value")
		}
		return nil, fmt.Errorf("doc: invalid JSON: %w", err)
	}
	return n, nil
}

func (d *jsonDecoder) next() (any, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("doc: invalid JSON: %w", err)
	}
	return tok, nil
}

func (d *jsonDecoder) value(tok any) (*Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		}
		return nil, fmt.Errorf("doc: invalid JSON: unexpected %q", rune(v))
	case string:
		return String(v), nil
	case json.Number:
		return Number(string(v)), nil
	case float64:
		return Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("doc: invalid JSON: unexpected token %v", tok)
}

func (d *jsonDecoder) enter() error {
	d.depth++
	if d.depth > d.maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (d *jsonDecoder) object() (*Node, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	o := newObject()
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return &Node{Kind: KindObject, obj: o}, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("doc: invalid JSON: expected object key, got %v", tok)
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt)
		if err != nil {
			return nil, err
		}
		if o.has(key) {
			d.onDup(key)
		}
		o.set(key, v)
	}
}

func (d *jsonDecoder) array() (*Node, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	items := []*Node{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return &Node{Kind: KindArray, arr: items}, nil
		}
		v, err := d.value(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

// ---- YAML ----

type yamlDecoder struct {
	maxDepth int
	onDup    func(string)
}

func parseYAML(data []byte, opts Options) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("doc: invalid YAML: %w", err)
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, ErrEmpty
	}
	d := &yamlDecoder{maxDepth: opts.MaxDepth, onDup: opts.OnDuplicate}
	return d.node(&root, 0)
}

func (d *yamlDecoder) node(y *yaml.Node, depth int) (*Node, error) {
	if depth > d.maxDepth {
		return nil, ErrMaxDepth
	}
	switch y.Kind {
	case yaml.DocumentNode:
		return d.node(y.Content[0], depth)
	case yaml.AliasNode:
		return d.node(y.Alias, depth+1)
	case yaml.MappingNode:
		o := newObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("doc: invalid YAML: non-scalar key at line %d", k.Line)
			}
			v, err := d.node(y.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			if o.has(k.Value) {
				d.onDup(k.Value)
			}
			o.set(k.Value, v)
		}
		return &Node{Kind: KindObject, obj: o}, nil
	case yaml.SequenceNode:
		items := make([]*Node, 0, len(y.Content))
		for _, c := range y.Content {
			v, err := d.node(c, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return &Node{Kind: KindArray, arr: items}, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(y)
	}
	return nil, fmt.Errorf("doc: invalid YAML: unsupported node kind %d", y.Kind)
}

func fromYAMLScalar(y *yaml.Node) (*Node, error) {
	switch y.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("doc: invalid YAML: %w", err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		// The literal is kept: X12 codes such as 005010 must not lose their
		// leading zeros. Forms JSON cannot carry stay strings.
		if jsonNumber.MatchString(y.Value) {
			return Number(y.Value), nil
		}
		return String(y.Value), nil
	default:
		return String(y.Value), nil
	}
}
