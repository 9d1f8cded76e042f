package openedi

import (
	"strings"

	"github.com/reoring/edispec/internal/doc"
)

// Marker attributes carried by OpenEDI schema definitions.
const (
	MarkerMessage = "x-openedi-message-id"
	MarkerLoop    = "x-openedi-loop-id"
	MarkerSegment = "x-openedi-segment-id"
)

// Kind classifies a resolved definition.
type Kind int

const (
	// KindOpaque is a plain data shape such as an enumeration holder.
	KindOpaque Kind = iota
	KindLoop
	KindSegment
)

func (k Kind) String() string {
	switch k {
	case KindLoop:
		return "loop"
	case KindSegment:
		return "segment"
	default:
		return "opaque"
	}
}

// Definition is a named schema definition and its structural classification.
type Definition struct {
	Name string
	Node *doc.Node
	Kind Kind
	// Marker is the loop or segment identifier for KindLoop and KindSegment.
	Marker string
}

// Resolver looks up definitions in a components.schemas mapping. It is bound
// to a single document.
type Resolver struct {
	schemas *doc.Node
}

// NewResolver returns a Resolver over schemas.
func NewResolver(schemas *doc.Node) *Resolver { return &Resolver{schemas: schemas} }

var refPrefixes = []string{"#/components/schemas/", "#/definitions/", "#/$defs/"}

// DefinitionName extracts the definition name from a local reference. Bare
// names are returned unchanged; other references yield "".
func DefinitionName(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	for _, p := range refPrefixes {
		if strings.HasPrefix(ref, p) {
			return unescapePointer(strings.TrimPrefix(ref, p))
		}
	}
	if strings.ContainsAny(ref, "#/") {
		return ""
	}
	return ref
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// Resolve returns the definition that ref points at.
func (r *Resolver) Resolve(ref string) (Definition, bool) {
	name := DefinitionName(ref)
	if name == "" {
		return Definition{}, false
	}
	n := r.schemas.Get(name)
	if !n.IsObject() {
		return Definition{}, false
	}
	kind, marker := Classify(n)
	return Definition{Name: name, Node: n, Kind: kind, Marker: marker}, true
}

// Classify inspects the marker attributes of a definition. The loop marker
// wins if both are present.
func Classify(n *doc.Node) (Kind, string) {
	if n.Has(MarkerLoop) {
		return KindLoop, n.Get(MarkerLoop).Str()
	}
	if n.Has(MarkerSegment) {
		return KindSegment, n.Get(MarkerSegment).Str()
	}
	return KindOpaque, ""
}

// FindMessage returns the first definition carrying the message marker,
// together with its transaction-set code.
func (r *Resolver) FindMessage() (Definition, string, bool) {
	for _, m := range r.schemas.Members() {
		if !m.Value.Has(MarkerMessage) {
			continue
		}
		kind, marker := Classify(m.Value)
		return Definition{Name: m.Key, Node: m.Value, Kind: kind, Marker: marker}, strings.TrimSpace(m.Value.Get(MarkerMessage).Str()), true
	}
	return Definition{}, "", false
}
