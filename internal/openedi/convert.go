// Package openedi converts OpenAPI documents that describe X12 transaction
// sets with x-openedi-* markers into the canonical model.
package openedi

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/reoring/edispec/internal/doc"
	"github.com/reoring/edispec/internal/util/strutil"
	"github.com/reoring/edispec/model"
	"github.com/reoring/edispec/templates"
)

// ReservedProperty is bookkeeping emitted by schema generators; it never
// describes a loop, segment or element.
const ReservedProperty = "Model"

// ErrNoMessage is returned when no definition carries MarkerMessage.
var ErrNoMessage = errors.New("openedi: no definition carries " + MarkerMessage)

// Options supplies collaborators for one conversion.
type Options struct {
	IDs    model.IDGenerator
	Now    func() time.Time
	Logger *slog.Logger
	// Warnf receives non-fatal findings such as unresolvable references.
	Warnf func(format string, args ...any)
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = model.NewID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	return o
}

// IsOpenEDI reports whether root looks like an OpenAPI document with
// components.
func IsOpenEDI(root *doc.Node) bool {
	return root.Has("openapi") && root.Has("components")
}

// Convert builds a Specification from an OpenAPI document.
func Convert(root *doc.Node, opts Options) (*model.Specification, error) {
	opts = opts.withDefaults()
	res := NewResolver(root.Path("components", "schemas"))
	msg, code, ok := res.FindMessage()
	if !ok {
		return nil, ErrNoMessage
	}
	opts.Logger.Debug("openedi: transaction set root", "definition", msg.Name, "code", code)

	b := &builder{
		res:    res,
		ids:    opts.IDs,
		log:    opts.Logger,
		warnf:  opts.Warnf,
		active: map[string]bool{msg.Name: true},
	}
	segs, loops := b.level(msg.Name, msg.Node)

	tsName := "Transaction Set " + code
	var tsDesc string
	if t, ok := templates.Lookup(code); ok {
		tsName, tsDesc = t.Name, t.Description
	}
	top := &model.Loop{
		ID:          b.ids(),
		Name:        "TS" + code,
		Description: tsName,
		Usage:       model.Mandatory,
		MinUse:      1,
		MaxUse:      1,
		Segments:    segs,
		Loops:       loops,
	}
	top.SnapshotBase()

	now := opts.Now()
	return &model.Specification{
		ID: b.ids(),
		Metadata: model.Metadata{
			Name:               templates.Label(code),
			Description:        tsDesc,
			Version:            "1.0",
			TransactionSet:     code,
			TransactionSetName: tsName,
			EDIVersion:         model.DefaultEDIVersion,
			CreatedDate:        now,
			ModifiedDate:       now,
			BaseSpec:           "openedi:" + code,
		},
		Loops:    []*model.Loop{top},
		Examples: []model.Example{},
	}, nil
}

type builder struct {
	res   *Resolver
	ids   model.IDGenerator
	log   *slog.Logger
	warnf func(string, ...any)
	// active holds the loop definitions on the current recursion path.
	active map[string]bool
}

// level converts the structural properties of a message or loop definition.
// Segments and loops share one order counter so their declaration order can
// be rebuilt.
func (b *builder) level(owner string, def *doc.Node) ([]*model.Segment, []*model.Loop) {
	required := stringSet(def.Get("required").Strings())
	segs := []*model.Segment{}
	loops := []*model.Loop{}
	order := 0
	for _, m := range def.Get("properties").Members() {
		if m.Key == ReservedProperty {
			continue
		}
		ref, maxUse := structuralRef(m.Value)
		if ref == "" {
			continue
		}
		target, ok := b.res.Resolve(ref)
		if !ok {
			b.warnf("%s.%s: unresolvable reference %q dropped", owner, m.Key, ref)
			b.log.Debug("openedi: unresolvable reference", "owner", owner, "property", m.Key, "ref", ref)
			continue
		}
		switch target.Kind {
		case KindLoop:
			if b.active[target.Name] {
				b.warnf("%s.%s: cyclic reference to %s skipped", owner, m.Key, target.Name)
				continue
			}
			l := b.loop(m.Key, target, maxUse, required[m.Key])
			l.Order = intPtr(order)
			loops = append(loops, l)
			order++
		case KindSegment:
			s := b.segment(m.Key, target, maxUse, required[m.Key])
			s.Order = intPtr(order)
			segs = append(segs, s)
			order++
		}
	}
	return segs, loops
}

// structuralRef returns the reference a property points at and the maximum
// occurrence it allows.
func structuralRef(prop *doc.Node) (string, int) {
	if prop.Get("type").Str() == "array" {
		maxUse := model.Unbounded
		if n, ok := prop.Get("maxItems").Int(); ok && n > 0 && n < model.Unbounded {
			maxUse = n
		}
		items := prop.Get("items")
		ref := items.Get("$ref").Str()
		if ref == "" {
			ref = firstAllOfRef(items)
		}
		return ref, maxUse
	}
	if ref := prop.Get("$ref").Str(); ref != "" {
		return ref, 1
	}
	return firstAllOfRef(prop), 1
}

func firstAllOfRef(n *doc.Node) string {
	for _, it := range n.Get("allOf").Items() {
		if ref := it.Get("$ref").Str(); ref != "" {
			return ref
		}
	}
	return ""
}

func (b *builder) loop(key string, def Definition, maxUse int, required bool) *model.Loop {
	b.active[def.Name] = true
	defer delete(b.active, def.Name)

	usage := usageFor(required)
	segs, loops := b.level(def.Name, def.Node)
	l := &model.Loop{
		ID:          b.ids(),
		Name:        strutil.FirstNonEmpty(def.Marker, def.Name),
		Description: describe(def, key),
		Usage:       usage,
		MinUse:      usage.MinUse(),
		MaxUse:      maxUse,
		Segments:    segs,
		Loops:       loops,
	}
	l.SnapshotBase()
	return l
}

func (b *builder) segment(key string, def Definition, maxUse int, required bool) *model.Segment {
	usage := usageFor(required)
	s := &model.Segment{
		ID:          b.ids(),
		Name:        strutil.FirstNonEmpty(def.Marker, def.Name),
		Description: describe(def, key),
		Usage:       usage,
		MinUse:      usage.MinUse(),
		MaxUse:      maxUse,
		Elements:    []*model.Element{},
	}
	elRequired := stringSet(def.Node.Get("required").Strings())
	for _, m := range def.Node.Get("properties").Members() {
		if m.Key == ReservedProperty {
			continue
		}
		s.Elements = append(s.Elements, b.element(def.Name, m.Key, m.Value, elRequired[m.Key]))
	}
	sort.SliceStable(s.Elements, func(i, j int) bool { return s.Elements[i].Position < s.Elements[j].Position })
	s.SnapshotBase()
	return s
}

func (b *builder) element(owner, key string, prop *doc.Node, required bool) *model.Element {
	pos, base := splitPosition(key)
	usage := usageFor(required)

	format := prop.Get("format").Str()
	minLen, hasMin := prop.Get("minLength").Int()
	maxLen, hasMax := prop.Get("maxLength").Int()
	codes := enumCodes(prop.Get("enum"))

	// A direct $ref supplies whatever the property leaves out.
	if ref := prop.Get("$ref").Str(); ref != "" {
		target, ok := b.res.Resolve(ref)
		switch {
		case !ok:
			b.warnf("%s.%s: unresolvable reference %q ignored", owner, key, ref)
		case target.Kind == KindSegment || target.Kind == KindLoop:
			b.warnf("%s.%s: %s %s referenced from an element", owner, key, target.Kind, target.Name)
		default:
			if format == "" {
				format = target.Node.Get("format").Str()
			}
			if !hasMin {
				minLen, _ = target.Node.Get("minLength").Int()
			}
			if !hasMax {
				maxLen, _ = target.Node.Get("maxLength").Int()
			}
			if codes == nil {
				codes = enumCodes(target.Node.Get("enum"))
			}
		}
	}
	if codes == nil {
		// Last enumeration-bearing combinator wins.
		for _, it := range prop.Get("allOf").Items() {
			ref := it.Get("$ref").Str()
			if ref == "" {
				continue
			}
			target, ok := b.res.Resolve(ref)
			if !ok {
				b.warnf("%s.%s: unresolvable reference %q ignored", owner, key, ref)
				continue
			}
			if c := enumCodes(target.Node.Get("enum")); c != nil {
				codes = c
			}
			if format == "" {
				format = target.Node.Get("format").Str()
			}
		}
	}

	e := &model.Element{
		ID:         b.ids(),
		Position:   pos,
		Name:       humanize(base),
		DataType:   model.DataTypeFromFormat(format),
		MinLength:  minLen,
		MaxLength:  maxLen,
		Usage:      usage,
		CodeValues: codes,
		Example:    prop.Get("example").Str(),
	}
	e.SnapshotBase()
	return e
}

func enumCodes(n *doc.Node) []model.CodeValue {
	vals := n.Items()
	if len(vals) == 0 {
		return nil
	}
	out := make([]model.CodeValue, 0, len(vals))
	for _, v := range vals {
		if v.Kind != doc.KindString && v.Kind != doc.KindNumber {
			continue
		}
		out = append(out, model.CodeValue{Code: v.Str(), Included: true})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var positionSuffix = regexp.MustCompile(`_(\d+)$`)

// splitPosition splits "TransactionSetIdentifierCode_01" into 1 and
// "TransactionSetIdentifierCode". Keys without a suffix are position 1.
func splitPosition(key string) (int, string) {
	m := positionSuffix.FindStringSubmatchIndex(key)
	if m == nil {
		return 1, key
	}
	pos := 0
	for _, r := range key[m[2]:m[3]] {
		pos = pos*10 + int(r-'0')
		if pos > model.Unbounded {
			break
		}
	}
	if pos == 0 {
		pos = 1
	}
	return pos, key[:m[0]]
}

// humanize puts a space before every capital letter after the first, so
// "TransactionSetPurposeCode" reads "Transaction Set Purpose Code". Other
// characters, underscores included, are kept.
func humanize(s string) string {
	var sb strings.Builder
	prev := ' '
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsSpace(prev) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func describe(def Definition, key string) string {
	return strutil.FirstNonEmpty(
		def.Node.Get("description").Str(),
		def.Node.Get("title").Str(),
		positionSuffix.ReplaceAllString(key, ""),
		def.Marker,
	)
}

func usageFor(required bool) model.Usage {
	if required {
		return model.Mandatory
	}
	return model.Optional
}

func stringSet(vals []string) map[string]bool {
	out := make(map[string]bool, len(vals))
	for _, v := range vals {
		out[v] = true
	}
	return out
}

func intPtr(v int) *int { return &v }
