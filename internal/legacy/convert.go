// Package legacy converts directly nested (Loop -> Segment -> Element)
// transaction-set descriptions into the canonical model.
package legacy

import (
	"strings"
	"time"

	"github.com/reoring/edispec/internal/util/strutil"
	"github.com/reoring/edispec/model"
	"github.com/reoring/edispec/templates"
)

// Options supplies identifier and clock collaborators.
type Options struct {
	IDs model.IDGenerator
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = model.NewID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Convert builds a Specification from d. It never fails; an empty loop list
// yields a specification without loops.
func Convert(d Document, opts Options) *model.Specification {
	opts = opts.withDefaults()
	c := converter{ids: opts.IDs}

	code := strings.TrimSpace(string(d.TransactionSetID))
	tsName := strings.TrimSpace(string(d.Name))
	if tsName == "" {
		if t, ok := templates.Lookup(code); ok {
			tsName = t.Name
		}
	}
	ediVersion := strings.TrimSpace(string(d.Version))
	if ediVersion == "" {
		ediVersion = model.DefaultEDIVersion
	}
	now := opts.Now()

	spec := &model.Specification{
		ID: c.ids(),
		Metadata: model.Metadata{
			Name:               strings.TrimSpace(code + " " + tsName),
			Version:            "1.0",
			TransactionSet:     code,
			TransactionSetName: tsName,
			EDIVersion:         ediVersion,
			CreatedDate:        now,
			ModifiedDate:       now,
			BaseSpec:           "legacy:" + ediVersion + "/" + code,
		},
		Loops:    make([]*model.Loop, 0, len(d.Loops)),
		Examples: []model.Example{},
	}
	if t, ok := templates.Lookup(code); ok {
		spec.Metadata.Description = t.Description
	}
	for _, ln := range d.Loops {
		spec.Loops = append(spec.Loops, c.loop(ln))
	}
	return spec
}

type converter struct {
	ids model.IDGenerator
}

func (c converter) loop(n LoopNode) *model.Loop {
	usage := model.ParseUsage(string(n.Req))
	l := &model.Loop{
		ID:          c.ids(),
		Name:        strutil.FirstNonEmpty(string(n.ID), string(n.Name)),
		Description: strutil.FirstNonEmpty(string(n.Name), string(n.ID)),
		Usage:       usage,
		MinUse:      usage.MinUse(),
		MaxUse:      maxUse(n.Max),
		Segments:    make([]*model.Segment, 0, len(n.Segments)),
		Loops:       make([]*model.Loop, 0, len(n.Loops)),
	}
	for _, sn := range n.Segments {
		l.Segments = append(l.Segments, c.segment(sn))
	}
	for _, child := range n.Loops {
		l.Loops = append(l.Loops, c.loop(child))
	}
	l.SnapshotBase()
	return l
}

func (c converter) segment(n SegmentNode) *model.Segment {
	usage := model.ParseUsage(string(n.Req))
	s := &model.Segment{
		ID:          c.ids(),
		Name:        strutil.FirstNonEmpty(string(n.ID), string(n.Name)),
		Description: strutil.FirstNonEmpty(string(n.Name), string(n.ID)),
		Usage:       usage,
		MinUse:      usage.MinUse(),
		MaxUse:      maxUse(n.Max),
		Elements:    make([]*model.Element, 0, len(n.Elements)),
	}
	for i, en := range n.Elements {
		s.Elements = append(s.Elements, c.element(i+1, en))
	}
	s.SnapshotBase()
	return s
}

func (c converter) element(pos int, n ElementNode) *model.Element {
	e := &model.Element{
		ID:        c.ids(),
		Position:  pos,
		Name:      strutil.FirstNonEmpty(string(n.Name), string(n.ID)),
		DataType:  model.ParseDataType(string(n.DataType)),
		MinLength: int(n.MinLength),
		MaxLength: int(n.MaxLength),
		Usage:     model.ParseUsage(string(n.Req)),
	}
	for _, cn := range n.Codes {
		e.CodeValues = append(e.CodeValues, model.CodeValue{
			Code:        string(cn.Code),
			Description: string(cn.Description),
			Included:    true,
		})
	}
	e.SnapshotBase()
	return e
}

func maxUse(o Occurs) int {
	if o <= 0 {
		return 1
	}
	return int(o)
}
