package edispec

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reoring/edispec/internal/doc"
	"github.com/reoring/edispec/internal/legacy"
	"github.com/reoring/edispec/internal/openedi"
	"github.com/reoring/edispec/model"
	"github.com/reoring/edispec/templates"
)

// Format identifies a supported source format.
type Format int

const (
	// FormatLegacy is the directly nested Loop/Segment/Element document.
	FormatLegacy Format = iota
	// FormatOpenEDI is an OpenAPI document with x-openedi-* markers.
	FormatOpenEDI
)

func (f Format) String() string {
	if f == FormatOpenEDI {
		return "openedi"
	}
	return "legacy"
}

// Import converts JSON or YAML text in either supported format into a
// Specification. Only malformed input, an empty legacy array and a schema
// without a transaction-set root are errors; everything else degrades to
// defaults and is reported through Diag.
func Import(data []byte, opts Options) (*model.Specification, Diag, error) {
	opts = opts.withDefaults()
	d := &simpleDiag{}

	root, err := doc.Parse(data, doc.Options{
		MaxDepth:    opts.MaxDepth,
		OnDuplicate: func(key string) { d.warnf("duplicate key %q: last value wins", key) },
	})
	if err != nil {
		return nil, d, malformed("input is not valid JSON or YAML", err)
	}

	if openedi.IsOpenEDI(root) {
		opts.Logger.Debug("edispec: format detected", "format", FormatOpenEDI)
		spec, err := openedi.Convert(root, openedi.Options{
			IDs:    opts.IDs,
			Now:    opts.Now,
			Logger: opts.Logger,
			Warnf:  d.warnf,
		})
		if err != nil {
			if errors.Is(err, openedi.ErrNoMessage) {
				return nil, d, &ImportError{Code: CodeMissingTransactionSet, Message: "no transaction set definition found"}
			}
			return nil, d, malformed("cannot convert schema", err)
		}
		return spec, d, nil
	}

	opts.Logger.Debug("edispec: format detected", "format", FormatLegacy)
	node, err := legacyRoot(root, d)
	if err != nil {
		return nil, d, err
	}
	var ld legacy.Document
	if err := node.Decode(&ld); err != nil {
		return nil, d, malformed("cannot decode legacy specification", err)
	}
	if ld.TransactionSetID == "" {
		d.warnf("legacy specification has no transaction set identifier")
	}
	return legacy.Convert(ld, legacy.Options{IDs: opts.IDs, Now: opts.Now}), d, nil
}

// legacyRoot picks the legacy document: the object itself or the first item
// of an array.
func legacyRoot(root *doc.Node, d *simpleDiag) (*doc.Node, error) {
	n := root
	if root.IsArray() {
		items := root.Items()
		if len(items) == 0 {
			return nil, &ImportError{Code: CodeEmptySpecArray, Message: "empty specification array"}
		}
		if len(items) > 1 {
			d.warnf("specification array has %d entries; only the first is imported", len(items))
		}
		n = items[0]
	}
	if !n.IsObject() {
		return nil, malformed(fmt.Sprintf("expected a specification object, got %s", n.Kind), nil)
	}
	return n, nil
}

// ImportReader reads all of r and imports it.
func ImportReader(r io.Reader, opts Options) (*model.Specification, Diag, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("edispec: read input: %w", err)
	}
	return Import(data, opts)
}

// ImportFile imports the file at path.
func ImportFile(path string, opts Options) (*model.Specification, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("edispec: read %s: %w", path, err)
	}
	return Import(data, opts)
}

// DetectFormat reports which converter Import would use for data.
func DetectFormat(data []byte) (Format, error) {
	root, err := doc.Parse(data, doc.Options{})
	if err != nil {
		return FormatLegacy, malformed("input is not valid JSON or YAML", err)
	}
	if openedi.IsOpenEDI(root) {
		return FormatOpenEDI, nil
	}
	return FormatLegacy, nil
}

// NewSpecification returns an empty Specification for a transaction-set
// code. Unknown codes get a generic name that contains the code.
func NewSpecification(code string, opts Options) *model.Specification {
	opts = opts.withDefaults()
	tsName := "Transaction Set " + code
	var desc string
	if t, ok := templates.Lookup(code); ok {
		tsName, desc = t.Name, t.Description
	}
	now := opts.Now()
	return &model.Specification{
		ID: opts.IDs(),
		Metadata: model.Metadata{
			Name:               templates.Label(code),
			Description:        desc,
			Version:            "1.0",
			TransactionSet:     code,
			TransactionSetName: tsName,
			EDIVersion:         model.DefaultEDIVersion,
			CreatedDate:        now,
			ModifiedDate:       now,
		},
		Loops:    []*model.Loop{},
		Examples: []model.Example{},
	}
}
