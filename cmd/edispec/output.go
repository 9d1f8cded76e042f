package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/edispec/model"
)

var outputFormats = []string{"json", "yaml", "tree", "dump"}

func writeSpec(w io.Writer, spec *model.Specification, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return err
		}
		return enc.Close()
	case "tree":
		return writeTree(w, spec)
	case "dump":
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(w, spec)
		return nil
	}
	return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(outputFormats, ", "))
}

// writeTree prints an indented outline of the specification.
func writeTree(w io.Writer, spec *model.Specification) error {
	if _, err := fmt.Fprintf(w, "%s (X12 %s)\n", spec.Metadata.Name, spec.Metadata.EDIVersion); err != nil {
		return err
	}
	var err error
	spec.Walk(func(depth int, l *model.Loop, s *model.Segment, e *model.Element) {
		if err != nil {
			return
		}
		pad := strings.Repeat("  ", depth+1)
		switch {
		case l != nil:
			_, err = fmt.Fprintf(w, "%sLOOP %s [%s %s] %s\n", pad, l.Name, l.Usage, occurs(l.MinUse, l.MaxUse), l.Description)
		case s != nil:
			_, err = fmt.Fprintf(w, "%s%s [%s %s] %s\n", pad, s.Name, s.Usage, occurs(s.MinUse, s.MaxUse), s.Description)
		case e != nil:
			_, err = fmt.Fprintf(w, "%s%02d %s %s %d/%d %s", pad, e.Position, e.Name, e.DataType, e.MinLength, e.MaxLength, e.Usage)
			if err == nil && len(e.CodeValues) > 0 {
				_, err = fmt.Fprintf(w, " codes=%d", len(e.CodeValues))
			}
			if err == nil {
				_, err = fmt.Fprintln(w)
			}
		}
	})
	return err
}

func occurs(lo, hi int) string {
	if hi >= model.Unbounded {
		return fmt.Sprintf("%d..>1", lo)
	}
	return fmt.Sprintf("%d..%d", lo, hi)
}
