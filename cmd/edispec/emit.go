package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reoring/edispec/model"
)

func emit(spec *model.Specification, format, out string, stdout, stderr io.Writer) int {
	if out == "" {
		if err := writeSpec(stdout, spec, format); err != nil {
			fmt.Fprintf(stderr, "edispec: %v\n", err)
			return 1
		}
		return 0
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fmt.Fprintf(stderr, "edispec: creating output dir: %v\n", err)
		return 1
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(stderr, "edispec: %v\n", err)
		return 1
	}
	if err := writeSpec(f, spec, format); err != nil {
		f.Close()
		fmt.Fprintf(stderr, "edispec: writing output: %v\n", err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(stderr, "edispec: writing output: %v\n", err)
		return 1
	}
	return 0
}
