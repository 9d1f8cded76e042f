package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reoring/edispec"
	"github.com/reoring/edispec/i18n"
	"github.com/reoring/edispec/templates"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "edispec: X12 transaction-set specification importer\n\nUsage:\n  edispec import [-o json|yaml|tree|dump] [-out file] [-lang en|ja] <file|->\n  edispec new [-o json|yaml|tree|dump] [-out file] <code>\n  edispec templates")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cfg := loadConfig()
	logger := newLogger(cfg.LogLevel)
	switch args[0] {
	case "import":
		return importCmd(args[1:], cfg, logger, stdin, stdout, stderr)
	case "new":
		return newCmd(args[1:], cfg, stdout, stderr)
	case "templates":
		for _, t := range templates.All() {
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", t.Code, t.Name, t.Description)
		}
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func importCmd(args []string, cfg config, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("o", cfg.Output, "output format: json, yaml, tree or dump")
	out := fs.String("out", "", "output file (default stdout)")
	lang := fs.String("lang", cfg.Lang, "message language: en or ja")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(*lang)

	var (
		in   io.Reader = stdin
		path           = fs.Arg(0)
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "edispec: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	spec, diag, err := edispec.ImportReader(in, edispec.Options{Logger: logger})
	for _, w := range diag.Warnings() {
		logger.Warn("edispec: import warning", "file", path, "detail", w)
	}
	if err != nil {
		if ie, ok := edispec.AsImportError(err); ok {
			fmt.Fprintln(stderr, ie.Localized())
		} else {
			fmt.Fprintf(stderr, "edispec: %v\n", err)
		}
		return 1
	}
	logger.Info("edispec: imported", "file", path, "transactionSet", spec.Metadata.TransactionSet, "loops", len(spec.Loops))
	return emit(spec, *format, *out, stdout, stderr)
}

func newCmd(args []string, cfg config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("o", cfg.Output, "output format: json, yaml, tree or dump")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	spec := edispec.NewSpecification(fs.Arg(0), edispec.Options{})
	return emit(spec, *format, *out, stdout, stderr)
}
