package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/internal/batch"
	"github.com/spraakbanken/lexmeta/metadata"
	"github.com/spraakbanken/lexmeta/source"
)

func validateCmd(args []string) {
	fset, conf := newFlagSet("validate", "<dir>")
	_ = fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		os.Exit(2)
	}
	setup(conf)

	ctx, stop := signalContext()
	defer stop()

	metrics := batch.NewMetrics()
	runner := batch.NewRunner(batch.Options{
		Glob:      conf.Glob,
		KeepGoing: conf.KeepGoing,
		ParseOpt:  conf.ParseOpt(),
	}, metrics)
	rep, err := runner.Run(ctx, fset.Arg(0))
	if conf.MetricsFile != "" {
		if werr := metrics.WriteToTextfile(conf.MetricsFile); werr != nil {
			log.Error().Err(werr).Str("file", conf.MetricsFile).Msg("failed to write metrics")
		}
	}
	if err != nil {
		fatalf("validate: %v", err)
	}
	writeReport(os.Stderr, rep)
	if !rep.OK() {
		os.Exit(1)
	}
	fmt.Printf("%d file(s) valid\n", len(rep.Files))
}

func normalizeCmd(args []string) {
	fset, conf := newFlagSet("normalize", "<file>")
	var preserve bool
	fset.BoolVar(&preserve, "preserve", false, "keep only the keys present in the input")
	_ = fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		os.Exit(2)
	}
	setup(conf)

	ctx, stop := signalContext()
	defer stop()

	path := fset.Arg(0)
	doc, err := source.ReadFile(path)
	if err != nil {
		var dup *source.DuplicateKeyError
		if errors.As(err, &dup) {
			writeReport(os.Stderr, &batch.Report{Files: []batch.FileResult{{Path: path, Issues: dup.Issues()}}})
			os.Exit(1)
		}
		fatalf("normalize: %v", err)
	}
	dm, err := metadata.ParseWithMeta(ctx, doc, conf.ParseOpt())
	if err != nil {
		if iss, ok := lexmeta.AsIssues(err); ok {
			writeReport(os.Stderr, &batch.Report{Files: []batch.FileResult{{Path: path, Issues: iss}}})
			os.Exit(1)
		}
		fatalf("normalize: %v", err)
	}
	mode := lexmeta.EncodeCanonical
	if preserve {
		mode = lexmeta.EncodePreserve
	}
	out := metadata.EncodeWithDecoded(dm, mode)
	if err := source.Encode(os.Stdout, out, conf.OutputFormat(), metadata.FieldOrder); err != nil {
		fatalf("normalize: %v", err)
	}
}

func createCmd(args []string) {
	fset, conf := newFlagSet("create", "")
	_ = fset.Parse(args)
	setup(conf)

	out, err := metadata.CreateDefault(context.Background())
	if err != nil {
		var mf *metadata.MissingFieldsError
		if errors.As(err, &mf) {
			writeMissingFields(os.Stderr, mf)
			os.Exit(1)
		}
		fatalf("create: %v", err)
	}
	if err := source.Encode(os.Stdout, out, conf.OutputFormat(), metadata.FieldOrder); err != nil {
		fatalf("create: %v", err)
	}
}

func schemaCmd(args []string) {
	fset, conf := newFlagSet("schema", "")
	_ = fset.Parse(args)
	setup(conf)

	s, err := metadata.JSONSchema()
	if err != nil {
		fatalf("schema: %v", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fatalf("schema: %v", err)
	}
	fmt.Println(string(b))
}

func writeMissingFields(w io.Writer, mf *metadata.MissingFieldsError) {
	fmt.Fprintln(w, "cannot create a default record, these fields are required and have no default:")
	for _, f := range mf.Fields {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
