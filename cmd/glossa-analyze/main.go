// Command glossa-analyze runs a one-shot analysis of a turn document
// and writes the report JSON to stdout or a file. It is the scripting
// counterpart of the web API for batch use.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glossahq/glossa/internal/analysis"
	"github.com/glossahq/glossa/internal/loader"
)

func main() {
	ontology := flag.Bool("ontology", false, "Treat the input as ontology-mapped extractions")
	raw := flag.Bool("raw", false, "Emit the deserialized turns without analysis (flat schema only)")
	output := flag.String("o", "", "Write the report to this file instead of stdout")
	pretty := flag.Bool("pretty", true, "Indent the output JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <path-or-url>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	source := flag.Arg(0)

	if *raw && *ontology {
		log.Fatal("-raw applies to the flat schema only")
	}

	result, err := run(context.Background(), source, *ontology, *raw)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := write(result, *output, *pretty); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

// run loads the document and produces the requested output value.
func run(ctx context.Context, source string, ontology, raw bool) (interface{}, error) {
	l := loader.New()

	if ontology {
		turns, err := l.LoadOntologyTurns(ctx, source)
		if err != nil {
			return nil, err
		}
		return analysis.AnalyzeOntologyTurns(turns), nil
	}

	turns, err := l.LoadSpeakerTurns(ctx, source)
	if err != nil {
		return nil, err
	}
	if raw {
		return turns, nil
	}
	return analysis.AnalyzeSpeakerTurns(turns), nil
}

// write serializes the result to the output file or stdout.
func write(result interface{}, output string, pretty bool) error {
	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
