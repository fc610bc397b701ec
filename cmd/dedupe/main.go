// Command dedupe is a batch CLI entrypoint around find_duplicates,
// grounded on the PriFo counterparty-normalization tools: a flag-parsed
// CLI that reads a CSV of names, runs the core algorithm, and prints a
// summary instead of serving HTTP.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	corpmatch "github.com/corpresolve/corpmatch"
	"github.com/corpresolve/corpmatch/data"
)

func main() {
	inputPath := flag.String("input", "", "path to a CSV file with one company name per row (first column)")
	outputPath := flag.String("output", "", "path to write duplicate pairs as CSV (defaults to stdout)")
	nameColumn := flag.Int("column", 0, "zero-based index of the column holding the company name")
	hasHeader := flag.Bool("header", true, "treat the first row as a header and skip it")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input flag")
	}

	names, err := readNames(*inputPath, *nameColumn, *hasHeader)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	core, err := corpmatch.Load(corpmatch.Resources{
		LegalFormsJSON:      data.LegalFormsJSON,
		LegalFormAdditions:  data.AdditionLegalFormsTXT,
		ReplacementRulesCSV: data.LegalFormReplacementsCSV,
		CityMappings:        data.CityMappingsTXT,
		NobilityTitles:      data.NobilityTitlesTXT,
		PlaceTitles:         data.TitlesTXT,
	})
	if err != nil {
		log.Fatalf("failed to load corpmatch core: %v", err)
	}

	start := time.Now()
	pairs, err := core.FindDuplicates(context.Background(), names)
	if err != nil {
		log.Fatalf("find_duplicates failed: %v", err)
	}
	duration := time.Since(start)

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatalf("failed to open output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := writePairs(out, pairs); err != nil {
		log.Fatalf("failed to write pairs: %v", err)
	}

	fmt.Fprintln(os.Stderr, "\n--- Duplicate Detection Summary ---")
	fmt.Fprintf(os.Stderr, "Names scanned: %d\n", len(names))
	fmt.Fprintf(os.Stderr, "Duplicate pairs found: %d\n", len(pairs))
	fmt.Fprintf(os.Stderr, "Duration: %s\n", duration.Round(time.Millisecond))
}

func readNames(path string, column int, hasHeader bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var names []string
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first && hasHeader {
			first = false
			continue
		}
		first = false
		if column >= len(record) {
			continue
		}
		names = append(names, record[column])
	}
	return names, nil
}

func writePairs(w io.Writer, pairs []corpmatch.MatchResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name1", "name2", "score"}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{p.Name1, p.Name2, fmt.Sprintf("%.4f", p.Score)}); err != nil {
			return err
		}
	}
	return nil
}
