// Command validate performs data integrity checks without loading anything:
// it parses a HURDAT2 best-track file, reconciles each header's declared
// entry count against the data lines that follow, and classifies every
// mismatch as an expected cross-year split or a real discrepancy. Given a
// database instead, it reports zero-variance columns and can drop them.
//
// Usage:
//
//	go run ./cmd/validate -input data/hurdat2-1851-2023.txt
//	go run ./cmd/validate -input data/hurdat2-1851-2023.txt -strict
//	go run ./cmd/validate -db data/hurdat2.db -constant-columns
//	go run ./cmd/validate -db data/hurdat2.db -prune-constant
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/adapter/sqlite"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	inputPath := flag.String("input", "", "path to a HURDAT2 best-track text file")
	strict := flag.Bool("strict", false, "exit nonzero on mismatches with no cross-year explanation")
	dbPath := flag.String("db", "", "path to an ingested SQLite database")
	constantColumns := flag.Bool("constant-columns", false, "report zero-variance columns in the database")
	pruneConstant := flag.Bool("prune-constant", false, "drop zero-variance columns from the database")
	flag.Parse()

	if *inputPath == "" && *dbPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*inputPath, *dbPath, *strict, *constantColumns, *pruneConstant); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, dbPath string, strict, constantColumns, pruneConstant bool) int {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fmt.Println("=== HURDAT2 Integrity Validation ===")
	fmt.Println()

	phases := []*phase{}

	if inputPath != "" {
		p, err := validateCounts(ctx, inputPath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			return 1
		}
		phases = append(phases, p)
	}

	if dbPath != "" && (constantColumns || pruneConstant) {
		p, err := validateColumns(ctx, dbPath, pruneConstant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			return 1
		}
		phases = append(phases, p)
	}

	fmt.Println()
	failed := false
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = "FAIL"
			failed = true
		}
		fmt.Printf("%-28s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed && strict {
		return 1
	}
	return 0
}

// validateCounts parses the file and reconciles declared entry counts
// against observed data lines per storm.
func validateCounts(ctx context.Context, path string, logger *slog.Logger) (*phase, error) {
	p := &phase{name: "entry count reconciliation"}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	metrics := observability.NewMetrics()
	asm := pipeline.NewAssembler(f, logger, metrics)
	validator := pipeline.NewValidator()

	records := 0
	for {
		batch, err := asm.ExtractBatch(ctx, 500)
		for _, rec := range batch {
			validator.ObserveRecord(rec)
			records++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
	}
	headers := asm.Headers()
	validator.ObserveHeaders(headers)

	fmt.Printf("parsed %d storms, %d track points\n", len(headers), records)

	checks := validator.Report()
	sort.SliceStable(checks, func(i, j int) bool {
		return !checks[i].Expected && checks[j].Expected
	})
	for _, c := range checks {
		if c.Expected {
			fmt.Printf("  %s %-10s declared %d observed %d  [expected: cross-year split]\n",
				c.Identity.UniqueID(), c.Identity.Name, c.Declared, c.Observed)
			continue
		}
		p.errorf("%s %s declared %d observed %d",
			c.Identity.UniqueID(), c.Identity.Name, c.Declared, c.Observed)
	}

	return p, nil
}

// validateColumns reports zero-variance columns and optionally drops them.
func validateColumns(ctx context.Context, path string, prune bool) (*phase, error) {
	p := &phase{name: "zero-variance columns"}

	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	store := sqlite.New(db)

	n, err := store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	cols, err := store.ConstantColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan columns: %w", err)
	}

	fmt.Printf("%d rows, %d zero-variance columns\n", n, len(cols))
	for _, c := range cols {
		fmt.Printf("  %s\n", c)
	}

	if prune && len(cols) > 0 {
		if err := store.PruneColumns(ctx, cols); err != nil {
			return nil, fmt.Errorf("prune columns: %w", err)
		}
		fmt.Printf("dropped %d columns\n", len(cols))
	}

	return p, nil
}
