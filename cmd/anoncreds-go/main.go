package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds"
	"github.com/hyperledger-identus/anoncreds-shim-go/pkg/anoncreds/logging"
)

func main() {
	demo := flag.Bool("demo", false, "run the issue/present/verify walk-through against the in-memory library")
	debug := flag.Bool("debug", false, "log every marshalled call at debug level")
	asJSON := flag.Bool("json", false, "print the demo report as JSON")
	flag.Parse()

	zl, err := newZap(*debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := logging.NewZap(zl)

	log.Printf("anoncreds-shim-go version: %s", anoncreds.WrapperVersion())
	log.Printf("libanoncreds upstream: %s (linked: %t)", anoncreds.UpstreamVersion(), anoncreds.NativeBuilt())

	if *demo {
		report, err := runDemo(context.Background(), logger)
		if err != nil {
			log.Fatalf("demo failed: %v", err)
		}
		if err := printReport(report, *asJSON); err != nil {
			log.Fatalf("print report: %v", err)
		}
		return
	}

	m, err := anoncreds.Open(anoncreds.Config{Logger: logger})
	if err != nil {
		if errors.Is(err, anoncreds.ErrNotBuilt) {
			fmt.Printf("library unavailable: %v\n", err)
			return
		}
		log.Fatalf("unexpected failure opening library: %v", err)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Printf("close error: %v", cerr)
		}
	}()

	fmt.Printf("library opened successfully (%s)\n", m.LibraryVersion())
}

func newZap(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printReport(r *report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Printf("schema:       %s\n", r.Schema)
	fmt.Printf("encoded:      %s\n", r.Encoded)
	fmt.Printf("credential:   %d\n", r.Credential)
	fmt.Printf("presentation: %d\n", r.Presentation)
	fmt.Printf("verified:     %s\n", r.Verified)
	return nil
}
