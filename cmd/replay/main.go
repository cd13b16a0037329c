// Command replay applies a saved modification ledger to a document file and
// prints the result, the replay report and optionally a Markdown rendering.
//
//	replay -doc original.json -ledger modifications.json [-markdown]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"docedit-be/pkg/bridge"
	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/ledger"
	"docedit-be/pkg/lexical"
)

type output struct {
	Document docmodel.Document     `json:"document"`
	Report   docmodel.ReplayReport `json:"report"`
	Stats    docmodel.Stats        `json:"stats"`
	Markdown string                `json:"markdown,omitempty"`
}

func main() {
	docPath := flag.String("doc", "", "path to the original document JSON")
	ledgerPath := flag.String("ledger", "", "path to the modifications JSON, e.g. {\"1\": true}")
	markdown := flag.Bool("markdown", false, "include a Markdown rendering of the result")
	flag.Parse()

	if *docPath == "" || *ledgerPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var doc docmodel.Document
	if err := readJSON(*docPath, &doc); err != nil {
		log.Fatalf("Error: read document: %v", err)
	}
	if err := docmodel.Validate(doc); err != nil {
		log.Fatalf("Error: invalid document: %v", err)
	}

	var snapshot map[int]bool
	if err := readJSON(*ledgerPath, &snapshot); err != nil {
		log.Fatalf("Error: read ledger: %v", err)
	}
	mods, err := ledger.FromSnapshot(snapshot)
	if err != nil {
		log.Fatalf("Error: invalid ledger: %v", err)
	}

	out, report := docmodel.Replay(doc, mods.Snapshot())
	res := output{Document: out, Report: report, Stats: docmodel.StatsOf(out)}
	if *markdown {
		res.Markdown = lexical.NewParser().RenderDocument(bridge.ToEditor(out))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		log.Fatalf("Error: write output: %v", err)
	}

	for _, index := range report.Missing {
		fmt.Fprintf(os.Stderr, "Warn: no checkbox with index %d in the document\n", index)
	}
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
