// Package definition reads declarative YAML documents describing pipelines
// and scenarios and builds the corresponding registries.
//
// A document looks like:
//
//	pipelines:
//	  - name: ingest
//	    tasks: [extract, load]
//	scenarios:
//	  - name: Daily Sync
//	    pipelines: [ingest, report]
//	    frequency: daily
//	    comparators:
//	      ds1: [equal, text_diff]
//
// The same document can be written in HCL, one block per entry; Load picks
// the format from the file extension.
//
// Comparators are referenced by name and resolved through a
// comparator.Catalog. Pipelines not declared in any document can be
// resolved through a pipeline.Loader.
package definition
