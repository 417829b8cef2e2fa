package main

import (
	"fmt"
	"io"

	"github.com/czcorpus/cnc-gokit/collections"

	lexmeta "github.com/spraakbanken/lexmeta"
	"github.com/spraakbanken/lexmeta/internal/batch"
)

// issueLines renders one "path: message" line per issue.
func issueLines(iss lexmeta.Issues) []string {
	return collections.SliceMap(iss, func(it lexmeta.Issue, _ int) string {
		return "  " + it.String()
	})
}

// writeReport prints every failing file followed by its issues.
func writeReport(w io.Writer, rep *batch.Report) {
	for _, f := range rep.Failed() {
		fmt.Fprintf(w, "Validation failed for %s\n", f.Path)
		if f.Err != nil {
			fmt.Fprintf(w, "  %v\n", f.Err)
			continue
		}
		for _, line := range issueLines(f.Issues) {
			fmt.Fprintln(w, line)
		}
	}
	if rep.Aborted {
		fmt.Fprintln(w, "stopped at the first failing file, use -keep-going to check the rest")
	}
}
