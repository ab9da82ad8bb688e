package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/ivoronin/scandog/internal/types"
)

// jsonResult is the stable JSON shape of a scan result.
type jsonResult struct {
	TotalSizeBytes int64       `json:"total_size_bytes"`
	FileCount      int64       `json:"file_count"`
	DirCount       int64       `json:"dir_count"`
	MatchedFiles   []string    `json:"matched_files"`
	Errors         []jsonError `json:"errors"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	TimedOut       bool        `json:"timed_out"`
}

type jsonError struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// renderJSON writes the result as indented JSON.
func renderJSON(w io.Writer, res *types.Result) error {
	out := jsonResult{
		TotalSizeBytes: res.TotalSize,
		FileCount:      res.FileCount,
		DirCount:       res.DirCount,
		MatchedFiles:   res.MatchedFiles,
		Errors:         make([]jsonError, 0, len(res.Errors)),
		ElapsedSeconds: res.Elapsed.Seconds(),
		TimedOut:       res.TimedOut,
	}
	if out.MatchedFiles == nil {
		out.MatchedFiles = []string{}
	}
	for _, rec := range res.Errors {
		out.Errors = append(out.Errors, jsonError{
			Path:    rec.Path,
			Kind:    rec.Kind.String(),
			Message: rec.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// renderHuman writes a human-readable summary. Non-verbose output prints
// only the error count; verbose prints every record.
func renderHuman(w io.Writer, res *types.Result, verbose bool) {
	fmt.Fprintf(w, "Total size:  %s (%d bytes)\n", humanize.IBytes(uint64(res.TotalSize)), res.TotalSize)
	fmt.Fprintf(w, "Files:       %d\n", res.FileCount)
	fmt.Fprintf(w, "Directories: %d\n", res.DirCount)
	fmt.Fprintf(w, "Elapsed:     %s\n", res.Elapsed.Round(time.Millisecond))

	if res.TimedOut {
		color.New(color.FgYellow).Fprintln(w, "Scan timed out: results are partial")
	}

	if len(res.MatchedFiles) > 0 {
		fmt.Fprintf(w, "Matched files (%d):\n", len(res.MatchedFiles))
		for _, p := range res.MatchedFiles {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}

	if len(res.Errors) == 0 {
		return
	}
	if !verbose {
		color.New(color.FgRed).Fprintf(w, "Errors: %d (re-run with --verbose for details)\n", len(res.Errors))
		return
	}
	color.New(color.FgRed).Fprintf(w, "Errors (%d):\n", len(res.Errors))
	for _, rec := range res.Errors {
		fmt.Fprintf(w, "  [%s] %s: %s\n", rec.Kind, rec.Path, rec.Message)
	}
}
