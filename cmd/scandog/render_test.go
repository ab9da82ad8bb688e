package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ivoronin/scandog/internal/types"
)

func sampleResult() *types.Result {
	return &types.Result{
		TotalSize: 1536,
		FileCount: 3,
		DirCount:  2,
		MatchedFiles: []string{
			"/data/a.log",
			"/data/sub/b.log",
		},
		Errors: []types.ErrorRecord{
			{Path: "/data/locked", Kind: types.ErrKindUnreadable, Message: "permission denied"},
		},
		Elapsed:  1500 * time.Millisecond,
		TimedOut: true,
	}
}

// TestRenderJSONShape verifies the stable JSON field names and values.
func TestRenderJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := renderJSON(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got["total_size_bytes"] != float64(1536) {
		t.Errorf("total_size_bytes = %v", got["total_size_bytes"])
	}
	if got["file_count"] != float64(3) {
		t.Errorf("file_count = %v", got["file_count"])
	}
	if got["dir_count"] != float64(2) {
		t.Errorf("dir_count = %v", got["dir_count"])
	}
	if got["timed_out"] != true {
		t.Errorf("timed_out = %v", got["timed_out"])
	}

	matched, ok := got["matched_files"].([]any)
	if !ok || len(matched) != 2 {
		t.Errorf("matched_files = %v", got["matched_files"])
	}

	errs, ok := got["errors"].([]any)
	if !ok || len(errs) != 1 {
		t.Fatalf("errors = %v", got["errors"])
	}
	rec := errs[0].(map[string]any)
	if rec["kind"] != "unreadable" {
		t.Errorf("error kind = %v, want unreadable", rec["kind"])
	}
}

// TestRenderJSONEmptyCollections verifies empty arrays, not null, for a
// clean result.
func TestRenderJSONEmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	if err := renderJSON(&buf, &types.Result{}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if strings.Contains(out, "null") {
		t.Errorf("JSON output contains null collections:\n%s", out)
	}
}

// TestRenderHumanSummary verifies the human summary contents.
func TestRenderHumanSummary(t *testing.T) {
	var buf bytes.Buffer
	renderHuman(&buf, sampleResult(), false)
	out := buf.String()

	for _, want := range []string{
		"1536 bytes",
		"Files:       3",
		"Directories: 2",
		"timed out",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "permission denied") {
		t.Error("non-verbose output must not include error details")
	}
}

// TestRenderHumanVerboseErrors verifies per-record error rendering.
func TestRenderHumanVerboseErrors(t *testing.T) {
	var buf bytes.Buffer
	renderHuman(&buf, sampleResult(), true)
	out := buf.String()

	if !strings.Contains(out, "/data/locked") || !strings.Contains(out, "permission denied") {
		t.Errorf("verbose output missing error details:\n%s", out)
	}
}
