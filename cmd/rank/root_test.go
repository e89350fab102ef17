package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/testutil"
)

func resumeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"chef.pdf":   testutil.PDF("Chef with culinary degree"),
		"python.pdf": testutil.PDF("Python developer with 5 years experience"),
		"broken.pdf": []byte("not a pdf"),
		"notes.txt":  []byte("Python developer"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRankTable(t *testing.T) {
	out, err := execute(t, "--dir", resumeDir(t), "--job", "Python developer with 5 years experience")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	python := strings.Index(out, "python.pdf")
	chef := strings.Index(out, "chef.pdf")
	broken := strings.Index(out, "broken.pdf")
	if python == -1 || chef == -1 || broken == -1 {
		t.Fatalf("missing rows in output:\n%s", out)
	}
	if !(python < chef && chef < broken) {
		t.Fatalf("unexpected row order:\n%s", out)
	}
	if strings.Contains(out, "notes.txt") {
		t.Fatalf("non-pdf file should be skipped:\n%s", out)
	}
	if !strings.Contains(out, "1.00") {
		t.Fatalf("expected two-decimal score for the exact match:\n%s", out)
	}
}

func TestRankJSON(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(jobFile, []byte("culinary chef"), 0o644); err != nil {
		t.Fatalf("write job file: %v", err)
	}

	out, err := execute(t, "--dir", resumeDir(t), "--job-file", jobFile, "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result models.RankingResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(result.Results) != 2 || result.Results[0].Filename != "chef.pdf" {
		t.Fatalf("expected chef.pdf first, got %+v", result.Results)
	}
	if len(result.Unreadable) != 1 {
		t.Fatalf("expected one unreadable file, got %+v", result.Unreadable)
	}
}

func TestRankErrors(t *testing.T) {
	dir := resumeDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing job", args: []string{"--dir", dir}},
		{name: "both job flags", args: []string{"--dir", dir, "--job", "go", "--job-file", "job.txt"}},
		{name: "bad output", args: []string{"--dir", dir, "--job", "go", "-o", "xml"}},
		{name: "missing dir", args: []string{"--dir", filepath.Join(dir, "nope"), "--job", "go"}},
		{name: "empty dir", args: []string{"--dir", t.TempDir(), "--job", "go"}},
		{name: "positional args", args: []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestRankAllUnreadable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, "--dir", dir, "--job", "golang")
	if err != nil {
		t.Fatalf("expected no error when nothing could be read, got %v", err)
	}
	if !strings.Contains(out, models.MessageNoReadableResumes) {
		t.Fatalf("expected empty-results message:\n%s", out)
	}
}
