package prompt

import (
	"context"
	"strings"
	"testing"
)

func TestBuildEmbedsParamsVerbatim(t *testing.T) {
	p := Params{
		Subject:       "ocean thermal energy conversion",
		OutputDir:     "./results",
		ReportFile:    "report_003.md",
		MaxIterations: 10,
		MinWords:      2000,
	}
	text, err := Build(context.Background(), p)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	for _, want := range []string{
		"ocean thermal energy conversion",
		"./results/report_003.md",
		"LESS THAN 10 ITERATIONS",
		"at least 2000 words",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := Params{Subject: "s", OutputDir: "./out", ReportFile: "report.md", MaxIterations: 5, MinWords: 100}
	first, err := Build(context.Background(), p)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	second, err := Build(context.Background(), p)
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	if first != second {
		t.Fatalf("prompt not deterministic")
	}
}

func TestBuildMandatesReportSections(t *testing.T) {
	text, err := Build(context.Background(), Params{
		Subject: "x", OutputDir: ".", ReportFile: "report.md", MaxIterations: 3, MinWords: 500,
	})
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	for _, section := range []string{
		"## Executive Summary",
		"## Methodology",
		"## Findings",
		"## Source Analysis",
		"## Recommendations",
		"## Citations",
	} {
		if !strings.Contains(text, section) {
			t.Fatalf("prompt missing section %q", section)
		}
	}
}
