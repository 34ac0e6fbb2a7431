package prompt

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Params carries everything the research mission template interpolates.
type Params struct {
	Subject       string
	OutputDir     string
	ReportFile    string
	MaxIterations int
	MinWords      int
}

// Mission returns the research mission component for the given params.
// The rubric is fixed; only subject, output location, and budgets vary.
func Mission(p Params) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, missionText,
			p.Subject,
			p.MaxIterations,
			p.OutputDir,
			p.ReportFile,
			p.MinWords,
		)
		return err
	})
}

const missionText = `MISSION: Execute comprehensive multi-source research analysis on this subject: %s

YOU MUST COMPLETE THE SEARCH IN LESS THAN %d ITERATIONS.

- Language: Primary English, include significant non-English sources if relevant

1. SEARCH About the subject

- step1: Use a search tool to find information related to the subject
- step2: Once you find some result from search, choose which one to read to get a better understanding of the subject
- step3: Repeat the search if needed, until you have a clear understanding of the subject -> go to step1

2. ANALYSIS / SYNTHESIS REQUIREMENTS:

- Cross-reference findings
- Highlight consensus vs. controversy
- Quantify confidence levels for major claims
- Identify knowledge gaps
- Note emerging trends
- Compare geographical/cultural perspectives

3. FINAL REPORT GENERATION:

Write a final report in %s/%s with the following sections:

## Executive Summary

- Key findings and implications
- Confidence assessment
- Critical knowledge gaps

## Methodology
- Search strategy
- Source selection criteria
- Analysis framework
- Limitations

## Findings
- Major themes
- Supporting evidence
- Contrasting views
- Statistical analysis
- Trend analysis

## Source Analysis
- Credibility assessment
- Bias evaluation
- Methodology review

## Recommendations
- Research gaps to address
- Suggested follow-up studies
- Practical applications

## Citations
- Full bibliography
- Citation metrics
- Source credibility scores

## Minimum length of the final report: at least %d words
`
