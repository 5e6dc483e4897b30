package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"ragdebug/internal/analysis"
	"ragdebug/internal/domain"
)

// Options tunes the text report output.
type Options struct {
	// MaxChunkChars truncates chunk text in the breakdown; 0 keeps it whole.
	MaxChunkChars int
	// ShowRawFeatures appends the raw feature map to the vector report.
	ShowRawFeatures bool
}

var (
	sectionColor  = color.New(color.FgCyan)
	healthyColor  = color.New(color.FgGreen, color.Bold)
	warningColor  = color.New(color.FgYellow, color.Bold)
	criticalColor = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.Faint)
)

// Format renders the context analysis as a plain-text report.
func Format(result domain.AnalysisResult, opts Options) string {
	var b strings.Builder

	b.WriteString(sectionColor.Sprint("\n--- Context Health ---\n"))
	b.WriteString(fmt.Sprintf("Status: %s\n", statusColor(result.Health.Status).Sprint(string(result.Health.Status))))
	b.WriteString(result.Health.Message + "\n")
	if result.Err != nil {
		b.WriteString(criticalColor.Sprint("Error: ") + *result.Err + "\n")
	}

	b.WriteString(sectionColor.Sprint("\n--- Metrics ---\n"))
	b.WriteString(fmt.Sprintf("Chunks Retrieved:   %d\n", result.Health.ChunkCount))
	b.WriteString(fmt.Sprintf("Avg Relevance:      %.3f\n", result.Health.AvgRelevanceScore))
	b.WriteString(fmt.Sprintf("Semantic Diversity: %.3f\n", result.Health.SemanticDiversityScore))

	b.WriteString(sectionColor.Sprint("\n--- Retrieved Chunks ---\n"))
	if len(result.RetrievedChunks) == 0 {
		b.WriteString("No context chunks were retrieved.\n")
	}
	for i, chunk := range result.RetrievedChunks {
		b.WriteString(fmt.Sprintf("[%d] score=%.2f\n", i+1, chunk.Score))
		b.WriteString("    " + truncate(chunk.Text, opts.MaxChunkChars) + "\n")
	}

	if result.GeneratedAnswer != "" {
		b.WriteString(sectionColor.Sprint("\n--- Generated Answer ---\n"))
		b.WriteString(result.GeneratedAnswer + "\n")
		b.WriteString(dimColor.Sprintf("confidence=%.2f\n", result.AnswerConfidence))
	}

	return b.String()
}

// FormatVector renders the freshness-oriented vector report.
func FormatVector(report analysis.VectorReport, opts Options) string {
	var b strings.Builder

	if opts.ShowRawFeatures {
		b.WriteString(sectionColor.Sprint("\n--- Feature Values ---\n"))
		if len(report.Features) == 0 {
			b.WriteString("No features were retrieved.\n")
		}
		for _, name := range sortedKeys(report.Features) {
			value := report.Features[name]
			if value == nil {
				b.WriteString(fmt.Sprintf("%s: %s\n", name, warningColor.Sprint("(NULL)")))
				continue
			}
			b.WriteString(fmt.Sprintf("%s: %v\n", name, value))
		}
	}

	b.WriteString(sectionColor.Sprint("\n--- SLO Report ---\n"))
	if report.SLO != nil {
		b.WriteString(fmt.Sprintf("Server Latency: %.4fs\n", report.SLO.ServerTimeSeconds))
		b.WriteString(fmt.Sprintf("Store Response: %.4fs\n", report.SLO.StoreResponseTimeSeconds))
		b.WriteString(fmt.Sprintf("SLO Eligible:   %t\n", report.SLO.Eligible))
	} else {
		b.WriteString("SLO info not available.\n")
	}

	b.WriteString(sectionColor.Sprint("\n--- Temporal Cohesion ---\n"))
	if report.Temporal != nil {
		b.WriteString(fmt.Sprintf("Risk Level:  %s\n", riskColor(report.Temporal.RiskLevel).Sprint(report.Temporal.RiskLevel)))
		b.WriteString(fmt.Sprintf("Time Spread: %.2f seconds\n", report.Temporal.TimeSpreadSeconds))
		b.WriteString(fmt.Sprintf("Oldest Feature Time: %s\n", report.Temporal.MinEffectiveTime.Format("2006-01-02 15:04:05 MST")))
		b.WriteString(fmt.Sprintf("Newest Feature Time: %s\n", report.Temporal.MaxEffectiveTime.Format("2006-01-02 15:04:05 MST")))
	} else {
		b.WriteString("Temporal analysis not applicable (fewer than 2 features with timestamps).\n")
	}

	return b.String()
}

func statusColor(status domain.Status) *color.Color {
	switch status {
	case domain.StatusHealthy:
		return healthyColor
	case domain.StatusWarning:
		return warningColor
	default:
		return criticalColor
	}
}

func riskColor(risk string) *color.Color {
	switch risk {
	case analysis.RiskLow:
		return healthyColor
	case analysis.RiskMedium:
		return warningColor
	default:
		return criticalColor
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
