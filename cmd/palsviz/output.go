package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neehar-mavuduru/palsviz/chart"
	"github.com/neehar-mavuduru/palsviz/pipeline"
	"github.com/neehar-mavuduru/palsviz/uploader"
)

var (
	colorBaseline = lipgloss.Color("#e74c3c")
	colorVariant  = lipgloss.Color("#27ae60")
	colorAccent   = lipgloss.Color("#3498db")
	colorMuted    = lipgloss.Color("#7f8c8d")
)

var styles = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style

	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorVariant),
	Error:   lipgloss.NewStyle().Foreground(colorBaseline),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 2),

	StatusOK:    lipgloss.NewStyle().SetString("✓").Foreground(colorVariant),
	StatusError: lipgloss.NewStyle().SetString("✗").Foreground(colorBaseline),
}

// Chart descriptions for the completion listing, in production order
var artifactDescriptions = []struct{ name, description string }{
	{chart.NameInteractive, "Wakeup latency comparison"},
	{chart.NameStarvation, "Starvation prevention"},
	{chart.NameIO, "I/O responsiveness"},
	{chart.NameSummary, "Overall improvements"},
}

func printBanner(w io.Writer) {
	body := strings.Join([]string{
		styles.Title.Render("PALS VISUALIZATION GENERATOR"),
		"",
		"Comparison charts for:",
		"  1. Interactive latency (pals_int)",
		"  2. Starvation prevention (pals_aging)",
		"  3. I/O responsiveness (pals_cmp)",
		"  4. Overall summary",
	}, "\n")
	fmt.Fprintln(w, styles.Box.Render(body))
}

func printSubstituted(w io.Writer, scenarios []string) {
	for _, s := range scenarios {
		fmt.Fprintln(w, styles.Muted.Render(fmt.Sprintf("Using example data for demonstration (%s)", s)))
	}
}

// printReport lists each artifact and, when all succeeded, the completion
// banner with the generated files
func printReport(w io.Writer, report pipeline.Report) {
	fmt.Fprintln(w)
	for _, a := range report.Artifacts {
		if a.Err != nil {
			fmt.Fprintf(w, "%s %s %s\n", styles.StatusError, styles.Bold.Render(a.Name), styles.Error.Render(a.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s Saved: %s\n", styles.StatusOK, a.Path)
	}

	if len(report.Failed()) > 0 {
		return
	}

	written := make(map[string]string, len(report.Artifacts))
	for _, a := range report.Artifacts {
		written[a.Name] = filepath.Base(a.Path)
	}

	lines := []string{
		styles.Success.Render("✅ All visualizations generated successfully!"),
		"",
		"Output directory: " + report.OutputDir + string(filepath.Separator),
		"",
		"Generated files:",
	}
	for i, d := range artifactDescriptions {
		lines = append(lines, fmt.Sprintf("  %d. %s - %s", i+1, written[d.name], d.description))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Box.Render(strings.Join(lines, "\n")))
}

func printUploads(w io.Writer, bucket string, results []uploader.Result) {
	fmt.Fprintln(w)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s %s %s\n", styles.StatusError, filepath.Base(r.Path), styles.Error.Render(r.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%s Uploaded: gs://%s/%s %s\n", styles.StatusOK, bucket, r.Object,
			styles.Muted.Render(fmt.Sprintf("(%d bytes)", r.Bytes)))
	}
}
