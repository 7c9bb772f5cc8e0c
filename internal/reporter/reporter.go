package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fenilsonani/autosorter/internal/daemon"
	"github.com/fenilsonani/autosorter/internal/mover"
	"github.com/fenilsonani/autosorter/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat returns the OutputFormat named by s
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report renders the outcome of a pass
func (r *Reporter) Report(result *daemon.PassResult) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	case FormatSummary:
		return r.reportSummary(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// categoryCount is the number of files and bytes moved into one category
type categoryCount struct {
	Category string
	Files    int
	Size     int64
}

func byCategory(moved []mover.Result) []categoryCount {
	index := make(map[string]int)
	var counts []categoryCount
	for _, m := range moved {
		i, ok := index[m.Category]
		if !ok {
			i = len(counts)
			index[m.Category] = i
			counts = append(counts, categoryCount{Category: m.Category})
		}
		counts[i].Files++
		counts[i].Size += m.Size
	}
	sort.Slice(counts, func(a, b int) bool { return counts[a].Category < counts[b].Category })
	return counts
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(result *daemon.PassResult) error {
	fmt.Fprintf(r.writer, "=== Sort Summary ===\n")
	fmt.Fprintf(r.writer, "Folder: %s\n", result.Dir)

	if result.Err != nil {
		fmt.Fprintf(r.writer, "Error: %v\n", result.Err)
		return nil
	}

	fmt.Fprintf(r.writer, "Eligible Files: %d\n", result.Eligible)
	fmt.Fprintf(r.writer, "Moved: %d files, %s\n", len(result.Moved), utils.FormatBytes(result.MovedBytes()))

	if counts := byCategory(result.Moved); len(counts) > 0 {
		fmt.Fprintf(r.writer, "\nBreakdown by Category:\n")
		for _, c := range counts {
			fmt.Fprintf(r.writer, "  %s: %d files, %s\n", c.Category, c.Files, utils.FormatBytes(c.Size))
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintf(r.writer, "\nFailed: %d\n", len(result.Failed))
		fmt.Fprint(r.writer, mover.FormatErrorSummary(result.Failed))
	}

	return nil
}

// reportTable generates a table report
func (r *Reporter) reportTable(result *daemon.PassResult) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Category", "Destination", "Size"})

	for _, m := range result.Moved {
		t.AppendRow(table.Row{
			shorten(m.Source, 50),
			m.Category,
			m.Name,
			utils.FormatBytes(m.Size),
		})
	}
	for _, f := range result.Failed {
		t.AppendRow(table.Row{shorten(f.Path, 50), "-", f.UserMessage(), "-"})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d moved, %d failed", len(result.Moved), len(result.Failed)),
		"", "",
		utils.FormatBytes(result.MovedBytes()),
	})
	t.Render()

	if result.Err != nil {
		fmt.Fprintf(r.writer, "Error: %v\n", result.Err)
	}
	return nil
}

func shorten(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-(max-3):]
}

// movedFile is the serialized form of one move
type movedFile struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Category    string `json:"category" yaml:"category"`
	Size        int64  `json:"size" yaml:"size"`
}

// failedFile is the serialized form of one failed move
type failedFile struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
	Error  string `json:"error" yaml:"error"`
}

// passReport is the serialized form of a pass
type passReport struct {
	Pass               string       `json:"pass" yaml:"pass"`
	Timestamp          string       `json:"timestamp" yaml:"timestamp"`
	Duration           string       `json:"duration" yaml:"duration"`
	Dir                string       `json:"dir" yaml:"dir"`
	Eligible           int          `json:"eligible" yaml:"eligible"`
	MovedSize          int64        `json:"moved_size" yaml:"moved_size"`
	MovedSizeFormatted string       `json:"moved_size_formatted" yaml:"moved_size_formatted"`
	Moved              []movedFile  `json:"moved" yaml:"moved"`
	Failed             []failedFile `json:"failed" yaml:"failed"`
	Error              string       `json:"error,omitempty" yaml:"error,omitempty"`
}

func newPassReport(result *daemon.PassResult) passReport {
	report := passReport{
		Pass:               result.ID,
		Timestamp:          result.Started.Format(time.RFC3339),
		Duration:           result.Duration.Round(time.Millisecond).String(),
		Dir:                result.Dir,
		Eligible:           result.Eligible,
		MovedSize:          result.MovedBytes(),
		MovedSizeFormatted: utils.FormatBytes(result.MovedBytes()),
		Moved:              make([]movedFile, 0, len(result.Moved)),
		Failed:             make([]failedFile, 0, len(result.Failed)),
	}

	for _, m := range result.Moved {
		report.Moved = append(report.Moved, movedFile{
			Source:      m.Source,
			Destination: m.Destination,
			Category:    m.Category,
			Size:        m.Size,
		})
	}
	for _, f := range result.Failed {
		report.Failed = append(report.Failed, failedFile{
			Path:   f.Path,
			Reason: f.Reason.String(),
			Error:  f.Original.Error(),
		})
	}
	if result.Err != nil {
		report.Error = result.Err.Error()
	}

	return report
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(result *daemon.PassResult) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newPassReport(result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(result *daemon.PassResult) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(newPassReport(result))
}

// SaveToFile saves the report to a file
func SaveToFile(result *daemon.PassResult, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(result)
}
