package output

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Formatter renders a Report into bytes
type Formatter interface {
	Name() string
	Format(report Report) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(Report) ([]byte, error)
}

func (f FormatterFunc) Name() string                         { return f.ID }
func (f FormatterFunc) Format(report Report) ([]byte, error) { return f.F(report) }

// ConsoleFormatter prints aligned label/value tables
type ConsoleFormatter struct {
	// LabelWidth pads labels; 0 means 40
	LabelWidth int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report Report) ([]byte, error) {
	width := c.LabelWidth
	if width <= 0 {
		width = 40
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	title := strings.ToUpper(report.Title)
	if report.TaxYear != "" {
		title += " (" + report.TaxYear + ")"
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	for _, section := range report.Sections {
		sb.WriteString("\n" + section.Heading + "\n")
		sb.WriteString(strings.Repeat("-", len(section.Heading)) + "\n")
		for _, r := range section.Rows {
			sb.WriteString(fmt.Sprintf("  %-*s %s\n", width, r.Label+":", r.Value))
		}
	}
	return []byte(sb.String()), nil
}

// CSVFormatter writes one section,label,value record per row
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Label", "Value"}); err != nil {
		return nil, err
	}
	for _, section := range report.Sections {
		for _, r := range section.Rows {
			if err := w.Write([]string{section.Heading, r.Label, r.Value}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSONFormatter marshals the raw result when one is attached, otherwise the report
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report Report) ([]byte, error) {
	var v interface{} = report
	if report.Data != nil {
		v = report.Data
	}
	if j.Pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// YAMLFormatter writes the sectioned report as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(report Report) ([]byte, error) {
	return yaml.Marshal(report)
}

// HTMLFormatter renders a standalone HTML page
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

func (HTMLFormatter) Format(report Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"yaml":    YAMLFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"table":       "console",
	"text":        "console",
	"json-pretty": "json",
	"yml":         "yaml",
}

// GetFormatterByName returns the formatter for a name or alias, nil if unknown
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the canonical formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory, returning the filename.
func WriteFormatted(f Formatter, report Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("calcmymoney_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
