package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/calculation"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/solver"
	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/taxyear"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildSalaryReport(t *testing.T) Report {
	t.Helper()
	cfg, err := taxyear.MustNewRegistry().Lookup("2025-26")
	require.NoError(t, err)
	result, err := calculation.CalculateDeductions(decimal.NewFromInt(60000), domain.DefaultDeductionOptions(), cfg, false)
	require.NoError(t, err)
	return SalaryReport(result)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"12570", "£12,570.00"},
		{"1234567.891", "£1,234,567.89"},
		{"-1234.5", "-£1,234.50"},
		{"999.999", "£1,000.00"},
		{"-0.001", "£0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)), tt.in)
	}
	assert.Equal(t, "£45,357", FormatCurrencyWhole(decimal.RequireFromString("45357.40")))
}

func TestFormatPercentages(t *testing.T) {
	assert.Equal(t, "20.00%", FormatPercentage(decimal.RequireFromString("0.2")))
	assert.Equal(t, "8.75%", FormatRate(decimal.RequireFromString("0.0875")))
	assert.Equal(t, "40%", FormatRate(decimal.RequireFromString("0.40")))
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(r Report) ([]byte, error) {
			called = true
			return []byte(r.Title), nil
		},
	}

	out, err := formatter.Format(Report{Title: "hello"})
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "hello", string(out))
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestConsoleFormatter(t *testing.T) {
	report := buildSalaryReport(t)
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "TAKE-HOME PAY (2025-26)")
	assert.Contains(t, content, "Net annual pay:")
	assert.Contains(t, content, "£45,357.40")
	assert.Contains(t, content, "Income Tax Bands")
	assert.Contains(t, content, "£11,432.00")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildSalaryReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "Section,Label,Value", lines[0])
	assert.Contains(t, string(out), "Summary,Income tax,\"£11,432.00\"")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildSalaryReport(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "45357.4", decoded["net_annual"])
	assert.Equal(t, "2025-26", decoded["tax_year"])

	// without raw data the sectioned report is used
	out, err = JSONFormatter{Pretty: true}.Format(Report{Title: "Plain"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"title\": \"Plain\"")
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildSalaryReport(t))
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "Take-Home Pay", decoded.Title)
	require.NotEmpty(t, decoded.Sections)
	assert.Equal(t, "Summary", decoded.Sections[0].Heading)
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildSalaryReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Take-Home Pay 2025-26</title>")
	assert.Contains(t, content, "£45,357.40")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "console", GetFormatterByName(" TEXT ").Name())
	assert.Equal(t, "yaml", GetFormatterByName("yml").Name())
	assert.Nil(t, GetFormatterByName("non-existent"), "Should return nil formatter for non-existent name")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "yaml"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "table")
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	formatter := FormatterFunc{ID: "test", F: func(Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(formatter, Report{}, "txt")
	require.NoError(t, err)
	assert.Contains(t, filename, "calcmymoney_report_")
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := FormatterFunc{ID: "broken", F: func(Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	_, err = WriteFormatted(failing, Report{}, "txt")
	assert.Error(t, err)
}

func TestReports(t *testing.T) {
	cfg, err := taxyear.MustNewRegistry().Lookup("2024-25")
	require.NoError(t, err)

	sd, err := calculation.CalculateStampDuty(decimal.NewFromInt(500000), cfg, calculation.StampDutyOptions{})
	require.NoError(t, err)
	r := StampDutyReport(cfg.Key, sd)
	assert.Equal(t, "Stamp Duty Land Tax", r.Title)
	assert.Equal(t, "£12,500.00", findRow(r, "Stamp duty"))

	mortgage, err := calculation.MortgagePayment(calculation.MortgageInput{
		Principal:         decimal.NewFromInt(200000),
		AnnualRatePercent: decimal.NewFromInt(4),
		TermYears:         25,
	})
	require.NoError(t, err)
	mr := MortgageReport(mortgage)
	assert.Equal(t, "£1,055.67", findRow(mr, "Monthly payment"))
	assert.Len(t, mr.Sections[1].Rows, 25)

	salary, err := calculation.CalculateDeductions(decimal.NewFromInt(60000), domain.DefaultDeductionOptions(), cfg, false)
	require.NoError(t, err)
	gr := GrossFromNetReport(solver.Result{Target: salary.NetAnnual, Gross: salary.GrossAnnual, NetAtGross: salary.NetAnnual, Status: solver.StatusConverged}, salary)
	assert.Equal(t, "Solver", gr.Sections[0].Heading)
	assert.Equal(t, "converged", findRow(gr, "Status"))

	years := TaxYearsReport([]string{"2024-25", "2025-26"}, "2025-26")
	assert.Equal(t, "default", findRow(years, "2025-26"))
}

func findRow(r Report, label string) string {
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			if row.Label == label {
				return row.Value
			}
		}
	}
	return ""
}
