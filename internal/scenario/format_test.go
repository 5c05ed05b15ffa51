package scenario

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func sampleIR35(t *testing.T) *IR35Comparison {
	t.Helper()
	result, err := CompareIR35(IR35Input{ContractIncome: dec("100000"), UmbrellaMargin: dec("1000")}, loadTaxYear(t, "2025-26"))
	if err != nil {
		t.Fatalf("CompareIR35: %v", err)
	}
	return result
}

func sampleBRRRR(t *testing.T) *BRRRRAnalysis {
	t.Helper()
	result, err := AnalyzeBRRRR(baseBRRRR(), loadTaxYear(t, "2024-25"))
	if err != nil {
		t.Fatalf("AnalyzeBRRRR: %v", err)
	}
	return result
}

func TestTableFormatter_FormatIR35(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.FormatIR35(sampleIR35(t))

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	for _, want := range []string{
		"IR35 COMPARISON",
		"Tax Year: 2025-26",
		"Inside IR35",
		"Outside IR35",
		"£66,543.15",
		"£60,866.10",
		"Outside IR35 keeps £5,677.06 more a year",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestTableFormatter_FormatBRRRR(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.FormatBRRRR(sampleBRRRR(t))

	for _, want := range []string{
		"BRRRR ANALYSIS",
		"REFINANCE AND HOLD",
		"All Capital Returned",
		"£192,500.00",
		"RECOMMENDATION: Refinance and hold",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestCSVFormatter_FormatIR35(t *testing.T) {
	formatter := &CSVFormatter{}
	out, err := formatter.FormatIR35(sampleIR35(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 14 {
		t.Fatalf("Expected 14 records, got %d", len(records))
	}
	if records[0][0] != "Item" || records[0][2] != "Outside IR35" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	last := records[len(records)-1]
	if last[0] != "Take Home" || last[2] != "66543.15" {
		t.Errorf("Unexpected take home row: %v", last)
	}
}

func TestCSVFormatter_FormatBRRRR(t *testing.T) {
	formatter := &CSVFormatter{}
	out, err := formatter.FormatBRRRR(sampleBRRRR(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Cash On Cash ROI,All Capital Returned") {
		t.Error("Expected ROI marker in CSV")
	}
	if !strings.Contains(out, "Money Left In Deal,0.00") {
		t.Error("Expected zero money left in CSV")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{Pretty: false}
	out, err := formatter.Format(sampleBRRRR(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["cash_on_cash_roi"] != AllCapitalReturnedText {
		t.Errorf("Expected ROI marker, got %v", decoded["cash_on_cash_roi"])
	}

	pretty := &JSONFormatter{Pretty: true}
	out, err = pretty.Format(sampleIR35(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n  \"better\": \"outside\"") {
		t.Error("Expected indented JSON with better option")
	}
}
