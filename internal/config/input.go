package config

import (
	"fmt"
	"os"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PensionProfile is the pension part of a salary profile
type PensionProfile struct {
	Mode  string          `yaml:"mode"`
	Value decimal.Decimal `yaml:"value"`
}

// Profile is a saved salary calculation, loaded from YAML so the CLI can be
// pointed at a file instead of repeating flags.
type Profile struct {
	TaxYear         string          `yaml:"tax_year"`
	Region          string          `yaml:"region"`
	GrossSalary     decimal.Decimal `yaml:"gross_salary"`
	TargetNet       decimal.Decimal `yaml:"target_net"`
	Pension         PensionProfile  `yaml:"pension"`
	StudentLoan     string          `yaml:"student_loan"`
	SEISInvestment  decimal.Decimal `yaml:"seis_investment"`
	EISInvestment   decimal.Decimal `yaml:"eis_investment"`
	OtherAllowances decimal.Decimal `yaml:"other_allowances"`
	TaxCode         string          `yaml:"tax_code"`
	Advanced        bool            `yaml:"advanced"`
}

// InputParser handles parsing of profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a profile from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a profile
func (ip *InputParser) Parse(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &profile, nil
}

// ValidateProfile checks amounts are non-negative and enums are known
func (ip *InputParser) ValidateProfile(p *Profile) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross_salary", p.GrossSalary},
		{"target_net", p.TargetNet},
		{"pension.value", p.Pension.Value},
		{"seis_investment", p.SEISInvestment},
		{"eis_investment", p.EISInvestment},
		{"other_allowances", p.OtherAllowances},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}
	if !p.GrossSalary.IsZero() && !p.TargetNet.IsZero() {
		return fmt.Errorf("set gross_salary or target_net, not both")
	}
	_, err := p.DeductionOptions()
	return err
}

// DeductionOptions converts the profile into engine options
func (p *Profile) DeductionOptions() (domain.DeductionOptions, error) {
	options := domain.DefaultDeductionOptions()

	region, ok := domain.ParseRegion(p.Region)
	if !ok {
		return options, fmt.Errorf("unknown region %q", p.Region)
	}
	options.Region = region

	switch p.Pension.Mode {
	case "", string(domain.PensionPercentage):
		options.Pension = domain.PensionContribution{Mode: domain.PensionPercentage, Value: p.Pension.Value}
	case string(domain.PensionFixedMonthly):
		options.Pension = domain.PensionContribution{Mode: domain.PensionFixedMonthly, Value: p.Pension.Value}
	default:
		return options, fmt.Errorf("unknown pension mode %q", p.Pension.Mode)
	}
	if options.Pension.Mode == domain.PensionPercentage && options.Pension.Value.GreaterThan(decimal.NewFromInt(100)) {
		return options, fmt.Errorf("pension percentage %s exceeds 100", options.Pension.Value)
	}

	if p.StudentLoan != "" {
		plan := domain.StudentLoanPlan(p.StudentLoan)
		if !plan.Valid() {
			return options, fmt.Errorf("unknown student loan plan %q", p.StudentLoan)
		}
		options.StudentLoan = plan
	}

	options.SEISInvestment = p.SEISInvestment
	options.EISInvestment = p.EISInvestment
	options.OtherAllowances = p.OtherAllowances
	options.TaxCode = p.TaxCode
	return options, nil
}
