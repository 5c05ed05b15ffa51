package taxyear

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mkhegde/CalcMyMoney.co.uk-site-sub003/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultKey is the tax year used when callers do not choose one
const DefaultKey = "2025-26"

// ErrUnknownTaxYear is returned by Lookup for a key with no configuration
var ErrUnknownTaxYear = errors.New("unknown tax year")

//go:embed data/*.yaml
var builtin embed.FS

// Registry is the set of known tax years keyed by "YYYY-YY".
type Registry struct {
	years      map[string]*domain.TaxYearConfig
	defaultKey string
}

// NewRegistry creates a registry holding the built-in tax years
func NewRegistry() (*Registry, error) {
	r := &Registry{
		years:      make(map[string]*domain.TaxYearConfig),
		defaultKey: DefaultKey,
	}

	entries, err := builtin.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in tax years: %w", err)
	}
	for _, entry := range entries {
		name := path.Join("data", entry.Name())
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := r.add(data, name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for package-level defaults and tests; it
// panics only if the embedded catalogue is broken.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadFile adds or replaces tax years from a YAML file. The file may hold a
// single tax year document or a list of them under "tax_years".
func (r *Registry) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return r.add(data, filename)
}

func (r *Registry) add(data []byte, source string) error {
	var catalogue struct {
		TaxYears []domain.TaxYearConfig `yaml:"tax_years"`
	}
	if err := yaml.Unmarshal(data, &catalogue); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", source, err)
	}
	configs := catalogue.TaxYears
	if len(configs) == 0 {
		var single domain.TaxYearConfig
		if err := yaml.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("failed to parse YAML in %s: %w", source, err)
		}
		configs = []domain.TaxYearConfig{single}
	}

	for i := range configs {
		cfg := &configs[i]
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("tax year %q in %s validation failed: %w", cfg.Key, source, err)
		}
		r.years[cfg.Key] = cfg
	}
	return nil
}

// Lookup returns a private copy of the configuration for a tax year key.
// An empty key selects the default year.
func (r *Registry) Lookup(key string) (*domain.TaxYearConfig, error) {
	key = normalizeKey(key)
	if key == "" {
		key = r.defaultKey
	}
	cfg, ok := r.years[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownTaxYear, key, strings.Join(r.Years(), ", "))
	}
	return cfg.Clone(), nil
}

// Default returns the default tax year configuration
func (r *Registry) Default() *domain.TaxYearConfig {
	cfg, err := r.Lookup(r.defaultKey)
	if err != nil {
		panic(err)
	}
	return cfg
}

// SetDefault changes the year Lookup("") resolves to
func (r *Registry) SetDefault(key string) error {
	key = normalizeKey(key)
	if _, ok := r.years[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTaxYear, key)
	}
	r.defaultKey = key
	return nil
}

// DefaultKey returns the key Lookup("") resolves to
func (r *Registry) DefaultKey() string {
	return r.defaultKey
}

// Years returns the known keys in ascending order
func (r *Registry) Years() []string {
	keys := make([]string, 0, len(r.years))
	for k := range r.years {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeKey accepts "2025/26" and "2025-2026" as well as "2025-26"
func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "/", "-"))
	if len(key) == 9 && key[4] == '-' {
		key = key[:5] + key[7:]
	}
	return key
}
