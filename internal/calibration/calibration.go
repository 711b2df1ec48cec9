// Package calibration provides the reference tables that map reagent
// pad colors to chemical values, plus a registry of known strip
// products.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"strip-analyzer/pkg/colorutil"
)

// Status is the qualitative interpretation of a reading.
type Status string

const (
	StatusLow  Status = "low"
	StatusOK   Status = "ok"
	StatusHigh Status = "high"
)

// Parameter keys for the supported chemical parameters. Band order on
// a physical strip follows the order of a product's Parameters slice.
const (
	FreeChlorine    = "freeChlorine"
	PH              = "ph"
	TotalAlkalinity = "totalAlkalinity"
	TotalChlorine   = "totalChlorine"
	TotalHardness   = "totalHardness"
	CyanuricAcid    = "cyanuricAcid"
)

// Entry associates a value range with a reference pad color and a
// qualitative status. Entries are ordered ascending and contiguous;
// the last entry of a table is treated as open-ended above (values
// beyond its high bound still belong to it), with the stored high
// bound used only for midpoint math.
type Entry struct {
	RangeLow  float64       `json:"range_low"`
	RangeHigh float64       `json:"range_high"`
	Ref       colorutil.RGB `json:"ref"`
	Status    Status        `json:"status"`
}

// Midpoint returns the center of the entry's value range.
func (e Entry) Midpoint() float64 {
	return (e.RangeLow + e.RangeHigh) / 2
}

// Table holds the ordered calibration entries for one chemical
// parameter.
type Table struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Entries []Entry `json:"entries"`
}

// Validate checks that entries are ascending, contiguous, and
// non-overlapping. Nothing upstream guarantees this for tables loaded
// from files, so it runs at registration and load time.
func (t *Table) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("calibration table key is required")
	}
	if len(t.Entries) < 2 {
		return fmt.Errorf("%s: at least two calibration entries are required", t.Key)
	}
	for i, e := range t.Entries {
		if e.RangeHigh <= e.RangeLow {
			return fmt.Errorf("%s: entry %d has empty range [%g, %g]", t.Key, i, e.RangeLow, e.RangeHigh)
		}
		if e.Status != StatusLow && e.Status != StatusOK && e.Status != StatusHigh {
			return fmt.Errorf("%s: entry %d has unknown status %q", t.Key, i, e.Status)
		}
		if i > 0 && e.RangeLow != t.Entries[i-1].RangeHigh {
			return fmt.Errorf("%s: entries %d and %d are not contiguous (%g != %g)",
				t.Key, i-1, i, t.Entries[i-1].RangeHigh, e.RangeLow)
		}
	}
	return nil
}

// StatusFor returns the status of the entry whose range contains the
// value. Values above the top range belong to the top entry; values
// below the bottom range belong to the bottom entry.
func (t *Table) StatusFor(value float64) Status {
	for i, e := range t.Entries {
		if value < e.RangeHigh || i == len(t.Entries)-1 {
			return e.Status
		}
	}
	return t.Entries[len(t.Entries)-1].Status
}

// StripType identifies the physical product variant.
type StripType string

const (
	Strip6in1 StripType = "6-in-1"
	Strip3in1 StripType = "3-in-1"
)

// Product defines one strip product: which parameters its pads test
// for, in physical band order, and their calibration tables.
type Product struct {
	ProductName string    `json:"name"`
	Type        StripType `json:"type"`
	Parameters  []Table   `json:"parameters"`
}

// Name returns the product name.
func (p *Product) Name() string { return p.ProductName }

// BandCount returns the number of reagent pads on the strip.
func (p *Product) BandCount() int { return len(p.Parameters) }

// Keys returns the parameter keys in band order.
func (p *Product) Keys() []string {
	keys := make([]string, len(p.Parameters))
	for i := range p.Parameters {
		keys[i] = p.Parameters[i].Key
	}
	return keys
}

// Parameter returns the calibration table for a key.
func (p *Product) Parameter(key string) (*Table, bool) {
	for i := range p.Parameters {
		if p.Parameters[i].Key == key {
			return &p.Parameters[i], true
		}
	}
	return nil, false
}

// Validate checks the product definition and every table in it.
func (p *Product) Validate() error {
	if p.ProductName == "" {
		return fmt.Errorf("product name is required")
	}
	if len(p.Parameters) == 0 {
		return fmt.Errorf("%s: at least one parameter is required", p.ProductName)
	}
	seen := make(map[string]bool, len(p.Parameters))
	for i := range p.Parameters {
		t := &p.Parameters[i]
		if seen[t.Key] {
			return fmt.Errorf("%s: duplicate parameter %s", p.ProductName, t.Key)
		}
		seen[t.Key] = true
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s: %w", p.ProductName, err)
		}
	}
	return nil
}

// SaveToFile saves the product definition to a JSON file.
func (p *Product) SaveToFile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a product definition from a JSON file. Alternate
// strip brands ship as JSON files and validate on load.
func LoadFromFile(path string) (*Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid strip product: %w", err)
	}

	return &p, nil
}

// Registry of known strip products.
var registry = make(map[string]*Product)

// Register adds a product to the registry. It panics on an invalid
// definition; built-ins are registered at init and must be correct.
func Register(p *Product) {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("calibration: invalid product %q: %v", p.ProductName, err))
	}
	registry[p.ProductName] = p
}

// GetProduct returns a registered product by name, or nil.
func GetProduct(name string) *Product {
	return registry[name]
}

// ForType returns the built-in product for a strip type, or nil for an
// unknown type.
func ForType(t StripType) *Product {
	switch t {
	case Strip6in1:
		return GetProduct(builtin6Name)
	case Strip3in1:
		return GetProduct(builtin3Name)
	default:
		return nil
	}
}

// ListProducts returns all registered product names, sorted.
func ListProducts() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
