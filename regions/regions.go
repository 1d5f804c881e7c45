// Package regions holds the fixed reference data the bot works with:
// region codes, cities per region and supported currencies. The data is
// configuration, not business logic, so it lives in an embedded YAML file.
package regions

import (
	_ "embed"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var rawData []byte

type data struct {
	Regions    map[string]string   `yaml:"regions"`
	Cities     map[string][]string `yaml:"cities"`
	Currencies map[string]string   `yaml:"currencies"`
}

var loaded data

func init() {
	if err := yaml.Unmarshal(rawData, &loaded); err != nil {
		panic("regions: bad embedded data: " + err.Error())
	}
}

// Name returns the human-readable region name for a code, or the code
// itself when unknown.
func Name(code string) string {
	if n, ok := loaded.Regions[code]; ok {
		return n
	}
	return code
}

// Valid reports whether code is one of the known region codes.
func Valid(code string) bool {
	_, ok := loaded.Regions[code]
	return ok
}

// Codes returns all region codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(loaded.Regions))
	for c := range loaded.Regions {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Cities returns the city list for a region code.
func Cities(code string) []string {
	return loaded.Cities[code]
}

// CurrencyLabel returns the display label for a currency code.
func CurrencyLabel(code string) string {
	if l, ok := loaded.Currencies[code]; ok {
		return l
	}
	return code
}

// ValidCurrency reports whether code is a supported currency.
func ValidCurrency(code string) bool {
	_, ok := loaded.Currencies[code]
	return ok
}

// CurrencyCodes returns the supported currency codes in ascending order.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(loaded.Currencies))
	for c := range loaded.Currencies {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
