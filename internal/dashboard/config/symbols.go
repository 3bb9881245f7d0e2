package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang-stock-sentiment/internal/entity"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBase and DefaultVolatility parameterise simulated sentiment for unknown symbols.
	DefaultBase       = 0.0
	DefaultVolatility = 0.2
)

// DefaultSymbolProfiles is used when no symbols file is present.
var DefaultSymbolProfiles = []entity.SymbolProfile{
	{Symbol: "AAPL", Keywords: []string{"apple", "iphone", "ios", "mac", "tim cook", "cupertino"}, Base: 0.1, Volatility: 0.2},
	{Symbol: "GOOGL", Keywords: []string{"google", "alphabet", "android", "chrome", "sundar pichai"}, Base: 0.05, Volatility: 0.15},
	{Symbol: "MSFT", Keywords: []string{"microsoft", "windows", "azure", "satya nadella", "office"}, Base: 0.15, Volatility: 0.1},
	{Symbol: "AMZN", Keywords: []string{"amazon", "aws", "prime", "jeff bezos", "andy jassy"}, Base: 0.0, Volatility: 0.25},
	{Symbol: "TSLA", Keywords: []string{"tesla", "elon musk", "electric vehicle", "ev", "model"}, Base: 0.05, Volatility: 0.4},
	{Symbol: "META", Keywords: []string{"meta", "facebook", "instagram", "whatsapp", "mark zuckerberg"}, Base: -0.05, Volatility: 0.3},
	{Symbol: "NVDA", Keywords: []string{"nvidia", "gpu", "graphics", "jensen huang", "cuda"}, Base: 0.2, Volatility: 0.2},
	{Symbol: "NFLX", Keywords: []string{"netflix", "streaming", "reed hastings", "content"}, Base: 0.0, Volatility: 0.2},
}

type symbolsFile struct {
	Symbols []entity.SymbolProfile `yaml:"symbols"`
}

// SymbolTable resolves symbol profiles, falling back to a default profile for
// symbols it does not know.
type SymbolTable struct {
	profiles map[string]entity.SymbolProfile
}

// NewSymbolTable indexes profiles by upper-cased symbol.
func NewSymbolTable(profiles []entity.SymbolProfile) *SymbolTable {
	t := &SymbolTable{profiles: make(map[string]entity.SymbolProfile, len(profiles))}
	for _, p := range profiles {
		p.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
		if p.Symbol == "" {
			continue
		}
		t.profiles[p.Symbol] = p
	}
	return t
}

// LoadSymbolTable reads the symbols YAML file. A missing file yields the built-in table.
func LoadSymbolTable(path string) (*SymbolTable, error) {
	if path == "" {
		return NewSymbolTable(DefaultSymbolProfiles), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSymbolTable(DefaultSymbolProfiles), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols file: %w", err)
	}
	return ParseSymbolTable(data)
}

// ParseSymbolTable decodes a symbols YAML document.
func ParseSymbolTable(data []byte) (*SymbolTable, error) {
	var file symbolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse symbols file: %w", err)
	}
	for i, p := range file.Symbols {
		if p.Volatility < 0 {
			return nil, fmt.Errorf("symbol %s: volatility must not be negative", p.Symbol)
		}
		if p.Symbol == "" {
			return nil, fmt.Errorf("symbols[%d]: symbol is required", i)
		}
	}
	return NewSymbolTable(file.Symbols), nil
}

// Profile returns the profile of symbol. Unknown symbols get the bare symbol as their
// only keyword and the default distribution.
func (t *SymbolTable) Profile(symbol string) entity.SymbolProfile {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if p, ok := t.profiles[symbol]; ok {
		if len(p.Keywords) == 0 {
			p.Keywords = []string{symbol}
		}
		return p
	}
	return entity.SymbolProfile{
		Symbol:     symbol,
		Keywords:   []string{symbol},
		Base:       DefaultBase,
		Volatility: DefaultVolatility,
	}
}

// Keywords returns the news keywords of symbol.
func (t *SymbolTable) Keywords(symbol string) []string {
	return t.Profile(symbol).Keywords
}
