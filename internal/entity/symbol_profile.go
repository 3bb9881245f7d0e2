package entity

// SymbolProfile carries the per-symbol lookup data: news keywords and the
// parameters of the simulated sentiment distribution.
type SymbolProfile struct {
	Symbol     string   `yaml:"symbol" json:"symbol"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
	Base       float64  `yaml:"base" json:"base"`
	Volatility float64  `yaml:"volatility" json:"volatility"`
}
