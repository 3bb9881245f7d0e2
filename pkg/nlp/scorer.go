package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cdipaolo/sentiment"
	"github.com/jonreiter/govader"
)

const (
	// DefaultLexiconWeight and DefaultPolarityWeight blend the two scorers on the compound
	// axis. They are uncalibrated tuning values kept for behavioural compatibility.
	DefaultLexiconWeight  = 0.7
	DefaultPolarityWeight = 0.3
)

// ScoreComponents is the polarity vector of one piece of text.
type ScoreComponents struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// NeutralScore is returned whenever scoring is not possible.
var NeutralScore = ScoreComponents{Neutral: 1}

// LexiconAnalyzer produces a rule-based polarity vector.
type LexiconAnalyzer interface {
	PolarityScores(text string) ScoreComponents
}

// PolarityAnalyzer produces a single polarity value in [-1, 1].
type PolarityAnalyzer interface {
	Polarity(text string) float64
}

// Scorer blends a lexicon analyzer with a general polarity analyzer.
type Scorer struct {
	lexicon        LexiconAnalyzer
	polarity       PolarityAnalyzer
	lexiconWeight  float64
	polarityWeight float64
}

// ScorerOption customises a Scorer.
type ScorerOption func(*Scorer)

// WithWeights overrides the blend weights.
func WithWeights(lexiconWeight, polarityWeight float64) ScorerOption {
	return func(s *Scorer) {
		s.lexiconWeight = lexiconWeight
		s.polarityWeight = polarityWeight
	}
}

// NewScorer builds the default VADER + naive-Bayes scorer.
func NewScorer(opts ...ScorerOption) (*Scorer, error) {
	polarity, err := NewBayesPolarity()
	if err != nil {
		return nil, err
	}
	return NewScorerWith(NewVaderLexicon(), polarity, opts...), nil
}

// NewScorerWith builds a Scorer around the given analyzers.
func NewScorerWith(lexicon LexiconAnalyzer, polarity PolarityAnalyzer, opts ...ScorerOption) *Scorer {
	s := &Scorer{
		lexicon:        lexicon,
		polarity:       polarity,
		lexiconWeight:  DefaultLexiconWeight,
		polarityWeight: DefaultPolarityWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the blended polarity vector of text. Blank text or a failing analyzer
// yields NeutralScore.
func (s *Scorer) Score(text string) (score ScoreComponents) {
	if strings.TrimSpace(text) == "" {
		return NeutralScore
	}
	defer func() {
		if r := recover(); r != nil {
			score = NeutralScore
		}
	}()

	lex := s.lexicon.PolarityScores(text)
	polarity := s.polarity.Polarity(text)

	return ScoreComponents{
		Compound: s.lexiconWeight*lex.Compound + s.polarityWeight*polarity,
		Positive: lex.Positive,
		Negative: lex.Negative,
		Neutral:  lex.Neutral,
	}
}

type vaderLexicon struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderLexicon returns the VADER rule-based analyzer.
func NewVaderLexicon() LexiconAnalyzer {
	return &vaderLexicon{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderLexicon) PolarityScores(text string) ScoreComponents {
	s := v.analyzer.PolarityScores(text)
	return ScoreComponents{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

// DefaultMinConfidence is the lowest naive-Bayes confidence, scaled to [0, 1], at which a
// word counts towards the polarity.
const DefaultMinConfidence = 0.2

// WordClassifier returns the predicted class (1 positive, 0 negative) of a word and the
// probability of that class.
type WordClassifier interface {
	Probability(word string) (class uint8, probability float64)
}

type bayesPolarity struct {
	classifier    WordClassifier
	isOpinion     func(word string) bool
	minConfidence float64
}

// NewBayesPolarity loads the pre-trained naive-Bayes model shipped with the library.
// Only words that VADER rates as opinion words are scored, so factual text stays at 0.
func NewBayesPolarity() (PolarityAnalyzer, error) {
	models, err := sentiment.Restore()
	if err != nil {
		return nil, fmt.Errorf("failed to restore sentiment model: %w", err)
	}
	model, ok := models[sentiment.English]
	if !ok || model == nil {
		return nil, fmt.Errorf("sentiment model has no English classifier")
	}
	vader := govader.NewSentimentIntensityAnalyzer()
	isOpinion := func(word string) bool {
		return vader.PolarityScores(word).Compound != 0
	}
	return NewBayesPolarityWith(model, isOpinion, DefaultMinConfidence), nil
}

// NewBayesPolarityWith builds the polarity analyzer around a word classifier and an
// opinion-word filter. A nil filter accepts every word.
func NewBayesPolarityWith(classifier WordClassifier, isOpinion func(word string) bool, minConfidence float64) PolarityAnalyzer {
	return &bayesPolarity{classifier: classifier, isOpinion: isOpinion, minConfidence: minConfidence}
}

// Polarity averages the signed confidence of the opinion words in text. Words without
// an opinion, or with a confidence below minConfidence, do not count. Text without a
// counted word has polarity 0.
func (b *bayesPolarity) Polarity(text string) float64 {
	var sum float64
	var counted int
	for _, word := range tokenize(text) {
		if b.isOpinion != nil && !b.isOpinion(word) {
			continue
		}
		class, probability := b.classifier.Probability(word)
		confidence := 2*probability - 1
		if confidence < b.minConfidence {
			continue
		}
		if class == 0 {
			confidence = -confidence
		}
		sum += confidence
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
