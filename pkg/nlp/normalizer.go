package nlp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var (
	htmlTagPattern   = regexp.MustCompile(`<[^>]+>`)
	urlPattern       = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*(),]|%[0-9a-fA-F][0-9a-fA-F])+`)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// minTokenLength is the shortest token kept after cleaning.
const minTokenLength = 3

// Lemmatizer reduces a word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Normalizer cleans free text before it is scored.
type Normalizer struct {
	lemmatizer Lemmatizer
}

// NewNormalizer loads the English lemma dictionary.
func NewNormalizer() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}
	return &Normalizer{lemmatizer: lemmatizer}, nil
}

// NewNormalizerWithLemmatizer builds a Normalizer around a custom lemmatizer.
func NewNormalizerWithLemmatizer(l Lemmatizer) *Normalizer {
	return &Normalizer{lemmatizer: l}
}

// Normalize strips markup and URLs, drops non-letters, stop-words and short tokens,
// lemmatizes what remains and joins it with single spaces. If any stage fails the
// original text is returned untouched.
func (n *Normalizer) Normalize(text string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = text
		}
	}()

	stripped, err := stripHTML(text)
	if err != nil {
		return text
	}
	stripped = urlPattern.ReplaceAllString(stripped, "")
	stripped = nonLetterPattern.ReplaceAllString(stripped, "")
	stripped = strings.ToLower(stripped)

	tokens := strings.Fields(stripped)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsStopWord(token) || len(token) < minTokenLength {
			continue
		}
		if n.lemmatizer != nil {
			token = n.lemmatizer.Lemma(token)
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// stripHTML removes tags and decodes entities. Text without markup is returned as is.
func stripHTML(text string) (string, error) {
	if !strings.ContainsAny(text, "<&") {
		return text, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + text + "</body>"))
	if err != nil {
		return "", err
	}
	// goquery keeps the contents of unknown or broken tags as text; the pattern pass catches those.
	return htmlTagPattern.ReplaceAllString(doc.Text(), " "), nil
}
