// Package classifier maps free-text transaction descriptions to category
// labels using lexical keyword matching. The keyword table is data, loaded
// from YAML or supplied in code, so a smarter strategy can be swapped in
// without touching the transaction store.
package classifier

import (
	"strings"
	"unicode"
)

// Classifier is the capability the transaction store depends on for
// auto-tagging. Implementations must be deterministic and must not fail:
// absence of a match is a normal outcome, reported as the Uncategorized
// sentinel.
type Classifier interface {
	Classify(description string) string
}

// Uncategorized is the sentinel label returned when no keyword matches.
const Uncategorized = "Uncategorized"

// Rule binds a set of keywords to one category label. Rules are evaluated
// in order; within a rule, keyword order is irrelevant.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// KeywordClassifier categorizes descriptions by matching normalized tokens
// against a keyword table. It is pure and deterministic given a fixed
// table.
type KeywordClassifier struct {
	rules  []Rule
	lookup map[string]string // normalized keyword -> category, first rule wins
}

// NewKeywordClassifier builds a classifier from an ordered rule list.
// Keywords are case-folded and lemmatized once, at construction.
func NewKeywordClassifier(rules []Rule) *KeywordClassifier {
	c := &KeywordClassifier{
		rules:  rules,
		lookup: make(map[string]string),
	}
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			for _, form := range keywordForms(keyword) {
				if _, exists := c.lookup[form]; !exists {
					c.lookup[form] = rule.Category
				}
			}
		}
	}
	return c
}

// Classify tokenizes and normalizes the description and returns the
// category of the first matching token. An empty description or a
// description with no matching token yields Uncategorized.
func (c *KeywordClassifier) Classify(description string) string {
	for _, token := range tokenize(description) {
		if category, ok := c.lookup[token]; ok {
			return category
		}
		if category, ok := c.lookup[lemmatize(token)]; ok {
			return category
		}
	}
	return Uncategorized
}

// Rules returns the rule table the classifier was built from.
func (c *KeywordClassifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// keywordForms returns the lookup forms for one configured keyword: the
// case-folded keyword itself and its lemma.
func keywordForms(keyword string) []string {
	folded := strings.ToLower(strings.TrimSpace(keyword))
	if folded == "" {
		return nil
	}
	lemma := lemmatize(folded)
	if lemma == folded {
		return []string{folded}
	}
	return []string{folded, lemma}
}

// tokenize splits text into case-folded word tokens, dropping punctuation
// and digits-only runs.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if strings.IndexFunc(f, unicode.IsLetter) >= 0 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// lemmatize reduces an English token to a canonical singular form using a
// small suffix-rule table. It deliberately stays conservative: a wrong
// reduction would misfile a transaction, a missed one only falls through
// to Uncategorized.
func lemmatize(token string) string {
	switch {
	case len(token) > 4 && strings.HasSuffix(token, "ies"):
		return strings.TrimSuffix(token, "ies") + "y"
	case len(token) > 4 && (strings.HasSuffix(token, "ches") ||
		strings.HasSuffix(token, "shes") ||
		strings.HasSuffix(token, "sses") ||
		strings.HasSuffix(token, "xes") ||
		strings.HasSuffix(token, "zes")):
		return strings.TrimSuffix(token, "es")
	case len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") && !strings.HasSuffix(token, "us"):
		return strings.TrimSuffix(token, "s")
	default:
		return token
	}
}
