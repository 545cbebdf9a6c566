package search

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Engine scores the catalog in memory. The catalog is small enough that a
// linear scan beats maintaining an index.
type Engine struct {
	mu   sync.RWMutex
	docs []Doc
}

func NewEngine(docs []Doc) *Engine {
	e := &Engine{}
	_ = e.Index(docs)
	return e
}

// Index replaces the searchable documents.
func (e *Engine) Index(docs []Doc) error {
	cp := make([]Doc, len(docs))
	copy(cp, docs)
	e.mu.Lock()
	e.docs = cp
	e.mu.Unlock()
	return nil
}

func (e *Engine) DocCount() (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.docs), nil
}

// Search ranks documents by weighted term matches across title,
// description and url.
func (e *Engine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []*Result{}, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var results []*Result
	for _, d := range e.docs {
		if r := e.searchDoc(d, terms); r != nil {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) searchDoc(d Doc, terms []string) *Result {
	var matches []Match
	var totalScore float64

	if s := scoreField(d.Title, terms, 4.0); s > 0 {
		matches = append(matches, Match{Field: "title", Text: d.Title, Weight: s})
		totalScore += s
	}
	if s := scoreField(d.Description, terms, 2.0); s > 0 {
		matches = append(matches, Match{Field: "description", Text: truncate(d.Description, 150), Weight: s})
		totalScore += s
	}
	if s := scoreField(d.URL, terms, 0.5); s > 0 {
		matches = append(matches, Match{Field: "url", Text: d.URL, Weight: s})
		totalScore += s
	}

	if totalScore == 0 {
		return nil
	}
	// Services are what the strip can center on; nudge them ahead of ties.
	if d.Kind == KindService {
		totalScore *= 1.05
	}
	return &Result{Doc: d, Score: totalScore, Matches: matches}
}

// scoreField calculates relevance score for a field
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		if strings.Contains(lower, term) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, term):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	tf := float64(matchedTerms) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// tokenize breaks text into lowercase searchable terms
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len(term) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if current.Len() > 1 {
		terms = append(terms, current.String())
	}

	return terms
}

func truncate(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen-1]) + "…"
}
