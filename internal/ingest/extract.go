package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// Candidate is a statement-shaped sentence pulled out of a feed document
type Candidate struct {
	Text      string // The candidate statement text
	Heuristic string // Which extraction rule matched (e.g. "keyword:deployed")
	Sentence  int    // Sentence index in the source (0-based)
}

// Sentence length bounds for a candidate worth registering
const (
	minSentenceLength = 30
	maxSentenceLength = 500
)

// StatementExtractor extracts assertion-like sentences from HTML
type StatementExtractor struct {
	keywords []string
}

// NewStatementExtractor creates an extractor with the default assertion
// keyword set
func NewStatementExtractor() *StatementExtractor {
	return &StatementExtractor{
		keywords: []string{
			"deployed", "completed", "verified", "confirmed", "operational",
			"is ready", "is live", "successful", "guaranteed", "according to",
			"established", "implemented", "released", "published",
		},
	}
}

// Extract extracts candidate statements from HTML content
func (e *StatementExtractor) Extract(htmlContent string) ([]Candidate, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	text := extractVisibleText(doc)
	sentences := splitSentences(text)

	var candidates []Candidate
	for i, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, keyword := range e.keywords {
			if strings.Contains(lower, keyword) {
				candidates = append(candidates, Candidate{
					Text:      strings.TrimSpace(sentence),
					Heuristic: "keyword:" + keyword,
					Sentence:  i,
				})
				break // one match per sentence
			}
		}
	}

	return dedupeCandidates(candidates), nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= minSentenceLength && len(sentence) <= maxSentenceLength {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= minSentenceLength && len(sentence) <= maxSentenceLength {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

// dedupeCandidates removes duplicate candidates
func dedupeCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]bool)
	var unique []Candidate
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}
