package coherence

import (
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Confidence multipliers, applied only when the corresponding rule fails.
// Confidence is the strict product of triggered multipliers, so every value
// sits in (0, 1].
const (
	shortStatementMultiplier   = 0.5
	longStatementMultiplier    = 0.8
	missingCategoryMultiplier  = 0.6
	poorTagCoherenceMultiplier = 0.95
	noTagsMultiplier           = 0.9
	tooManyTagsMultiplier      = 0.7
	duplicateTagMultiplier     = 0.8
	emptyTagMultiplier         = 0.5
	missingTimestampMultiplier = 0.9
	isolationMultiplier        = 0.95

	maxTagCount = 10

	// Tags are coherent while at least this fraction shares a token with
	// the category label.
	tagCoherenceFloor = 0.5
)

// ruleResult is one evaluated rule: a pass/fail plus the multiplier and
// finding used when it failed.
type ruleResult struct {
	Name       string
	Passed     bool
	Multiplier float64
	Message    string
}

func passed(name string) ruleResult {
	return ruleResult{Name: name, Passed: true, Multiplier: 1.0}
}

func failed(name string, multiplier float64, message string) ruleResult {
	return ruleResult{Name: name, Multiplier: multiplier, Message: message}
}

// evaluateRules applies the four coherence rules plus the isolation penalty.
// The tag rule can contribute several independent penalties; each shows up
// as its own result so findings stay one message per failure.
func evaluateRules(st model.Statement, siblingCount int) []ruleResult {
	results := []ruleResult{
		checkStatementLength(st),
		checkCategory(st),
	}
	results = append(results, checkTags(st)...)
	results = append(results, checkTimestamp(st))

	if siblingCount == 0 {
		results = append(results, failed("category_isolation", isolationMultiplier,
			fmt.Sprintf("no other statements recorded in category %q", st.Category)))
	} else {
		results = append(results, passed("category_isolation"))
	}
	return results
}

func checkStatementLength(st model.Statement) ruleResult {
	n := len(st.Text)
	switch {
	case n < model.StatementMinLength:
		return failed("statement_length", shortStatementMultiplier,
			fmt.Sprintf("statement too short (min %d characters)", model.StatementMinLength))
	case n > model.StatementMaxLength:
		return failed("statement_length", longStatementMultiplier,
			fmt.Sprintf("statement too long (max %d characters)", model.StatementMaxLength))
	default:
		return passed("statement_length")
	}
}

func checkCategory(st model.Statement) ruleResult {
	if strings.TrimSpace(st.Category) == "" {
		return failed("category_validity", missingCategoryMultiplier, "category is missing or blank")
	}
	return passed("category_validity")
}

func checkTags(st model.Statement) []ruleResult {
	var results []ruleResult

	if score := tagCoherenceScore(st); score < tagCoherenceFloor {
		results = append(results, failed("tag_coherence", poorTagCoherenceMultiplier,
			fmt.Sprintf("tags poorly coherent with category (score %.2f)", score)))
	} else {
		results = append(results, passed("tag_coherence"))
	}

	if len(st.Tags) == 0 {
		results = append(results, failed("tag_presence", noTagsMultiplier,
			"no tags present - affects discoverability"))
		return results
	}
	results = append(results, passed("tag_presence"))

	if len(st.Tags) > maxTagCount {
		results = append(results, failed("tag_count", tooManyTagsMultiplier,
			fmt.Sprintf("too many tags (%d, max %d)", len(st.Tags), maxTagCount)))
	} else {
		results = append(results, passed("tag_count"))
	}

	seen := make(map[string]bool, len(st.Tags))
	duplicate := false
	empty := false
	for _, tag := range st.Tags {
		if tag == "" {
			empty = true
		}
		if seen[tag] {
			duplicate = true
		}
		seen[tag] = true
	}
	if duplicate {
		results = append(results, failed("tag_uniqueness", duplicateTagMultiplier, "duplicate tags present"))
	} else {
		results = append(results, passed("tag_uniqueness"))
	}
	if empty {
		results = append(results, failed("tag_content", emptyTagMultiplier, "empty tag present"))
	} else {
		results = append(results, passed("tag_content"))
	}
	return results
}

func checkTimestamp(st model.Statement) ruleResult {
	if st.Timestamp.IsZero() {
		return failed("timestamp_presence", missingTimestampMultiplier, "timestamp is missing")
	}
	return passed("timestamp_presence")
}

// tagCoherenceScore is the fraction of tags sharing a token with the
// category label. When no tags exist or the category carries no tokens,
// no overlap is possible and the score contributes no penalty.
func tagCoherenceScore(st model.Statement) float64 {
	categoryTokens := tokenize(st.Category)
	if len(st.Tags) == 0 || len(categoryTokens) == 0 {
		return 1.0
	}

	inCategory := make(map[string]bool, len(categoryTokens))
	for _, tok := range categoryTokens {
		inCategory[tok] = true
	}

	matched := 0
	for _, tag := range st.Tags {
		for _, tok := range tokenize(tag) {
			if inCategory[tok] {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(st.Tags))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
