// Package tokenizer turns raw text into an ordered token stream and, from
// it, bigrams and trigrams, filtering stopwords and short tokens as it
// goes. The stopword set and matching rules are fixed so that two runs on
// identical input always produce identical output.
package tokenizer

import (
	"regexp"
	"strings"

	"github.com/bad33ndj3/corpus-reduce/internal/domain"
)

// minTokenLength is the minimum surviving token length.
const minTokenLength = 2

// tokenRe matches a letter followed by any number of letters, digits, or
// hyphens, case-insensitive over the Latin range.
var tokenRe = regexp.MustCompile(`[A-Za-z][A-Za-z0-9-]*`)

// stopwords is the fixed enumerated stopword set, case-folded. It is a
// process-wide immutable value.
var stopwords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {}, "in": {},
	"that": {}, "have": {}, "i": {}, "it": {}, "for": {}, "not": {}, "on": {},
	"with": {}, "he": {}, "as": {}, "you": {}, "do": {}, "at": {}, "this": {},
	"but": {}, "his": {}, "by": {}, "from": {}, "they": {}, "we": {}, "say": {},
	"her": {}, "she": {}, "or": {}, "an": {}, "will": {}, "my": {}, "one": {},
	"all": {}, "would": {}, "there": {}, "their": {}, "what": {}, "so": {},
	"up": {}, "out": {}, "if": {}, "about": {}, "who": {}, "get": {}, "which": {},
	"go": {}, "me": {}, "when": {}, "make": {}, "can": {}, "like": {}, "time": {},
	"no": {}, "just": {}, "him": {}, "know": {}, "take": {}, "people": {},
	"into": {}, "year": {}, "your": {}, "good": {}, "some": {}, "could": {},
	"them": {}, "see": {}, "other": {}, "than": {}, "then": {}, "now": {},
	"look": {}, "only": {}, "come": {}, "its": {}, "over": {}, "think": {},
	"also": {}, "back": {}, "after": {}, "use": {}, "two": {}, "how": {},
	"our": {}, "work": {}, "first": {}, "well": {}, "way": {}, "even": {},
	"new": {}, "want": {}, "because": {}, "any": {}, "these": {}, "give": {},
	"day": {}, "most": {}, "us": {}, "is": {}, "was": {}, "are": {}, "been": {},
	"has": {}, "had": {}, "were": {}, "said": {}, "did": {}, "having": {},
	"may": {}, "should": {}, "does": {}, "am": {},
}

// IsStopword reports whether term is in the fixed stopword set.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}

// Tokenize lowercases text and extracts the surviving unigram tokens in
// order; Bigrams, Trigrams and Sequence derive n-grams from its output.
// Offsets refer to the start of each match in the original
// (pre-lowercase) text.
func Tokenize(text string) []domain.TokenOccurrence {
	lower := strings.ToLower(text)
	matches := tokenRe.FindAllStringIndex(lower, -1)

	unigrams := make([]domain.TokenOccurrence, 0, len(matches))
	for _, m := range matches {
		term := lower[m[0]:m[1]]
		if len(term) < minTokenLength {
			continue
		}
		if IsStopword(term) {
			continue
		}
		unigrams = append(unigrams, domain.TokenOccurrence{Term: term, Offset: m[0]})
	}
	return unigrams
}

// Bigrams concatenates consecutive surviving unigrams with a single
// space. The bigram's position is its first token's offset. N-grams do
// not re-apply stopword filtering.
func Bigrams(unigrams []domain.TokenOccurrence) []domain.TokenOccurrence {
	if len(unigrams) < 2 {
		return nil
	}
	out := make([]domain.TokenOccurrence, 0, len(unigrams)-1)
	for i := 0; i+1 < len(unigrams); i++ {
		out = append(out, domain.TokenOccurrence{
			Term:   unigrams[i].Term + " " + unigrams[i+1].Term,
			Offset: unigrams[i].Offset,
		})
	}
	return out
}

// Trigrams concatenates three consecutive surviving unigrams with single
// spaces, analogous to Bigrams.
func Trigrams(unigrams []domain.TokenOccurrence) []domain.TokenOccurrence {
	if len(unigrams) < 3 {
		return nil
	}
	out := make([]domain.TokenOccurrence, 0, len(unigrams)-2)
	for i := 0; i+2 < len(unigrams); i++ {
		out = append(out, domain.TokenOccurrence{
			Term:   unigrams[i].Term + " " + unigrams[i+1].Term + " " + unigrams[i+2].Term,
			Offset: unigrams[i].Offset,
		})
	}
	return out
}

// Sequence builds the single positional sequence the co-occurrence
// indexer windows over: unigrams first, then bigrams, then trigrams, kept
// stable across runs.
func Sequence(text string) []domain.TokenOccurrence {
	uni := Tokenize(text)
	bi := Bigrams(uni)
	tri := Trigrams(uni)

	seq := make([]domain.TokenOccurrence, 0, len(uni)+len(bi)+len(tri))
	seq = append(seq, uni...)
	seq = append(seq, bi...)
	seq = append(seq, tri...)
	return seq
}

// Terms extracts the deduplicated, stopword-filtered term set used when
// tokenizing a user's question (unigrams + bigrams + trigrams).
func Terms(text string) []string {
	seq := Sequence(text)
	seen := make(map[string]struct{}, len(seq))
	out := make([]string, 0, len(seq))
	for _, t := range seq {
		if _, ok := seen[t.Term]; ok {
			continue
		}
		seen[t.Term] = struct{}{}
		out = append(out, t.Term)
	}
	return out
}
