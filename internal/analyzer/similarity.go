package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// TF-IDF cosine similarity between a resume and a job description,
// mirroring a stop-word-filtered unigram+bigram vectorizer capped at
// 1000 features.

const maxFeatures = 1000

var tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9+#./-]*`)

var englishStopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {},
	"at": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {}, "can": {},
	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},
	"each": {}, "few": {}, "for": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"hers": {}, "him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {}, "more": {},
	"most": {}, "my": {}, "no": {}, "nor": {}, "not": {}, "now": {}, "of": {},
	"off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "ours": {}, "out": {}, "over": {}, "own": {}, "same": {},
	"she": {}, "should": {}, "so": {}, "some": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "theirs": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {}, "under": {}, "until": {}, "up": {},
	"very": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "who": {}, "whom": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {}, "yours": {},
}

// Similarity returns the cosine similarity between the two texts as a
// percentage rounded to 2 decimals. An empty job description yields 0.0.
func Similarity(resumeText, jobDescription string) float64 {
	if strings.TrimSpace(jobDescription) == "" {
		return 0.0
	}

	docs := [][]string{ngrams(resumeText), ngrams(jobDescription)}
	vocab := buildVocabulary(docs)
	if len(vocab) == 0 {
		return 0.0
	}

	vecA := tfidfVector(docs[0], docs, vocab)
	vecB := tfidfVector(docs[1], docs, vocab)

	sim := cosine(vecA, vecB)
	if math.IsNaN(sim) {
		return 0.0
	}
	return round2(sim * 100)
}

// ngrams tokenizes, drops stop words, and emits unigrams plus bigrams.
func ngrams(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}
	grams := make([]string, 0, len(tokens)*2)
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// buildVocabulary keeps the most frequent terms across both documents,
// capped at maxFeatures with alphabetical tie-breaking.
func buildVocabulary(docs [][]string) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, term := range doc {
			counts[term]++
		}
	}
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// tfidfVector computes smoothed idf weights (ln((1+n)/(1+df))+1) over
// raw term counts, matching the sklearn default.
func tfidfVector(doc []string, docs [][]string, vocab map[string]int) []float64 {
	tf := make([]float64, len(vocab))
	for _, term := range doc {
		if idx, ok := vocab[term]; ok {
			tf[idx]++
		}
	}

	n := float64(len(docs))
	vec := make([]float64, len(vocab))
	for term, idx := range vocab {
		df := 0.0
		for _, d := range docs {
			for _, t := range d {
				if t == term {
					df++
					break
				}
			}
		}
		idf := math.Log((1+n)/(1+df)) + 1
		vec[idx] = tf[idx] * idf
	}
	return vec
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
