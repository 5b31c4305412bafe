package analyzer

import "testing"

func TestSimilarityIdenticalTexts(t *testing.T) {
	text := "senior software engineer with python and kubernetes experience"
	got := Similarity(text, text)
	if got != 100.0 {
		t.Fatalf("Similarity = %v, want 100.0", got)
	}
}

func TestSimilarityEmptyJobDescription(t *testing.T) {
	if got := Similarity("some resume text", ""); got != 0.0 {
		t.Fatalf("Similarity = %v, want 0.0", got)
	}
}

func TestSimilarityDisjointTexts(t *testing.T) {
	got := Similarity("gardening cooking painting", "quantum chromodynamics lattice")
	if got != 0.0 {
		t.Fatalf("Similarity = %v, want 0.0", got)
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	resume := "python developer building backend services"
	jd := "python developer wanted for frontend work"
	got := Similarity(resume, jd)
	if got <= 0.0 || got >= 100.0 {
		t.Fatalf("Similarity = %v, want value strictly between 0 and 100", got)
	}
}

func TestSimilarityStopWordsOnly(t *testing.T) {
	if got := Similarity("the of and", "a an the"); got != 0.0 {
		t.Fatalf("Similarity = %v, want 0.0", got)
	}
}
