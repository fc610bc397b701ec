package wordmatch

import "testing"

func TestCompareWordExactShort(t *testing.T) {
	if CompareWord("ab", "ab", true, true) != 1 {
		t.Error("expected exact match for short tokens")
	}
	if CompareWord("ab", "cd", true, true) != 0 {
		t.Error("expected zero for unequal short tokens")
	}
}

func TestCompareWordEmpty(t *testing.T) {
	if CompareWord("", "", false, false) != 1 {
		t.Error("both empty should score 1")
	}
	if CompareWord("abc", "", false, false) != 0 {
		t.Error("one empty should score 0")
	}
}

func TestCompareWordFuzzy(t *testing.T) {
	score := CompareWord("financial", "financal", false, false)
	if score < 0.6 {
		t.Errorf("expected a near match above cutoff, got %v", score)
	}
}

func TestIsLikelyAbbreviation(t *testing.T) {
	if !IsLikelyAbbreviation("ibm", "international business machines") {
		t.Error("expected IBM to be recognized as an abbreviation")
	}
	if IsLikelyAbbreviation("xyz", "international business machines") {
		t.Error("did not expect xyz to match")
	}
}

func TestCompareByWordsBasicMatch(t *testing.T) {
	score := CompareByWords("Johnson & Johnson", "Johnson and Jonson")
	if score <= 0 {
		t.Errorf("expected positive score, got %v", score)
	}
}

func TestCompareByWordsRejectsLengthMismatch(t *testing.T) {
	score := CompareByWords("A B", "A B C D E")
	if score != 0 {
		t.Errorf("expected rejection for large length mismatch, got %v", score)
	}
}

func TestCompareByWordsSelfMatch(t *testing.T) {
	score := CompareByWords("PNC Financial Services Group", "PNC Financial Services Group")
	if score < 0.9 {
		t.Errorf("expected near-1.0 self match, got %v", score)
	}
}
