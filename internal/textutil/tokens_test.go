package textutil

import (
	"reflect"
	"testing"
)

func TestTokenListDropsStopwords(t *testing.T) {
	got := TokenList(NormalizedName("Johnson & Johnson and The Co"))
	want := []string{"JOHNSON", "JOHNSON", "CO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenList = %v, want %v", got, want)
	}
}

func TestBlockKeyTruncatesToFour(t *testing.T) {
	got := BlockKey([]string{"PNC", "FINANCIAL", "SERVICES", "GROUP", "EXTRA"})
	if got != "PFSG" {
		t.Errorf("BlockKey = %q, want PFSG", got)
	}
}

func TestBlockKeyEmpty(t *testing.T) {
	if got := BlockKey(nil); got != "" {
		t.Errorf("BlockKey(nil) = %q, want empty", got)
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   ") || !IsBlank("") {
		t.Error("expected blank")
	}
	if IsBlank("x") {
		t.Error("expected non-blank")
	}
}
