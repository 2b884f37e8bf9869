package wordform

import (
	"reflect"
	"testing"
)

func TestForms_DropsTrailingE(t *testing.T) {
	got := Forms("delve")
	want := []string{"delve", "delves", "delved", "delving"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Forms(delve): got %v want %v", got, want)
	}
}

func TestForms_PlainSuffixes(t *testing.T) {
	got := Forms("run")
	want := []string{"run", "runs", "runed", "runing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Forms(run): got %v want %v", got, want)
	}
}

func TestForms_Lowercases(t *testing.T) {
	got := Forms("  Analyze ")
	want := []string{"analyze", "analyzes", "analyzed", "analyzing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Forms(Analyze): got %v want %v", got, want)
	}
}

func TestForms_NonAlphabeticIsLiteral(t *testing.T) {
	got := Forms("e.g.")
	want := []string{"e.g."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Forms(e.g.): got %v want %v", got, want)
	}

	got = Forms("machine learning")
	want = []string{"machine learning"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Forms(machine learning): got %v want %v", got, want)
	}
}

func TestForms_Empty(t *testing.T) {
	if got := Forms("   "); got != nil {
		t.Fatalf("Forms(blank): got %v want nil", got)
	}
}
