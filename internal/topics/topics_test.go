package topics

import "testing"

func TestNormalize_KnownTopic(t *testing.T) {
	if got := Normalize("Recursion"); got != "Recursion" {
		t.Errorf("Normalize(Recursion) = %q, want Recursion", got)
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	if got := Normalize("error handling"); got != "Error Handling" {
		t.Errorf("Normalize(error handling) = %q, want Error Handling", got)
	}
}

func TestNormalize_EmptyFallsBackToDefault(t *testing.T) {
	if got := Normalize(""); got != Default {
		t.Errorf("Normalize(\"\") = %q, want %q", got, Default)
	}
	if got := Normalize("   "); got != Default {
		t.Errorf("Normalize(whitespace) = %q, want %q", got, Default)
	}
}

func TestNormalize_UnknownFallsBackToDefault(t *testing.T) {
	if got := Normalize("Quantum Entanglement"); got != Default {
		t.Errorf("Normalize(unknown) = %q, want %q", got, Default)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	if All()[0] == "mutated" {
		t.Error("All() exposed internal slice")
	}
}

func TestKnown(t *testing.T) {
	if !Known("concurrency") {
		t.Error("Known(concurrency) = false, want true")
	}
	if Known("nope") {
		t.Error("Known(nope) = true, want false")
	}
}
