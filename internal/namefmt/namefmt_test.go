package namefmt

import "testing"

func TestDedupeNoCollision(t *testing.T) {
	used := map[string]bool{"a.bin": true}
	if got := Dedupe("b.bin", used); got != "b.bin" {
		t.Fatalf("want b.bin got %s", got)
	}
}

func TestDedupeSingleCollision(t *testing.T) {
	used := map[string]bool{"dup.bin": true}
	if got := Dedupe("dup.bin", used); got != "dup.bin(2)" {
		t.Fatalf("want dup.bin(2) got %s", got)
	}
}

func TestDedupeStableGivenPriorRenames(t *testing.T) {
	used := map[string]bool{"dup.bin": true, "dup.bin(2)": true, "dup.bin(3)": true}
	if got := Dedupe("dup.bin", used); got != "dup.bin(4)" {
		t.Fatalf("want dup.bin(4) got %s", got)
	}
}
