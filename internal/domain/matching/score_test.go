package matching

import "testing"

func TestScore_HalfOverlap(t *testing.T) {
	got := Score([]string{"React", "Python"}, []string{"React", "Node"})
	if got != 50 {
		t.Fatalf("Score = %d, want 50", got)
	}
}

func TestScore_EmptyRequired(t *testing.T) {
	if got := Score([]string{"Go"}, nil); got != 0 {
		t.Fatalf("Score = %d, want 0", got)
	}
	if got := Score([]string{"Go"}, []string{"  ", ""}); got != 0 {
		t.Fatalf("Score with blank requirements = %d, want 0", got)
	}
}

func TestScore_Superset(t *testing.T) {
	got := Score([]string{"Go", "PostgreSQL", "Redis", "Docker"}, []string{"Go", "Redis"})
	if got != 100 {
		t.Fatalf("Score = %d, want 100", got)
	}
}

func TestScore_NoOverlap(t *testing.T) {
	if got := Score([]string{"Figma"}, []string{"Go", "Redis"}); got != 0 {
		t.Fatalf("Score = %d, want 0", got)
	}
	if got := Score(nil, []string{"Go"}); got != 0 {
		t.Fatalf("Score with no skills = %d, want 0", got)
	}
}

func TestScore_Normalization(t *testing.T) {
	got := Score([]string{" react ", "NODE"}, []string{"React", "node"})
	if got != 100 {
		t.Fatalf("Score = %d, want 100", got)
	}
}

func TestScore_DuplicatesCountOnce(t *testing.T) {
	got := Score([]string{"Go", "go", "GO"}, []string{"Go", "Rust", "rust"})
	if got != 50 {
		t.Fatalf("Score = %d, want 50", got)
	}
}

func TestScore_Rounding(t *testing.T) {
	// 2 of 3 matched: 66.67 rounds to 67.
	got := Score([]string{"a", "b"}, []string{"a", "b", "c"})
	if got != 67 {
		t.Fatalf("Score = %d, want 67", got)
	}
	// 1 of 3: 33.33 rounds to 33.
	got = Score([]string{"a"}, []string{"a", "b", "c"})
	if got != 33 {
		t.Fatalf("Score = %d, want 33", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	sets := [][2][]string{
		{nil, nil},
		{{"a"}, {"a"}},
		{{"a", "b", "c"}, {"x"}},
		{nil, {"a", "b"}},
	}
	for i, s := range sets {
		got := Score(s[0], s[1])
		if got < 0 || got > 100 {
			t.Fatalf("case %d: Score = %d out of bounds", i, got)
		}
	}
}
