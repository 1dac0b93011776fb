package playback

import "testing"

func TestCadenceWeight(t *testing.T) {
	cases := []struct {
		token string
		want  float64
	}{
		// Trailing punctuation wins over length.
		{"Hello.", 2.2},
		{"ends!", 2.2},
		{"really?", 2.2},
		{"cat,", 1.5},
		{"however;", 1.5},
		{"follows:", 1.5},
		{"...", 2.2},

		// Length tiers on the stripped form.
		{"the", 0.8},
		{"a", 0.8},
		{"word", 1.0},
		{"table", 1.0},
		{"pipeline", 1.0},
		{"information", 1.1},
		{"delightful", 1.1},

		// Non-counted characters are ignored for length.
		{"(so)", 0.8},
		{"don't", 1.0},
		{"two-faced", 1.0},
		{"“the”", 0.8},

		// Non-ASCII letters count.
		{"véritable", 1.1},

		{"", 1.0},
	}

	for _, tc := range cases {
		got := CadenceWeight(tc.token)
		if got != tc.want {
			t.Errorf("CadenceWeight(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestCadenceWeight_TrailingQuoteFallsThroughToLength(t *testing.T) {
	// The punctuation check inspects the raw last character, so a closing
	// quote after a period is a length-tier token, not a sentence end.
	got := CadenceWeight("end.”")
	if got != 1.0 {
		t.Errorf("CadenceWeight(%q) = %v, want 1.0", "end.”", got)
	}
}
