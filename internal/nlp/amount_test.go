package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		found bool
	}{
		{
			name:  "number before currency word",
			input: "I bought coffee for 50 rupees",
			want:  50,
			found: true,
		},
		{
			name:  "currency symbol before number",
			input: "₹120 for lunch",
			want:  120,
			found: true,
		},
		{
			name:  "rs abbreviation",
			input: "rs. 500 groceries",
			want:  500,
			found: true,
		},
		{
			name:  "decimal amount",
			input: "paid 99.50 rupees for the book",
			want:  99.50,
			found: true,
		},
		{
			name:  "k shorthand multiplies by thousand",
			input: "I spent 2k on shoes",
			want:  2000,
			found: true,
		},
		{
			name:  "action word without currency",
			input: "paid 200",
			want:  200,
			found: true,
		},
		{
			name:  "of-amount phrase",
			input: "got a subscription of 150 rupees",
			want:  150,
			found: true,
		},
		{
			name:  "currency qualified range resolves to midpoint",
			input: "it was from 100 to 200 rupees",
			want:  150,
			found: true,
		},
		{
			name:  "bare range resolves to midpoint",
			input: "it cost somewhere between 300 to 500",
			want:  400,
			found: true,
		},
		{
			name:  "word multiplier with leading digit",
			input: "2 hundred rupees for the cab",
			want:  200,
			found: true,
		},
		{
			name:  "word multiplier without digit",
			input: "a thousand rupees gone",
			want:  1000,
			found: true,
		},
		{
			name:  "lakh multiplier",
			input: "3 lakh for the car downpayment",
			want:  300000,
			found: true,
		},
		{
			name:  "no numbers at all",
			input: "hello there",
			found: false,
		},
		{
			name:  "zero amount rejected",
			input: "paid 0 rupees",
			found: false,
		},
		{
			name:  "empty input",
			input: "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractAmount(tt.input)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestExtractAmount_RuleOrder(t *testing.T) {
	// The k-shorthand rule must win over the looser action-proximity
	// scan, otherwise "2k" reads as 2.
	got, found := ExtractAmount("bought headphones for 2k")
	assert.True(t, found)
	assert.InDelta(t, 2000.0, got, 0.001)

	// A currency-qualified amount must win over the bare range rule.
	got, found = ExtractAmount("paid 250 rupees on 3/5")
	assert.True(t, found)
	assert.InDelta(t, 250.0, got, 0.001)
}
