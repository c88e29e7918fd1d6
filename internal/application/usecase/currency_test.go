package usecase

import "testing"

func TestConvertToJPY(t *testing.T) {
	cases := []struct {
		usd  float64
		rate float64
		want int64
	}{
		{0, 150, 0},
		{1, 150, 150},
		{1.23, 152.3, 187},  // 187.3329
		{0.01, 150, 2},      // 1.5 rounds away from zero
		{0.001, 150, 0},     // 0.15
		{0.005, 150, 1},     // 0.75
		{100, 149.55, 14955},
		{2.5, 1, 3}, // half away from zero, not banker's rounding
		{3.5, 1, 4},
		{-0.01, 150, -2}, // refunds round away from zero too
	}
	for _, tc := range cases {
		if got := ConvertToJPY(tc.usd, tc.rate); got != tc.want {
			t.Errorf("ConvertToJPY(%v, %v) = %d, want %d", tc.usd, tc.rate, got, tc.want)
		}
	}
}
