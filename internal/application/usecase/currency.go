package usecase

import "math"

// ConvertToJPY converts a USD amount to whole yen at the given rate, rounding
// half away from zero (1.5 yen rounds to 2).
func ConvertToJPY(usd, rate float64) int64 {
	return int64(math.Round(usd * rate))
}
