package report

import (
	"strconv"
	"strings"

	"laudoapi/internal/model"
)

// EllipsoidCoefficient approximates pi/6, the ellipsoid volume factor.
const EllipsoidCoefficient = 0.523

// Volume returns the ellipsoid-approximation volume of a lobe in cm³, rounded
// to 2 decimals. Inputs are not range-checked.
func Volume(m model.Measurements) float64 {
	return Round2(m.Length * m.Width * m.Thickness * EllipsoidCoefficient)
}

// TotalVolume sums two already rounded lobe volumes and rounds the result again.
func TotalVolume(right, left float64) float64 {
	return Round2(right + left)
}

// Round2 rounds to 2 decimal places using the exact binary value of x, so
// 2.675 (stored as 2.67499...) becomes 2.67 and exact ties round to even.
func Round2(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return v
}

// formatVolume prints the shortest representation that round-trips, always
// keeping one decimal digit: 6.28, 12.3, 6.0.
func formatVolume(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
