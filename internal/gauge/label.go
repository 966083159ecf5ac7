package gauge

import (
	"math"
	"math/big"
	"strings"
)

// FormatPercent renders percent with the given number of decimals and a
// trailing percent sign, e.g. 45.67%.
func FormatPercent(percent float64, decimals int) string {
	return ToFixed(percent, decimals) + "%"
}

// ToFixed formats v with exactly digits decimals. Exact ties round away
// from zero, the way dashboard hosts format numbers; strconv would round
// them to even.
func ToFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	digits = min(max(digits, 0), 100)

	neg := v < 0
	x := new(big.Float).SetPrec(2048).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	x.Mul(x, new(big.Float).SetPrec(2048).SetInt(scale))

	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(2048).Sub(x, new(big.Float).SetPrec(2048).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// CenterText returns the anchor that puts the center of box on center.
// box must have been measured with the text anchored at the origin.
func CenterText(box Rect, center Point) (x, y float64) {
	c := box.Center()
	return center.X - c.X, center.Y - c.Y
}
