// Package odds pools published association results: Z/P conversion,
// confidence intervals from an odds ratio and its P-value, Mantel-Haenszel
// pooling and Fisher's combined probability test.
//
// Every function validates its inputs and returns ErrDomain instead of NaN.
//
// References:
//
//	http://handbook.cochrane.org/chapter_7/7_7_7_2_obtaining_standard_errors_from_confidence_intervals_and.htm
//	http://stats.stackexchange.com/questions/9483/how-to-calculate-confidence-intervals-for-pooled-odd-ratios-in-meta-analysis
package odds

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDomain is returned for inputs outside of a function's domain, such as a
// P-value outside (0, 1].
var ErrDomain = errors.New("input outside of domain")

func checkP(p float64) error {
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return fmt.Errorf("%w: P-value %v is not in (0, 1]", ErrDomain, p)
	}
	return nil
}

func checkOR(or float64) error {
	if math.IsNaN(or) || math.IsInf(or, 0) || or <= 0 {
		return fmt.Errorf("%w: odds ratio %v is not positive and finite", ErrDomain, or)
	}
	return nil
}

// ZValue is |Φ⁻¹(p/2)|, the two-sided Z score for a P-value.
func ZValue(p float64) (float64, error) {
	if err := checkP(p); err != nil {
		return 0, err
	}

	return math.Abs(distuv.UnitNormal.Quantile(p / 2)), nil
}

// PValue is 2·(1-Φ(z)), the inverse of ZValue for z >= 0.
func PValue(z float64) (float64, error) {
	if math.IsNaN(z) || z < 0 {
		return 0, fmt.Errorf("%w: Z value %v is negative", ErrDomain, z)
	}

	// Survival keeps precision in the far tail where 1-CDF would round to 0
	return 2 * distuv.UnitNormal.Survival(z), nil
}

// WaldStat is the squared Z value for p.
func WaldStat(p float64) (float64, error) {
	z, err := ZValue(p)
	if err != nil {
		return 0, err
	}
	return z * z, nil
}

// StandardError estimates the standard error of beta = ln(OR) from its
// P-value. A P-value of 1 carries no information and is rejected.
func StandardError(beta, p float64) (float64, error) {
	z, err := ZValue(p)
	if err != nil {
		return 0, err
	}
	if z == 0 {
		return 0, fmt.Errorf("%w: P-value 1 gives a Z value of 0", ErrDomain)
	}

	return beta / z, nil
}

// Interval is a closed interval with Lower <= Upper.
type Interval struct {
	Lower float64
	Upper float64
}

// NewInterval orders its bounds.
func NewInterval(a, b float64) Interval {
	if b < a {
		a, b = b, a
	}
	return Interval{Lower: a, Upper: b}
}

func (i Interval) Contains(x float64) bool {
	return i.Lower <= x && x <= i.Upper
}

func (i Interval) String() string {
	return fmt.Sprintf("[%.4g, %.4g]", i.Lower, i.Upper)
}

// ConfidenceInterval returns the level (e.g. 0.95) confidence interval of an
// odds ratio reported with P-value p.
func ConfidenceInterval(or, p, level float64) (Interval, error) {
	if err := checkOR(or); err != nil {
		return Interval{}, err
	}
	if math.IsNaN(level) || level < 0 || level >= 1 {
		return Interval{}, fmt.Errorf("%w: confidence level %v is not in [0, 1)", ErrDomain, level)
	}

	beta := math.Log(or)
	se, err := StandardError(beta, p)
	if err != nil {
		return Interval{}, err
	}

	z, err := ZValue(1 - level)
	if err != nil {
		return Interval{}, err
	}

	return NewInterval(math.Exp(beta-z*se), math.Exp(beta+z*se)), nil
}

// Statsig is true when the interval excludes 1.0.
func Statsig(ci Interval) bool {
	return !NewInterval(ci.Lower, ci.Upper).Contains(1)
}

// MantelHaenszelOR is the weighted mean Σ(OR·w)/Σw.
func MantelHaenszelOR(ors, weights []float64) (float64, error) {
	if len(ors) == 0 || len(ors) != len(weights) {
		return 0, fmt.Errorf("%w: %d odds ratios and %d weights", ErrDomain, len(ors), len(weights))
	}

	var num, denom float64
	for i, or := range ors {
		if err := checkOR(or); err != nil {
			return 0, err
		}
		if w := weights[i]; math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return 0, fmt.Errorf("%w: weight %v", ErrDomain, w)
		}
		num += or * weights[i]
		denom += weights[i]
	}

	if denom == 0 {
		return 0, fmt.Errorf("%w: weights sum to 0", ErrDomain)
	}

	return num / denom, nil
}
