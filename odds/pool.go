package odds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Study is one published (odds ratio, P-value) result.
type Study struct {
	OddsRatio float64 `csv:"odds_ratio"`
	P         float64 `csv:"p_value"`
}

// Pooled is the fixed-effect summary of several studies.
type Pooled struct {
	OddsRatio     float64
	StandardError float64
	P             float64
}

// ConfidenceInterval of the pooled odds ratio, from its pooled standard error.
func (p Pooled) ConfidenceInterval(level float64) (Interval, error) {
	if math.IsNaN(level) || level < 0 || level >= 1 {
		return Interval{}, fmt.Errorf("%w: confidence level %v is not in [0, 1)", ErrDomain, level)
	}

	z, err := ZValue(1 - level)
	if err != nil {
		return Interval{}, err
	}

	beta := math.Log(p.OddsRatio)
	return NewInterval(math.Exp(beta-z*p.StandardError), math.Exp(beta+z*p.StandardError)), nil
}

// PooledOR estimates each study's standard error from its P-value, weighs
// studies by inverse variance and pools them with MantelHaenszelOR.
func PooledOR(studies []Study) (Pooled, error) {
	return pool(studies, 0)
}

// PooledORVIF is PooledOR with every standard error divided by sqrt(vif), the
// variance inflation factor.
func PooledORVIF(studies []Study, vif float64) (Pooled, error) {
	if math.IsNaN(vif) || math.IsInf(vif, 0) || vif <= 0 {
		return Pooled{}, fmt.Errorf("%w: variance inflation factor %v", ErrDomain, vif)
	}
	return pool(studies, vif)
}

func pool(studies []Study, vif float64) (Pooled, error) {
	if len(studies) == 0 {
		return Pooled{}, fmt.Errorf("%w: no studies to pool", ErrDomain)
	}

	ors := make([]float64, 0, len(studies))
	weights := make([]float64, 0, len(studies))
	var sumWeights float64

	for i, s := range studies {
		if err := checkOR(s.OddsRatio); err != nil {
			return Pooled{}, fmt.Errorf("study %d: %w", i+1, err)
		}

		se, err := StandardError(math.Log(s.OddsRatio), s.P)
		if err != nil {
			return Pooled{}, fmt.Errorf("study %d: %w", i+1, err)
		}
		if vif > 0 {
			se /= math.Sqrt(vif)
		}
		if se == 0 {
			return Pooled{}, fmt.Errorf("study %d: %w: odds ratio of 1 has no weight", i+1, ErrDomain)
		}

		w := 1 / (se * se)
		ors = append(ors, s.OddsRatio)
		weights = append(weights, w)
		sumWeights += w
	}

	or, err := MantelHaenszelOR(ors, weights)
	if err != nil {
		return Pooled{}, err
	}

	se := math.Sqrt(1 / sumWeights)

	p, err := PValue(math.Abs(math.Log(or) / se))
	if err != nil {
		return Pooled{}, err
	}

	return Pooled{OddsRatio: or, StandardError: se, P: p}, nil
}

// CombinedPFisher is Fisher's method: W = -2·Σln(p) follows a χ² distribution
// with 2k degrees of freedom under the joint null.
func CombinedPFisher(ps []float64) (float64, error) {
	if len(ps) == 0 {
		return 0, fmt.Errorf("%w: no P-values to combine", ErrDomain)
	}

	var w float64
	for _, p := range ps {
		if err := checkP(p); err != nil {
			return 0, err
		}
		w += math.Log(p)
	}
	w *= -2

	chi2 := distuv.ChiSquared{K: float64(2 * len(ps))}
	return chi2.Survival(w), nil
}

// RelativeRisk converts an odds ratio to a relative risk given the absolute
// risk of the unexposed group.
func RelativeRisk(or, absoluteRisk float64) (float64, error) {
	if err := checkOR(or); err != nil {
		return 0, err
	}
	if math.IsNaN(absoluteRisk) || absoluteRisk < 0 || absoluteRisk > 1 {
		return 0, fmt.Errorf("%w: absolute risk %v is not in [0, 1]", ErrDomain, absoluteRisk)
	}

	return or / (1 - absoluteRisk + absoluteRisk*or), nil
}
