package odds

import (
	"errors"
	"math"
	"testing"
)

func near(got, want, eps float64) bool {
	return math.Abs(got-want) <= eps
}

func TestZValue(t *testing.T) {
	for _, v := range []struct{ p, z float64 }{
		{0.5, 0.67449},
		{0.001, 3.29053},
		{1, 0},
	} {
		z, err := ZValue(v.p)
		if err != nil {
			t.Fatal(err)
		}
		if !near(z, v.z, 1e-5) {
			t.Errorf("ZValue(%v) = %.6f, expected %.5f", v.p, z, v.z)
		}
	}
}

func TestPValue(t *testing.T) {
	for _, v := range []struct{ z, p float64 }{
		{0.67449, 0.5},
		{3.29053, 0.001},
		{0, 1},
	} {
		p, err := PValue(v.z)
		if err != nil {
			t.Fatal(err)
		}
		if !near(p, v.p, 1e-5) {
			t.Errorf("PValue(%v) = %.6f, expected %.5f", v.z, p, v.p)
		}
	}
}

// Sources for the published figures: table 3, page 6 of
// http://www.plosgenetics.org/article/fetchObject.action?uri=info%3Adoi%2F10.1371%2Fjournal.pgen.1001039&representation=PDF
func TestRoundTrip(t *testing.T) {
	for _, n := range []float64{0.123, 0, 1, 0.5566, 0.999999, 0.0001, 5.2} {
		p, err := PValue(n)
		if err != nil {
			t.Fatal(err)
		}
		z, err := ZValue(p)
		if err != nil {
			t.Fatal(err)
		}
		if !near(z, n, 1e-7) {
			t.Errorf("ZValue(PValue(%v)) = %v", n, z)
		}
	}

	for _, n := range []float64{0.123, 1, 0.5566, 0.999999, 0.0001, 1e-12} {
		z, err := ZValue(n)
		if err != nil {
			t.Fatal(err)
		}
		p, err := PValue(z)
		if err != nil {
			t.Fatal(err)
		}
		if !near(p, n, 1e-7*math.Max(n, 1e-5)) {
			t.Errorf("PValue(ZValue(%v)) = %v", n, p)
		}
	}
}

func TestWaldStat(t *testing.T) {
	w, err := WaldStat(0.001)
	if err != nil {
		t.Fatal(err)
	}
	if !near(w, 3.29053*3.29053, 1e-4) {
		t.Errorf("got %v", w)
	}
}

func TestStandardError(t *testing.T) {
	se, err := StandardError(0.89, 0.00075)
	if err != nil {
		t.Fatal(err)
	}
	if !near(se, 0.2640466, 1e-7) {
		t.Errorf("got %.8f", se)
	}

	if _, err := StandardError(0.89, 1); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain for P=1, got %v", err)
	}
}

func TestConfidenceInterval(t *testing.T) {
	ci, err := ConfidenceInterval(0.89, 0.00075, 0.95)
	if err != nil {
		t.Fatal(err)
	}

	if !near(ci.Lower, 0.83, 0.005) || !near(ci.Upper, 0.95, 0.005) {
		t.Errorf("got %s", ci)
	}
	if ci.Lower > ci.Upper {
		t.Errorf("bounds out of order: %s", ci)
	}

	// An OR above 1 flips which exponent gives the lower bound
	ci, err = ConfidenceInterval(1/0.89, 0.00075, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	if ci.Lower > ci.Upper || !near(ci.Lower, 1/0.9524, 0.005) {
		t.Errorf("got %s", ci)
	}

	if !Statsig(ci) {
		t.Error("interval should be significant")
	}
}

func TestStatsig(t *testing.T) {
	for _, v := range []struct {
		a, b float64
		sig  bool
	}{
		{-3, -2, true},
		{-2, -1, true},
		{-1, 0, true},
		{-1, 0.5, true},
		{-0.5, 0.99, true},
		{-10, 10, false},
		{-0.5, 1.0, false},
		{1, 2, false},
		{0.99, 1.01, false},
		{1.01, 0.99, false},
		{1.1, 10.6, true},
		{1.5, 1.6, true},
		{20, 30, true},
	} {
		if got := Statsig(Interval{v.a, v.b}); got != v.sig {
			t.Errorf("[%v, %v]: got %t", v.a, v.b, got)
		}
	}
}

func TestMantelHaenszelOR(t *testing.T) {
	or, err := MantelHaenszelOR([]float64{1, 2}, []float64{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !near(or, 1.75, 1e-12) {
		t.Errorf("got %v", or)
	}

	if _, err := MantelHaenszelOR([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
	if _, err := MantelHaenszelOR([]float64{1}, []float64{0}); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
}

func TestPooledOR(t *testing.T) {
	studies := []Study{{0.88, 0.0053}, {0.91, 0.13}}

	pooled, err := PooledORVIF(studies, 1.15)
	if err != nil {
		t.Fatal(err)
	}
	if !near(pooled.OddsRatio, 0.89, 0.005) {
		t.Errorf("pooled OR %v", pooled.OddsRatio)
	}
	if !near(pooled.P, 0.00075, 2e-5) {
		t.Errorf("pooled P %v", pooled.P)
	}

	plain, err := PooledOR(studies)
	if err != nil {
		t.Fatal(err)
	}
	if !near(plain.OddsRatio, pooled.OddsRatio, 1e-12) {
		t.Errorf("VIF should not move the pooled OR: %v vs %v", plain.OddsRatio, pooled.OddsRatio)
	}
	if !near(plain.StandardError, 0.036924, 1e-5) || !near(plain.P, 0.0016920, 1e-6) {
		t.Errorf("got %+v", plain)
	}
	if plain.StandardError <= pooled.StandardError {
		t.Error("deflating standard errors should shrink the pooled standard error")
	}

	ci, err := plain.ConfidenceInterval(0.95)
	if err != nil {
		t.Fatal(err)
	}
	if !ci.Contains(plain.OddsRatio) || !Statsig(ci) {
		t.Errorf("got %s", ci)
	}

	if _, err := PooledOR([]Study{{1, 0.5}}); !errors.Is(err, ErrDomain) {
		t.Errorf("an OR of exactly 1 should be rejected, got %v", err)
	}
	if _, err := PooledOR(nil); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
	if _, err := PooledORVIF(studies, 0); !errors.Is(err, ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
}

func TestCombinedPFisher(t *testing.T) {
	for _, v := range []struct {
		ps   []float64
		want float64
		eps  float64
	}{
		{[]float64{0.001, 0.999}, 0.0079008, 1e-6},
		{[]float64{0.01, 0.02, 0.03}, 0.00051185, 1e-7},
		{[]float64{0.37}, 0.37, 1e-12},
		{[]float64{1, 1}, 1, 1e-12},
	} {
		got, err := CombinedPFisher(v.ps)
		if err != nil {
			t.Fatal(err)
		}
		if !near(got, v.want, v.eps) {
			t.Errorf("%v: got %v, expected %v", v.ps, got, v.want)
		}
	}
}

func TestRelativeRisk(t *testing.T) {
	for _, v := range []struct{ or, ar, want float64 }{
		{0.5, 0.1, 0.5263158},
		{2, 0.2, 1.6666667},
		{3, 0, 3},
		{3, 1, 1},
	} {
		got, err := RelativeRisk(v.or, v.ar)
		if err != nil {
			t.Fatal(err)
		}
		if !near(got, v.want, 1e-7) {
			t.Errorf("RelativeRisk(%v, %v) = %v", v.or, v.ar, got)
		}
	}
}

func TestDomainErrors(t *testing.T) {
	for name, err := range map[string]error{
		"ZValue(0)":       second(ZValue(0)),
		"ZValue(1.5)":     second(ZValue(1.5)),
		"ZValue(NaN)":     second(ZValue(math.NaN())),
		"PValue(-1)":      second(PValue(-1)),
		"CI p=0":          secondInterval(ConfidenceInterval(0.89, 0, 0.95)),
		"CI level=1":      secondInterval(ConfidenceInterval(0.89, 0.01, 1)),
		"CI or=0":         secondInterval(ConfidenceInterval(0, 0.01, 0.95)),
		"Fisher p=0":      second(CombinedPFisher([]float64{0.5, 0})),
		"Fisher empty":    second(CombinedPFisher(nil)),
		"RelativeRisk<0":  second(RelativeRisk(-1, 0.1)),
		"RelativeRisk>1":  second(RelativeRisk(1.2, 1.1)),
		"WaldStat(2)":     second(WaldStat(2)),
		"StdErr(p=-0.1)":  second(StandardError(0.5, -0.1)),
		"MH no ORs":       second(MantelHaenszelOR(nil, nil)),
		"MH negative OR":  second(MantelHaenszelOR([]float64{-1}, []float64{1})),
		"MH infinite w":   second(MantelHaenszelOR([]float64{1}, []float64{math.Inf(1)})),
		"Pooled bad P":    secondPooled(PooledOR([]Study{{0.9, 2}})),
		"Pooled bad OR":   secondPooled(PooledOR([]Study{{0, 0.01}})),
		"Pooled CI level": secondInterval(Pooled{OddsRatio: 1.2, StandardError: 0.1}.ConfidenceInterval(-0.5)),
	} {
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%s: expected ErrDomain, got %v", name, err)
		}
	}
}

func second(_ float64, err error) error          { return err }
func secondInterval(_ Interval, err error) error { return err }
func secondPooled(_ Pooled, err error) error     { return err }
