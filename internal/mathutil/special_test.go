package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErfKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"zero", 0, 0},
		{"one", 1.0, 0.8427007929},
		{"negative one", -1.0, -0.8427007929},
		{"two", 2.0, 0.9953222650},
		{"half", 0.5, 0.5204998778},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Erf(tt.x), 1e-6)
		})
	}
}

func TestErfIsOdd(t *testing.T) {
	for _, x := range []float64{0.1, 0.7, 1.3, 2.5} {
		assert.InDelta(t, -Erf(x), Erf(-x), 1e-12)
	}
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-9)
	assert.InDelta(t, 0.8413447, NormalCDF(1.0), 1e-5)
	assert.InDelta(t, 0.0227501, NormalCDF(-2.0), 1e-5)
}

func TestLogGammaKnownValues(t *testing.T) {
	// Gamma(5) = 24, Gamma(1) = Gamma(2) = 1.
	assert.InDelta(t, math.Log(24.0), LogGamma(5.0), 1e-9)
	assert.InDelta(t, 0.0, LogGamma(1.0), 1e-9)
	assert.InDelta(t, 0.0, LogGamma(2.0), 1e-9)
	// Gamma(0.5) = sqrt(pi).
	assert.InDelta(t, 0.5*math.Log(math.Pi), LogGamma(0.5), 1e-9)
}

func TestRegularizedIncompleteBetaBounds(t *testing.T) {
	assert.Equal(t, 0.0, RegularizedIncompleteBeta(2, 3, 0))
	assert.Equal(t, 1.0, RegularizedIncompleteBeta(2, 3, 1))
}

func TestRegularizedIncompleteBetaSymmetric(t *testing.T) {
	// I_x(a, b) = 1 - I_{1-x}(b, a)
	for _, x := range []float64{0.1, 0.3, 0.5, 0.8} {
		left := RegularizedIncompleteBeta(2.0, 5.0, x)
		right := 1.0 - RegularizedIncompleteBeta(5.0, 2.0, 1.0-x)
		assert.InDelta(t, left, right, 1e-6)
	}
}

func TestRegularizedIncompleteBetaUniform(t *testing.T) {
	// I_x(1, 1) is the uniform CDF.
	for _, x := range []float64{0.25, 0.5, 0.75} {
		assert.InDelta(t, x, RegularizedIncompleteBeta(1, 1, x), 1e-6)
	}
}

func TestStudentTCDFSymmetry(t *testing.T) {
	assert.InDelta(t, 0.5, StudentTCDF(0, 5), 1e-9)
	for _, df := range []float64{3, 10, 30} {
		assert.InDelta(t, 1.0, StudentTCDF(2.0, df)+StudentTCDF(-2.0, df), 1e-6)
	}
}

func TestStudentTCDFKnownValue(t *testing.T) {
	// t=2.015, df=5 is the one-tailed 95% critical value.
	assert.InDelta(t, 0.95, StudentTCDF(2.015, 5), 2e-3)
}

func TestStudentTCDFLargeDfMatchesNormal(t *testing.T) {
	assert.InDelta(t, NormalCDF(1.5), StudentTCDF(1.5, 500), 1e-9)
}

func TestTwoTailedPValue(t *testing.T) {
	assert.InDelta(t, 1.0, TwoTailedPValue(0, 10), 1e-9)

	p := TwoTailedPValue(3.0, 8)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 0.05)

	// Symmetric in the sign of t.
	assert.InDelta(t, TwoTailedPValue(2.2, 12), TwoTailedPValue(-2.2, 12), 1e-9)
}

func TestLogNormalCDF(t *testing.T) {
	// Median of a log-normal is exp(mu).
	mu := math.Log(100.0)
	assert.InDelta(t, 0.5, LogNormalCDF(100.0, mu, 0.4), 1e-9)
	assert.Equal(t, 0.0, LogNormalCDF(0, mu, 0.4))
	assert.Equal(t, 0.0, LogNormalCDF(-5, mu, 0.4))

	// Monotone in x.
	assert.Less(t, LogNormalCDF(80, mu, 0.4), LogNormalCDF(120, mu, 0.4))
}
