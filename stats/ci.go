package stats

import "gonum.org/v1/gonum/stat/distuv"

// CI is a two-sided confidence interval.
type CI struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// z95 is the two-sided normal critical value at 95% confidence.
const z95 = 1.96

// normalCI builds a symmetric CI around a point estimate from its standard
// error using the normal approximation.
func normalCI(estimate, se float64) CI {
	return CI{Lo: estimate - z95*se, Hi: estimate + z95*se}
}

// clopperPearson is the exact binomial-proportion confidence interval (k
// successes out of n trials), built from the Beta-quantile identity.
func clopperPearson(k, n int64, confidence float64) CI {
	if n == 0 {
		return CI{0, 1}
	}
	alpha := 1 - confidence
	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return ci
}

// stdNormalCDF is Φ(z), used by the finite-trip risk-of-ruin formula.
func stdNormalCDF(z float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.CDF(z)
}
