package features

import "math"

// mean, variance and entropy mirror CNFStats.h's templated Mean/Variance/
// Entropy helpers (original_source/src/util/CNFStats.h): plain arithmetic
// mean, population variance against that mean, and base-2 Shannon entropy
// treating each count as an unnormalised frequency over len(counts) bins.
func mean(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		sum += c
	}
	return sum / float64(len(counts))
}

func variance(counts []float64, m float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		d := c - m
		sum += d * d
	}
	return sum / float64(len(counts))
}

func entropy(counts []float64) float64 {
	if len(counts) == 0 {
		return 0
	}
	n := float64(len(counts))
	h := 0.0
	for _, c := range counts {
		p := c / n
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

func minOf(counts []float64) float64 {
	m := counts[0]
	for _, c := range counts[1:] {
		if c < m {
			m = c
		}
	}
	return m
}

func maxOf(counts []float64) float64 {
	m := counts[0]
	for _, c := range counts[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

// pushDistribution appends mean, variance, min, max, entropy of distribution
// to record, or five zeros for an empty distribution (spec.md S4.4 "Empty
// distributions yield all-zero statistics (no NaNs)").
func pushDistribution(record *[]float64, distribution []float64) {
	if len(distribution) == 0 {
		*record = append(*record, 0, 0, 0, 0, 0)
		return
	}
	m := mean(distribution)
	*record = append(*record, m, variance(distribution, m), minOf(distribution), maxOf(distribution), entropy(distribution))
}
