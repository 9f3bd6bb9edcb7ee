package parser

import (
	"math"
	"strconv"
	"strings"
)

// financials accumulates the money fields while scanning line by line.
// The update rules differ on purpose: total and subtotal are overwritten
// by the last matching line, tax is summed so split CGST/SGST lines add
// up to one figure.
type financials struct {
	total    float64
	tax      float64
	subtotal float64
}

// scanFinancials runs the per-line keyword matchers over the receipt and
// applies the reconciliation fallbacks afterwards.
func (p *Parser) scanFinancials(lines []string) financials {
	var acc financials

	for _, l := range lines {
		if p.totalLine.MatchString(l) {
			if v, ok := p.pickAmount(l); ok {
				acc.total = v
			}
		}
		if p.taxLine.MatchString(l) && !strings.Contains(strings.ToLower(l), "invoice") {
			if v, ok := p.pickAmount(l); ok {
				acc.tax += v
			}
		}
		if p.subtotalLine.MatchString(l) {
			if v, ok := p.pickAmount(l); ok {
				acc.subtotal = v
			}
		}
	}

	// A tax larger than the total is a misparse, not a real figure.
	if acc.tax > acc.total && acc.total > 0 {
		acc.tax = 0
	}

	// No total line found: take the largest decimal-bearing token in the
	// whole text, or the largest integer token if none carry a decimal.
	if acc.total == 0 {
		acc.total = p.maxToken(lines)
	}

	return acc
}

// pickAmount extracts the numeric tokens from a line and resolves them
// to a single value. A token with a decimal separator wins (last one);
// otherwise a trailing 2-digit token is treated as the cents of the
// token before it; otherwise the last token is taken as-is.
func (p *Parser) pickAmount(line string) (float64, bool) {
	nums := p.numberToken.FindAllString(line, -1)
	if len(nums) == 0 {
		return 0, false
	}

	var dotted []string
	for _, n := range nums {
		if strings.ContainsAny(n, ".,") {
			dotted = append(dotted, n)
		}
	}
	if len(dotted) > 0 {
		return cleanAmount(dotted[len(dotted)-1]), true
	}
	last := nums[len(nums)-1]
	if len(nums) >= 2 && len(last) == 2 {
		return cleanAmount(nums[len(nums)-2] + "." + last), true
	}
	return cleanAmount(last), true
}

func (p *Parser) maxToken(lines []string) float64 {
	var all, dotted []string
	for _, l := range lines {
		for _, n := range p.numberToken.FindAllString(l, -1) {
			all = append(all, n)
			if strings.Contains(n, ".") {
				dotted = append(dotted, n)
			}
		}
	}
	candidates := all
	if len(dotted) > 0 {
		candidates = dotted
	}
	var max float64
	for _, n := range candidates {
		if v := cleanAmount(n); v > max {
			max = v
		}
	}
	return max
}

// cleanAmount parses a numeric token, stripping thousands separators.
// Anything unparseable coerces to 0 rather than propagating an error.
func cleanAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// round2 rounds half-up to 2 decimal places. Receipts are non-negative,
// so the half-up shift is safe.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
