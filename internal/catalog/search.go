package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Price expressions embedded in a free-text search. "under $20" caps price,
// "over 15" floors it, "15-20" bounds both ends, and a bare number matches
// within +/- bareTolerance of it.
var (
	underExpr = regexp.MustCompile(`(?i)\b(?:under|below|less than|cheaper than)\s*\$?(\d+(?:\.\d+)?)`)
	overExpr  = regexp.MustCompile(`(?i)\b(?:over|above|more than)\s*\$?(\d+(?:\.\d+)?)`)
	rangeExpr = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*-\s*\$?(\d+(?:\.\d+)?)`)
	bareExpr  = regexp.MustCompile(`^\$?(\d+(?:\.\d+)?)$`)
)

var bareTolerance = decimal.NewFromInt(2)

// ExtractPriceQuery splits a search query into price bounds and leftover
// text. The remainder is what should be matched against name, description,
// and ingredients; it is empty when the query was purely a price expression.
func ExtractPriceQuery(query string) (min, max *decimal.Decimal, remainder string) {
	rest := query

	if m := underExpr.FindStringSubmatch(rest); m != nil {
		v := decimal.RequireFromString(m[1])
		max = &v
		rest = underExpr.ReplaceAllString(rest, " ")
	}
	if m := overExpr.FindStringSubmatch(rest); m != nil {
		v := decimal.RequireFromString(m[1])
		min = &v
		rest = overExpr.ReplaceAllString(rest, " ")
	}
	if min == nil && max == nil {
		if m := rangeExpr.FindStringSubmatch(rest); m != nil {
			lo := decimal.RequireFromString(m[1])
			hi := decimal.RequireFromString(m[2])
			min, max = &lo, &hi
			rest = rangeExpr.ReplaceAllString(rest, " ")
		}
	}

	remainder = strings.Join(strings.Fields(rest), " ")

	if min == nil && max == nil {
		if m := bareExpr.FindStringSubmatch(remainder); m != nil {
			n := decimal.RequireFromString(m[1])
			lo := n.Sub(bareTolerance)
			if lo.IsNegative() {
				lo = decimal.Zero
			}
			hi := n.Add(bareTolerance)
			return &lo, &hi, ""
		}
	}
	return min, max, remainder
}
