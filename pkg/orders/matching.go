package orders

import (
	"github.com/shopspring/decimal"
)

// MatchResult is the outcome of matching a requested amount against a book.
// Orders and Amounts are parallel: Amounts[i] is the taker-side native-unit
// amount to take from Orders[i] (quote for buys, base for sells). Remaining is
// zero iff the requested amount was fully covered.
type MatchResult struct {
	Orders      []*SignedOrder
	Amounts     []decimal.Decimal
	Remaining   decimal.Decimal
	CanBeFilled bool
}

// BuildMarketFill greedily fills book orders until the requested base amount
// is covered. The book must already be sorted in fill priority (best price
// first, ties in arrival order); the walk stops at the first order that covers
// the remainder and takes only what is needed from it. An uncoverable request
// is reported through Remaining, never an error: the caller decides whether a
// shortfall is fatal.
func BuildMarketFill(side Side, amount decimal.Decimal, book []OpenOrder) MatchResult {
	result := MatchResult{Remaining: decimal.Zero}
	filled := decimal.Zero

	for i := 0; i < len(book) && filled.LessThan(amount); i++ {
		available := book[i].Available()
		if available.Sign() <= 0 {
			continue
		}

		take := amount.Sub(filled)
		if available.LessThan(take) {
			take = available
		}
		filled = filled.Add(take)

		fillAmount := take
		if side == Buy {
			// Buys consume sell orders whose taker asset is the quote token.
			// Round up so the fill transaction never underpays.
			fillAmount = take.Mul(book[i].Price).Ceil()
		}

		result.Orders = append(result.Orders, book[i].Raw)
		result.Amounts = append(result.Amounts, fillAmount)
	}

	result.Remaining = amount.Sub(filled)
	result.CanBeFilled = result.Remaining.Sign() == 0
	return result
}

// BuildLimitMatchingFill fills only the book orders whose price satisfies the
// limit price (at or below for buys, at or above for sells). The walk stops at
// the first non-matching order since the book is price-sorted.
func BuildLimitMatchingFill(side Side, amount, price decimal.Decimal, book []OpenOrder) MatchResult {
	matching := make([]OpenOrder, 0, len(book))
	for _, order := range book {
		if side == Buy && order.Price.GreaterThan(price) {
			break
		}
		if side == Sell && order.Price.LessThan(price) {
			break
		}
		matching = append(matching, order)
	}
	return BuildMarketFill(side, amount, matching)
}

// SumFillableAmounts converts the taker-side fill amounts into the amount
// received in return: base for buys, quote for sells. Conversion uses each
// order's stated maker/taker ratio, rounded down.
func SumFillableAmounts(result MatchResult) decimal.Decimal {
	total := decimal.Zero
	for i, order := range result.Orders {
		taker := order.TakerAssetAmount.Dec()
		if taker.Sign() == 0 {
			continue
		}
		total = total.Add(result.Amounts[i].Mul(order.MakerAssetAmount.Dec()).Div(taker).Floor())
	}
	return total
}

// AveragePrice derives the effective quote-per-base price of a fill set. It
// returns zero for an empty fill.
func AveragePrice(side Side, result MatchResult) decimal.Decimal {
	spent := decimal.Zero
	for _, a := range result.Amounts {
		spent = spent.Add(a)
	}
	received := SumFillableAmounts(result)
	if spent.Sign() == 0 || received.Sign() == 0 {
		return decimal.Zero
	}
	if side == Buy {
		// Spent quote, received base.
		return spent.Div(received)
	}
	// Spent base, received quote.
	return received.Div(spent)
}
