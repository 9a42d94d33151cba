package reports

import "math"

// DefaultCashEpsilon is the threshold below which an entry's net cash
// movement is treated as rounding noise and the entry is skipped entirely.
// Fixed at one cent; it does not scale with currency precision.
const DefaultCashEpsilon = 0.01

// EntryLine is a journal line joined with its entry and account attributes,
// as produced by the ledger store for a date range.
type EntryLine struct {
	EntryID int64
	Account Account
	Debit   float64
	Credit  float64
}

// CashFlow holds the three-way classification totals for a period.
type CashFlow struct {
	Operating float64
	Investing float64
	Financing float64
}

// Sum returns operating + investing + financing.
func (c CashFlow) Sum() float64 {
	return c.Operating + c.Investing + c.Financing
}

// Classifier derives a cash flow statement from journal lines. It is a
// heuristic surrogate for a full statement-of-cash-flows derivation, which
// would require transaction-purpose tagging on every entry.
type Classifier struct {
	IsCash  CashDetector
	Bucket  BucketFunc
	Epsilon float64
}

// NewClassifier wires a classifier with the default bucket policy.
func NewClassifier(isCash CashDetector) Classifier {
	return Classifier{IsCash: isCash, Bucket: DefaultBucket, Epsilon: DefaultCashEpsilon}
}

// Classify buckets the offsetting side of every cash-affecting journal entry.
//
// Per entry: the net movement on cash accounts determines whether the entry
// touched cash at all. When it did, each non-cash line contributes its
// offsetting amount, -(debit - credit), to the bucket its account maps to.
func (c Classifier) Classify(lines []EntryLine) CashFlow {
	epsilon := c.Epsilon
	if epsilon <= 0 {
		epsilon = DefaultCashEpsilon
	}
	bucket := c.Bucket
	if bucket == nil {
		bucket = DefaultBucket
	}

	var flow CashFlow
	for _, entry := range groupByEntry(lines) {
		var cashMovement float64
		for _, line := range entry {
			if c.IsCash(line.Account) {
				cashMovement += line.Debit - line.Credit
			}
		}
		if math.Abs(cashMovement) < epsilon {
			continue
		}
		for _, line := range entry {
			if c.IsCash(line.Account) {
				continue
			}
			cashEquivalent := -(line.Debit - line.Credit)
			switch bucket(line.Account) {
			case BucketInvesting:
				flow.Investing += cashEquivalent
			case BucketFinancing:
				flow.Financing += cashEquivalent
			default:
				flow.Operating += cashEquivalent
			}
		}
	}
	return flow
}

// CashReconciliation carries start/end cash balances for the period and the
// delta between them. The delta approximates CashFlow.Sum but exact equality
// is not guaranteed by the heuristic classification; both numbers are
// surfaced to the caller for cross-checking.
type CashReconciliation struct {
	Start float64
	End   float64
	Delta float64
}

// Reconcile sums cash account balances at the period edges. Cash accounts are
// assets, so the debit-normal sign convention applies.
func Reconcile(isCash CashDetector, startBalances, endBalances []AccountBalance) CashReconciliation {
	rec := CashReconciliation{
		Start: sumCash(isCash, startBalances),
		End:   sumCash(isCash, endBalances),
	}
	rec.Delta = rec.End - rec.Start
	return rec
}

func sumCash(isCash CashDetector, balances []AccountBalance) float64 {
	var total float64
	for _, acc := range balances {
		if isCash(acc.Account) {
			total += acc.Debit - acc.Credit
		}
	}
	return total
}

// groupByEntry splits lines into per-entry groups, preserving first-seen
// entry order.
func groupByEntry(lines []EntryLine) [][]EntryLine {
	index := make(map[int64]int)
	groups := make([][]EntryLine, 0)
	for _, line := range lines {
		pos, ok := index[line.EntryID]
		if !ok {
			pos = len(groups)
			index[line.EntryID] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], line)
	}
	return groups
}
