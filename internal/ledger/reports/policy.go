package reports

import "strings"

// Bucket is one of the three cash flow statement classifications.
type Bucket string

const (
	BucketOperating Bucket = "operating"
	BucketInvesting Bucket = "investing"
	BucketFinancing Bucket = "financing"
)

// CashDetector reports whether an account holds cash or cash equivalents.
type CashDetector func(Account) bool

// BucketFunc assigns a non-cash account to a cash flow bucket. Keeping this
// as a standalone policy lets the heuristic be replaced with explicit
// per-account tags without touching the classification algorithm.
type BucketFunc func(Account) Bucket

// NewCashDetector builds the default cash account policy: a manual override
// list by account code, plus a name/category heuristic for asset accounts.
// The heuristic is an approximation and intentionally configurable.
func NewCashDetector(overrideCodes []string) CashDetector {
	overrides := make(map[string]struct{}, len(overrideCodes))
	for _, code := range overrideCodes {
		code = strings.TrimSpace(code)
		if code != "" {
			overrides[code] = struct{}{}
		}
	}
	return func(acc Account) bool {
		if _, ok := overrides[acc.Code]; ok {
			return true
		}
		if !strings.EqualFold(acc.Type, "asset") {
			return false
		}
		name := strings.ToLower(acc.Name)
		if strings.Contains(name, "cash") || strings.Contains(name, "bank") {
			return true
		}
		return strings.EqualFold(acc.Category, "cash")
	}
}

// DefaultBucket classifies a non-cash account movement by account type, with
// a name-substring heuristic splitting working-capital assets from investing
// assets. Accounts whose names match none of the expected substrings may be
// misclassified; that limitation is inherited from the classification rules,
// not corrected here.
func DefaultBucket(acc Account) Bucket {
	switch strings.ToUpper(acc.Type) {
	case "REVENUE", "INCOME", "EXPENSE", "COGS":
		return BucketOperating
	case "LIABILITY", "EQUITY":
		return BucketFinancing
	case "ASSET":
		name := strings.ToLower(acc.Name)
		if strings.Contains(name, "receiv") || strings.Contains(name, "inventory") || strings.Contains(name, "prepaid") {
			return BucketOperating
		}
		return BucketInvesting
	default:
		return BucketOperating
	}
}
