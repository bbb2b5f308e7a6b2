package usecase

import (
	"maps"
	"regexp"

	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/shopspring/decimal"
)

// Baseline maps a product id to the last formatted price seen for it.
type Baseline map[string]string

func (b Baseline) Clone() Baseline {
	if b == nil {
		return Baseline{}
	}
	return maps.Clone(b)
}

type ChangeNotice struct {
	Product  models.Product
	Previous string
}

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

func parsePrice(formatted string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(nonNumeric.ReplaceAllString(formatted, ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Delta renders the signed difference between the previous and the current
// price, e.g. "▼ 1.00". The current price comes from Amount when the catalog
// returned one. It is empty when either price is unknown.
func (n ChangeNotice) Delta() string {
	prev, ok := parsePrice(n.Previous)
	if !ok {
		return ""
	}
	cur := n.Product.Amount.Decimal
	if !n.Product.Amount.Valid {
		if cur, ok = parsePrice(n.Product.FormattedPrice); !ok {
			return ""
		}
	}
	diff := cur.Sub(prev)
	switch diff.Sign() {
	case -1:
		return "▼ " + diff.Abs().StringFixed(2)
	case 1:
		return "▲ " + diff.StringFixed(2)
	}
	return ""
}

// Diff compares snapshots against the baseline without touching it. It returns
// the advanced baseline, one notice per changed price and the ids seen for the
// first time. Duplicate ids are handled in order.
func Diff(baseline Baseline, snapshots []models.Product) (Baseline, []ChangeNotice, []string) {
	next := baseline.Clone()
	var (
		notices []ChangeNotice
		added   []string
	)
	for _, p := range snapshots {
		prev, ok := next[p.ID]
		next[p.ID] = p.FormattedPrice
		switch {
		case !ok:
			added = append(added, p.ID)
		case prev != p.FormattedPrice:
			notices = append(notices, ChangeNotice{Product: p, Previous: prev})
		}
	}
	return next, notices, added
}
