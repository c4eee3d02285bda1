package entity

import "github.com/samber/lo"

// FindingKind doubles as the machine-readable reason attached to a
// decision.
type FindingKind string

const (
	KindOverstocked     FindingKind = "OVERSTOCKED"
	KindInvalidItem     FindingKind = "INVALID_ITEMS"
	KindInvalidValue    FindingKind = "INVALID_VALUE"
	KindDupeCheckFailed FindingKind = "DUPE_CHECK_FAILED"
	KindDupedItem       FindingKind = "DUPED_ITEMS"
	KindServiceDown     FindingKind = "SERVICE_DOWN"
)

// Finding is one wrongness fact recorded about an offer. Closed sum:
// the concrete types below are the only implementations.
type Finding interface {
	Kind() FindingKind
}

type Overstocked struct {
	SKU      string `json:"sku"`
	Buying   bool   `json:"buying"`
	Delta    int    `json:"diff"`
	Capacity int    `json:"amount_can_trade"`
}

func (Overstocked) Kind() FindingKind { return KindOverstocked }

type InvalidItem struct {
	SKU    string `json:"sku"`
	Buying bool   `json:"buying"`
	Amount int    `json:"amount"`
}

func (InvalidItem) Kind() FindingKind { return KindInvalidItem }

type InvalidValue struct {
	OurTotal   float64 `json:"our"`
	TheirTotal float64 `json:"their"`
}

func (InvalidValue) Kind() FindingKind { return KindInvalidValue }

type DupeCheckFailed struct {
	AssetID string `json:"asset_id,omitempty"`
	Err     string `json:"error,omitempty"`
}

func (DupeCheckFailed) Kind() FindingKind { return KindDupeCheckFailed }

type DupedItem struct {
	AssetID string `json:"asset_id"`
}

func (DupedItem) Kind() FindingKind { return KindDupedItem }

type ServiceDown struct {
	Service string `json:"service"`
	Err     string `json:"error,omitempty"`
}

func (ServiceDown) Kind() FindingKind { return KindServiceDown }

// Decision is the engine's final verdict with its supporting findings.
type Decision struct {
	Action   Action
	Reason   string
	Findings []Finding
}

// Reasons returns the deduplicated finding kinds in first-seen order.
func Reasons(findings []Finding) []FindingKind {
	return lo.Uniq(lo.Map(findings, func(f Finding, _ int) FindingKind {
		return f.Kind()
	}))
}

// HasKind reports whether any finding of the given kind is present.
func HasKind(findings []Finding, kind FindingKind) bool {
	return lo.SomeBy(findings, func(f Finding) bool {
		return f.Kind() == kind
	})
}
