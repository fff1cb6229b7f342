package record

import "time"

// Reserved labels fixed by business policy.
const (
	// SubtotalCategory is the pre-computed subtotal pseudo-category; it is
	// excluded from every category listing and aggregation.
	SubtotalCategory = "小計"

	// RetiredMarker is the substring in a worker display name marking the
	// worker as archived. Such workers contribute to no aggregation.
	RetiredMarker = "退職"

	// InspectionTrigger is the category whose exact-singleton selection
	// enables the inspection breakdown series.
	InspectionTrigger = "点検・整備"
)

// Work is the normalized work-hour entry read from 工数データ.csv.
type Work struct {
	Date     time.Time
	Worker   string
	Category string
	Hours    float64
}

// InspectionItem is the inspection sub-type. Free-text 作業項目 values that
// map to neither value are excluded before aggregation.
type InspectionItem string

const (
	ItemStatutory InspectionItem = "法定点検"
	ItemInternal  InspectionItem = "自社点検"
)

// Inspection is the normalized inspection entry read from 点検データ.csv.
// Rows are unique on (TaskID, Item) after keep-last deduplication.
type Inspection struct {
	TaskID string
	Date   time.Time
	Worker string
	Item   InspectionItem
	Hours  float64
}

// Estimate is the normalized sales-estimate entry read from 見積データ.csv.
// DecidedDate is zero when the estimate has not been decided yet.
type Estimate struct {
	EstimateNo  string
	Detail      string
	CreatedDate time.Time
	DecidedDate time.Time
	Recipient   string
	Building    string
	Staff       string
	Subtotal    float64
}

// Decided reports whether the estimate carries a decision date.
func (e Estimate) Decided() bool {
	return !e.DecidedDate.IsZero()
}
