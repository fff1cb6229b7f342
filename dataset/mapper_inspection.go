package dataset

import (
	"strings"

	"kousu/record"
)

// mapInspectionItem folds the free-text 作業項目 values onto the two-item
// enum. Anything else is out of scope for the inspection breakdown.
func mapInspectionItem(raw string) (record.InspectionItem, bool) {
	switch {
	case strings.Contains(raw, "法定"):
		return record.ItemStatutory, true
	case strings.Contains(raw, "自社"):
		return record.ItemInternal, true
	default:
		return "", false
	}
}

func mapInspection(row Record) (record.Inspection, bool) {
	taskID := row.Get(InspectionSchema.Variants("案件ID")...)
	if taskID == "" {
		return record.Inspection{}, false
	}

	date, ok := parseDate(row.Get(InspectionSchema.Variants("日付")...))
	if !ok {
		return record.Inspection{}, false
	}

	worker := row.Get(InspectionSchema.Variants("作業者")...)
	if worker == "" {
		return record.Inspection{}, false
	}

	item, ok := mapInspectionItem(row.Get(InspectionSchema.Variants("作業項目")...))
	if !ok {
		return record.Inspection{}, false
	}

	hours, ok := parseNumber(row.Get(InspectionSchema.Variants("時間")...))
	if !ok {
		return record.Inspection{}, false
	}

	return record.Inspection{
		TaskID: taskID,
		Date:   date,
		Worker: worker,
		Item:   item,
		Hours:  hours,
	}, true
}
