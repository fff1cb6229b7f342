package dataset

import "kousu/record"

// mapWork coerces one raw row into a Work record. Rows with a missing or
// unparseable required field are dropped, not defaulted; dirty rows are a
// normal part of portal exports.
func mapWork(row Record) (record.Work, bool) {
	date, ok := parseDate(row.Get(WorkSchema.Variants("日付")...))
	if !ok {
		return record.Work{}, false
	}

	worker := row.Get(WorkSchema.Variants("作業者")...)
	category := row.Get(WorkSchema.Variants("作業種別")...)
	if worker == "" || category == "" {
		return record.Work{}, false
	}

	hours, ok := parseNumber(row.Get(WorkSchema.Variants("時間")...))
	if !ok {
		return record.Work{}, false
	}

	return record.Work{
		Date:     date,
		Worker:   worker,
		Category: category,
		Hours:    hours,
	}, true
}
