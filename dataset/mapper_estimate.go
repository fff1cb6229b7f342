package dataset

import "kousu/record"

func mapEstimate(row Record) (record.Estimate, bool) {
	estimateNo := row.Get(EstimateSchema.Variants("見積番号")...)
	if estimateNo == "" {
		return record.Estimate{}, false
	}

	created, ok := parseDate(row.Get(EstimateSchema.Variants("作成日")...))
	if !ok {
		return record.Estimate{}, false
	}

	staff := row.Get(EstimateSchema.Variants("担当者")...)
	if staff == "" {
		return record.Estimate{}, false
	}

	subtotal, ok := parseNumber(row.Get(EstimateSchema.Variants("小計")...))
	if !ok {
		return record.Estimate{}, false
	}

	// 決定日 is optional: undecided estimates stay in the estimate series
	// only. An unparseable non-empty value drops the row.
	decidedDate, decidedOK := parseDate(row.Get(EstimateSchema.Variants("決定日")...))
	if !decidedOK && row.Get(EstimateSchema.Variants("決定日")...) != "" {
		return record.Estimate{}, false
	}

	return record.Estimate{
		EstimateNo:  estimateNo,
		Detail:      row.Get(EstimateSchema.Variants("明細")...),
		CreatedDate: created,
		DecidedDate: decidedDate,
		Recipient:   row.Get(EstimateSchema.Variants("宛先")...),
		Building:    row.Get(EstimateSchema.Variants("建物名")...),
		Staff:       staff,
		Subtotal:    subtotal,
	}, true
}
