package dataset

import "kousu/record"

// LoadWork reads and normalizes the work-hours file. Invalid rows are
// silently dropped; a missing required column is a SchemaError.
func LoadWork(path string) ([]record.Work, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := WorkSchema.Check(table); err != nil {
		return nil, err
	}

	out := make([]record.Work, 0, len(table.Records))
	for _, row := range table.Records {
		if entry, ok := mapWork(row); ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

// LoadInspections reads and normalizes the inspection file. Deduplication
// happens downstream in the aggregation engine, keyed on (案件ID, item).
func LoadInspections(path string) ([]record.Inspection, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := InspectionSchema.Check(table); err != nil {
		return nil, err
	}

	out := make([]record.Inspection, 0, len(table.Records))
	for _, row := range table.Records {
		if entry, ok := mapInspection(row); ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

// LoadEstimates reads and normalizes the estimate file.
func LoadEstimates(path string) ([]record.Estimate, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := EstimateSchema.Check(table); err != nil {
		return nil, err
	}

	out := make([]record.Estimate, 0, len(table.Records))
	for _, row := range table.Records {
		if entry, ok := mapEstimate(row); ok {
			out = append(out, entry)
		}
	}
	return out, nil
}
