package aggregate

import (
	"strings"

	"kousu/record"
)

// FilterWork returns the work entries satisfying every predicate of the
// selection: date window, category set, target worker, and the fixed
// exclusions (retired workers, the subtotal pseudo-category).
func FilterWork(entries []record.Work, sel Selection) []record.Work {
	selected := categorySet(sel.Categories)

	out := make([]record.Work, 0, len(entries))
	for _, entry := range entries {
		if !sel.Contains(entry.Date) {
			continue
		}
		if entry.Category == record.SubtotalCategory {
			continue
		}
		if strings.Contains(entry.Worker, record.RetiredMarker) {
			continue
		}
		if selected != nil {
			if _, ok := selected[entry.Category]; !ok {
				continue
			}
		}
		if sel.Worker != "" && entry.Worker != sel.Worker {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// FilterInspections applies the date/worker part of the selection to the
// inspection source; the item enum is already narrowed by the normalizer.
func FilterInspections(entries []record.Inspection, sel Selection) []record.Inspection {
	out := make([]record.Inspection, 0, len(entries))
	for _, entry := range entries {
		if !sel.Contains(entry.Date) {
			continue
		}
		if strings.Contains(entry.Worker, record.RetiredMarker) {
			continue
		}
		if sel.Worker != "" && entry.Worker != sel.Worker {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func categorySet(categories []string) map[string]struct{} {
	if len(categories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if category = strings.TrimSpace(category); category != "" {
			set[category] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
