package dataset

import "fmt"

// Schema is the canonical column table for one data source: every canonical
// field name with the known source-header variants that map onto it.
// Variant matching happens on normalized headers, so full-width punctuation
// and stray spaces in exports are already collapsed.
type Schema struct {
	Source string
	Fields []Field
}

type Field struct {
	Canonical string
	Variants  []string
	Required  bool
}

// SchemaError reports a required canonical column that is absent from the
// file header after normalization.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q not found", e.Source, e.Column)
}

// Check verifies that every required canonical field has at least one
// variant present in the table header.
func (s Schema) Check(table *Table) error {
	present := make(map[string]bool, len(table.Headers))
	for _, header := range table.Headers {
		present[header] = true
	}

	for _, field := range s.Fields {
		if !field.Required {
			continue
		}
		found := false
		for _, variant := range field.Variants {
			if present[normalizeHeader(variant)] {
				found = true
				break
			}
		}
		if !found {
			return &SchemaError{Source: s.Source, Column: field.Canonical}
		}
	}
	return nil
}

// Variants returns the header variant list for a canonical field name.
func (s Schema) Variants(canonical string) []string {
	for _, field := range s.Fields {
		if field.Canonical == canonical {
			return field.Variants
		}
	}
	return []string{canonical}
}

// WorkSchema maps the 工数データ export headers onto canonical fields.
var WorkSchema = Schema{
	Source: "工数データ",
	Fields: []Field{
		{Canonical: "日付", Variants: []string{"日付", "作業日", "実施日"}, Required: true},
		{Canonical: "作業者", Variants: []string{"作業者", "作業者名", "氏名", "担当者"}, Required: true},
		{Canonical: "作業種別", Variants: []string{"作業種別", "種別", "作業内容"}, Required: true},
		{Canonical: "時間", Variants: []string{"時間", "時間(h)", "作業時間", "作業時間(h)"}, Required: true},
	},
}

// InspectionSchema maps the 点検データ export headers onto canonical fields.
var InspectionSchema = Schema{
	Source: "点検データ",
	Fields: []Field{
		{Canonical: "案件ID", Variants: []string{"案件ID", "案件No", "案件番号"}, Required: true},
		{Canonical: "日付", Variants: []string{"日付", "作業日", "点検日"}, Required: true},
		{Canonical: "作業者", Variants: []string{"作業者", "作業者名", "氏名", "担当者"}, Required: true},
		{Canonical: "作業項目", Variants: []string{"作業項目", "項目", "点検種別"}, Required: true},
		{Canonical: "時間", Variants: []string{"時間", "時間(h)", "作業時間", "作業時間(h)"}, Required: true},
	},
}

// EstimateSchema maps the 見積データ export headers onto canonical fields.
// Only the fields the engine aggregates are required; money detail columns
// beyond 小計 ride along untouched.
var EstimateSchema = Schema{
	Source: "見積データ",
	Fields: []Field{
		{Canonical: "見積番号", Variants: []string{"見積番号", "見積No", "見積NO"}, Required: true},
		{Canonical: "明細", Variants: []string{"明細", "明細内容", "件名"}, Required: false},
		{Canonical: "作成日", Variants: []string{"作成日", "見積日", "発行日"}, Required: true},
		{Canonical: "決定日", Variants: []string{"決定日", "受注日", "成約日"}, Required: false},
		{Canonical: "宛先", Variants: []string{"宛先", "顧客名", "得意先"}, Required: false},
		{Canonical: "建物名", Variants: []string{"建物名", "物件名"}, Required: false},
		{Canonical: "担当者", Variants: []string{"担当者", "営業担当", "担当"}, Required: true},
		{Canonical: "小計", Variants: []string{"小計", "小計金額", "見積金額"}, Required: true},
	},
}
