package services

import (
	"strings"

	"formhub.link/models"
	"formhub.link/pkg/fieldtypes"
)

// OptionCount bir seçeneğin kaç kez seçildiği.
type OptionCount struct {
	OptionLabel string `json:"optionLabel"`
	Count       int    `json:"count"`
}

// FieldReport seçmeli bir alanın seçenek dağılımı.
type FieldReport struct {
	FieldLabel string           `json:"fieldLabel"`
	Kind       models.FieldKind `json:"kind"`
	Counts     []OptionCount    `json:"counts"`
}

// Report bir formun analiz çıktısı.
type Report struct {
	TotalSubmissions int           `json:"totalSubmissions"`
	Analysis         []FieldReport `json:"analysis"`
}

// AggregateSubmissions formun seçmeli alanları için seçenek sayımlarını hesaplar.
// Sayımlar tanımlı seçenek sırasını izler ve hiç seçilmemiş seçenekler 0 ile yer alır.
// Bilinmeyen ya da boş değerler sayılmaz.
func AggregateSubmissions(form *models.Form, submissions []models.Submission) Report {
	report := Report{TotalSubmissions: len(submissions), Analysis: []FieldReport{}}
	if form == nil {
		return report
	}

	for _, field := range form.Fields {
		contract, ok := fieldtypes.Lookup(field.Kind)
		if !ok || !contract.Aggregatable {
			continue
		}
		counts := make([]OptionCount, len(field.Options))
		index := make(map[string]int, len(field.Options))
		for i, opt := range field.Options {
			counts[i] = OptionCount{OptionLabel: opt.Label}
			index[opt.Label] = i
		}

		for _, sub := range submissions {
			raw, ok := sub.Data[field.Label]
			if !ok {
				continue
			}
			for _, v := range answerValues(contract, raw) {
				if i, known := index[v]; known {
					counts[i].Count++
				}
			}
		}

		report.Analysis = append(report.Analysis, FieldReport{
			FieldLabel: field.Label,
			Kind:       field.Kind,
			Counts:     counts,
		})
	}
	return report
}

// answerValues bir cevabı sayılacak seçenek etiketlerine çevirir.
// Liste cevaplarında her seçenek gönderim başına en fazla bir kez döner.
func answerValues(c fieldtypes.Contract, raw any) []string {
	if c.Shape != fieldtypes.ShapeList {
		if s, ok := raw.(string); ok {
			return []string{strings.TrimSpace(s)}
		}
		return nil
	}
	var items []string
	switch val := raw.(type) {
	case []string:
		items = val
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	default:
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
