package model

import "strings"

// Category is a record class from the fixed utility-infrastructure
// dictionary. Elements reference categories by code; an element may carry
// several codes comma-separated.
type Category struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Categories is the full dictionary in display order.
var Categories = []Category{
	{Code: "HN", Description: "Heating network (heating and hot water supply)"},
	{Code: "DS", Description: "Domestic sewage (household wastewater disposal)"},
	{Code: "WS", Description: "Water supply (cold water)"},
	{Code: "SD", Description: "Storm drainage (rain and meltwater runoff)"},
	{Code: "HM", Description: "Heat energy metering unit"},
	{Code: "CM", Description: "Cold water metering unit"},
}

// CategoryDescription resolves a single code. ok is false for unknown codes.
func CategoryDescription(code string) (desc string, ok bool) {
	for _, c := range Categories {
		if c.Code == code {
			return c.Description, true
		}
	}
	return "", false
}

// SplitCategories splits a stored category value ("HN, WS") into trimmed
// codes, dropping empties.
func SplitCategories(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

// DescribeCategories expands a stored category value into the descriptions of
// its known codes, preserving order. Unknown codes are skipped.
func DescribeCategories(s string) []string {
	var descs []string
	for _, code := range SplitCategories(s) {
		if d, ok := CategoryDescription(code); ok {
			descs = append(descs, d)
		}
	}
	return descs
}
