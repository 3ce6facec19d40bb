package stats

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names of the production log export.
const (
	ColOperatorName  = "OperatorName"
	ColOperationName = "OperationName"
	ColLastOperation = "LastOperation"
	ColTrim          = "Trim"
	ColCarpetType    = "CarpetType"
	ColCarpetColour  = "CarpetColour"
	ColSource        = "Source"
)

// NotAvailable is the placeholder for missing categorical values.
const NotAvailable = "N/A"

// RawRow is one decoded spreadsheet row keyed by column header. Values are usually
// strings; anything else is treated as missing.
type RawRow map[string]any

// Record is a normalized production log row. An empty OperatorName or OperationName
// means the source cell was missing.
type Record struct {
	OperatorName  string `json:"operatorName,omitempty"`
	OperationName string `json:"operationName,omitempty"`
	Trim          string `json:"trim"`
	CarpetType    string `json:"carpetType"`
	CarpetColour  string `json:"carpetColour"`
	SourceGroup   string `json:"sourceGroup"`
	DateKey       string `json:"dateKey"`
}

// fieldPolicy describes how one categorical column is normalized.
type fieldPolicy struct {
	column   string
	fallback string // used when the cell is missing, empty or not a string
	apply    func(string) string
	assign   func(*Record, string)
}

var upperPool = sync.Pool{
	New: func() any { return cases.Upper(language.Und) },
}

// upper applies full Unicode upper-case mapping ("straße" -> "STRASSE").
func upper(s string) string {
	c := upperPool.Get().(cases.Caser)
	out := c.String(s)
	c.Reset()
	upperPool.Put(c)
	return out
}

// FirstWord returns the first whitespace-delimited token of s, or N/A.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return NotAvailable
	}
	return fields[0]
}

var policies = []fieldPolicy{
	{column: ColOperatorName, assign: func(r *Record, v string) { r.OperatorName = v }},
	{column: ColOperationName, assign: func(r *Record, v string) { r.OperationName = v }},
	{column: ColTrim, fallback: NotAvailable, apply: upper, assign: func(r *Record, v string) { r.Trim = v }},
	{column: ColCarpetType, fallback: NotAvailable, assign: func(r *Record, v string) { r.CarpetType = v }},
	{column: ColCarpetColour, fallback: NotAvailable, apply: upper, assign: func(r *Record, v string) { r.CarpetColour = v }},
	{column: ColSource, fallback: NotAvailable, apply: FirstWord, assign: func(r *Record, v string) { r.SourceGroup = v }},
}

func cell(row RawRow, column string) string {
	s, _ := row[column].(string)
	return s
}

// Normalize maps a raw row to a Record. ok is false when LastOperation holds no
// parsable date; such rows are dropped from the dataset.
func Normalize(row RawRow) (Record, bool) {
	key := DateKeyFromLastOperation(cell(row, ColLastOperation))
	if key == "" {
		return Record{}, false
	}

	rec := Record{DateKey: key}
	for _, p := range policies {
		v := cell(row, p.column)
		switch {
		case v == "":
			v = p.fallback
		case p.apply != nil:
			v = p.apply(v)
		}
		p.assign(&rec, v)
	}
	return rec, true
}
