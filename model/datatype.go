package model

import "strings"

// DataType tags the value domain of an element.
type DataType string

const (
	Alphanumeric DataType = "AN"
	Identifier   DataType = "ID"
	Numeric0     DataType = "N0"
	Numeric2     DataType = "N2"
	Real         DataType = "R"
	Date         DataType = "DT"
	Time         DataType = "TM"
)

// ParseDataType maps a data-type token as written in legacy documents.
// Unknown or empty tokens are Alphanumeric.
func ParseDataType(token string) DataType {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "ID":
		return Identifier
	case "N", "N0":
		return Numeric0
	case "N2":
		return Numeric2
	case "R":
		return Real
	case "DT":
		return Date
	case "TM":
		return Time
	default:
		return Alphanumeric
	}
}

// formatRules is checked in order; the first matching substring wins.
var formatRules = []struct {
	substr string
	typ    DataType
}{
	{"_ID", Identifier},
	{"_N0", Numeric0},
	{"_N2", Numeric2},
	{"_R", Real},
	{"_DT", Date},
	{"_TM", Time},
}

// DataTypeFromFormat derives a data type from a schema format token such as
// "X12_ID" or "X12_N2".
func DataTypeFromFormat(format string) DataType {
	for _, r := range formatRules {
		if strings.Contains(format, r.substr) {
			return r.typ
		}
	}
	return Alphanumeric
}
