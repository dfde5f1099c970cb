package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// StoreCode is the canonical numeric identity of a store. Labels in different
// datasets may carry leading zeros ("0130143 ..."), so matching always goes
// through the parsed code.
type StoreCode int64

// minStoreCodeDigits guards against header and metadata rows ("123 Something",
// "Итого") being mistaken for store labels.
const minStoreCodeDigits = 5

// StoreIdentity is a full store label: numeric code plus display name, e.g.
// "125007 MSK-PC-Gagarinsky".
type StoreIdentity struct {
	Code  StoreCode
	Label string
}

// NewStoreIdentity parses a full store label into a validated StoreIdentity.
func NewStoreIdentity(label string) (StoreIdentity, error) {
	code, ok := ParseStoreCode(label)
	if !ok {
		return StoreIdentity{}, fmt.Errorf("label %q does not start with a store code", label)
	}
	return StoreIdentity{Code: code, Label: label}, nil
}

// ParseStoreCode extracts the numeric code from a store label. A label must
// start with at least five digits followed by a space; leading zeros are
// tolerated. Returns false for anything else (product rows, headers, totals).
func ParseStoreCode(label string) (StoreCode, bool) {
	s := strings.TrimSpace(label)

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits < minStoreCodeDigits || digits == len(s) || s[digits] != ' ' {
		return 0, false
	}

	code, err := strconv.ParseInt(s[:digits], 10, 64)
	if err != nil {
		return 0, false
	}
	return StoreCode(code), true
}

// BuildStoreIndex maps store codes to their full labels. Labels that do not
// parse are skipped.
func BuildStoreIndex(labels []string) map[StoreCode]string {
	index := make(map[StoreCode]string, len(labels))
	for _, label := range labels {
		if code, ok := ParseStoreCode(label); ok {
			index[code] = label
		}
	}
	return index
}

// StoreCodeString returns the display form of a store label's code: the first
// whitespace-separated token, which is what transfer documents use to name a
// store.
func StoreCodeString(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return label
	}
	return fields[0]
}
