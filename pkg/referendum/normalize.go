package referendum

import "strings"

// codeWidth is the canonical width of a department code. Mainland codes are
// two characters ("01".."95", "2A", "2B"); the referendum table encodes some
// of them as bare numerics, which lose their leading zero.
const codeWidth = 2

// NormalizeDepartmentCode returns the canonical fixed-width form of a
// department code: trimmed and left-padded with '0' up to two characters.
// Codes already two or more characters long pass through unchanged, so
// three-digit overseas codes ("971") and alphabetic codes ("2A", "ZZ") keep
// their original spelling.
func NormalizeDepartmentCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) >= codeWidth {
		return code
	}
	return strings.Repeat("0", codeWidth-len(code)) + code
}

// overseasMarker flags department codes used for overseas territories and
// French residents abroad ("ZA".."ZZ", "2Z"...). Matching is case-sensitive:
// the reference tables only ever use uppercase 'Z' for these codes.
const overseasMarker = "Z"

// IsOverseasCode reports whether a normalized department code is an
// overseas/abroad code to be excluded from regional aggregation.
func IsOverseasCode(code string) bool {
	return strings.Contains(code, overseasMarker)
}
