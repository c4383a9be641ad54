package n400

import (
	"strings"
)

// FormatDate rewrites YYYY-MM-DD as MM/DD/YYYY. A ten character value that
// already contains a slash is returned unchanged, as is anything that is not
// three hyphen-separated parts.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, "/") && len(s) == 10 {
		return s
	}
	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) == 3 {
			return parts[1] + "/" + parts[2] + "/" + parts[0]
		}
	}
	return s
}

// CleanIdentifier strips hyphens and spaces from an A-number or SSN.
func CleanIdentifier(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

// SplitWeight left-pads the weight to three characters and returns the
// first three, one per template box.
func SplitWeight(s string) [3]string {
	r := []rune(s)
	for len(r) < 3 {
		r = append([]rune{'0'}, r...)
	}
	return [3]string{string(r[0]), string(r[1]), string(r[2])}
}

// residenceState is the template's state box quirk: the value is upper-cased
// and shifted one space right unless it already starts with a space.
func residenceState(s string) string {
	if strings.HasPrefix(s, " ") {
		return s
	}
	return " " + strings.ToUpper(s)
}

// meansPresent reports whether a residence "to" date is the literal
// "present", which leaves the template's own value alone.
func meansPresent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "present")
}

// answer normalises a yes/no response. Anything other than yes or no
// (case-insensitive) yields "".
func answer(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return "yes"
	case "no":
		return "no"
	}
	return ""
}
