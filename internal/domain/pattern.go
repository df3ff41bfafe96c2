package domain

import "strings"

// PatternKind tags the shape of a column name.
type PatternKind int

const (
	// ExactName is a name matched verbatim.
	ExactName PatternKind = iota
	// NumberedReplicate is a sensor replicate; the catalog writes the index as "#".
	NumberedReplicate
	// ThresholdReplicate is a dynamic USTAR threshold column; the catalog
	// writes the percentile as "XX".
	ThresholdReplicate
)

const (
	// WildcardMarker stands for a replicate index in catalog names.
	WildcardMarker = "#"
	// ThresholdMarker stands for a threshold percentile in catalog names.
	ThresholdMarker = "XX"

	thresholdToken = "CUT"
)

func (k PatternKind) String() string {
	switch k {
	case ExactName:
		return "exact"
	case NumberedReplicate:
		return "numbered"
	case ThresholdReplicate:
		return "threshold"
	default:
		return "unknown"
	}
}

// ColumnPattern is a parsed column name. Key is the name the catalog lists
// it under; Prefix and Suffix surround the replicate index.
type ColumnPattern struct {
	Kind   PatternKind
	Key    string
	Prefix string
	Suffix string
}

// ParsePattern parses a catalog name, which may carry a "#" wildcard or a
// "_CUT_XX" threshold marker.
func ParsePattern(name string) ColumnPattern {
	if i := strings.Index(name, WildcardMarker); i >= 0 {
		return ColumnPattern{
			Kind:   NumberedReplicate,
			Key:    name,
			Prefix: name[:i],
			Suffix: name[i+len(WildcardMarker):],
		}
	}
	if base, ok := strings.CutSuffix(name, "_"+thresholdToken+"_"+ThresholdMarker); ok && base != "" {
		return ColumnPattern{
			Kind:   ThresholdReplicate,
			Key:    name,
			Prefix: base + "_" + thresholdToken + "_",
		}
	}
	return ColumnPattern{Kind: ExactName, Key: name}
}

// ClassifyColumn parses a raw table header and derives the catalog key it
// would be listed under if it is a replicate. A header that looks like
// neither replicate form is an ExactName keyed by itself.
func ClassifyColumn(column string) ColumnPattern {
	tokens := strings.Split(column, "_")
	n := len(tokens)

	if n >= 3 && tokens[n-2] == thresholdToken && isDigits(tokens[n-1]) {
		prefix := strings.Join(tokens[:n-1], "_") + "_"
		return ColumnPattern{
			Kind:   ThresholdReplicate,
			Key:    prefix + ThresholdMarker,
			Prefix: prefix,
		}
	}

	// The last all-digit token after the first is the replicate index.
	for i := n - 1; i >= 1; i-- {
		if !isDigits(tokens[i]) {
			continue
		}
		prefix := strings.Join(tokens[:i], "_") + "_"
		suffix := ""
		if i < n-1 {
			suffix = "_" + strings.Join(tokens[i+1:], "_")
		}
		return ColumnPattern{
			Kind:   NumberedReplicate,
			Key:    prefix + WildcardMarker + suffix,
			Prefix: prefix,
			Suffix: suffix,
		}
	}

	return ColumnPattern{Kind: ExactName, Key: column}
}

// Matches reports whether a raw column is an instance of the pattern.
func (p ColumnPattern) Matches(column string) bool {
	switch p.Kind {
	case ExactName:
		return column == p.Key
	case NumberedReplicate:
		if len(column) <= len(p.Prefix)+len(p.Suffix) {
			return false
		}
		if !strings.HasPrefix(column, p.Prefix) || !strings.HasSuffix(column, p.Suffix) {
			return false
		}
		return isDigits(column[len(p.Prefix) : len(column)-len(p.Suffix)])
	case ThresholdReplicate:
		index, ok := strings.CutPrefix(column, p.Prefix)
		return ok && isDigits(index)
	default:
		return false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
