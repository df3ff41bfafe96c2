package domain

import "strings"

// QualityFlagsGroup is the group whose members are QC indicators.
const QualityFlagsGroup = "QUALITY FLAGS"

// qcMarker identifies a quality indicator in a variable name.
const qcMarker = "QC"

// GroupFlag enables or disables one variable group.
type GroupFlag struct {
	Group   string
	Enabled bool
}

// Policy is the user-editable list of group flags.
type Policy []GroupFlag

// Enabled reports whether group is switched on. A group listed more than
// once takes its last flag.
func (p Policy) Enabled(group string) bool {
	enabled := false
	for _, f := range p {
		if f.Group == group {
			enabled = f.Enabled
		}
	}
	return enabled
}

// EnabledGroups returns the enabled groups in policy order, without duplicates.
func (p Policy) EnabledGroups() []string {
	var out []string
	seen := make(map[string]bool, len(p))
	for _, f := range p {
		if seen[f.Group] || !p.Enabled(f.Group) {
			continue
		}
		seen[f.Group] = true
		out = append(out, f.Group)
	}
	return out
}

// UnknownGroups returns the policy groups the catalog has no members for.
func (p Policy) UnknownGroups(catalog *Catalog) []string {
	var out []string
	seen := make(map[string]bool, len(p))
	for _, f := range p {
		if seen[f.Group] || catalog.HasGroup(f.Group) {
			continue
		}
		seen[f.Group] = true
		out = append(out, f.Group)
	}
	return out
}

// ResolveAllowedVariables returns the names a station table may keep: every
// member of an enabled group, plus every table column matching a member
// pattern ("TS_F_MDS_#" admits "TS_F_MDS_1"). When the quality flags group is
// disabled, QC names are removed last and cannot be re-admitted. Groups
// unknown to the catalog are ignored.
func ResolveAllowedVariables(policy Policy, catalog *Catalog, columns []string) map[string]struct{} {
	allowed := make(map[string]struct{})

	for _, group := range policy.EnabledGroups() {
		for _, name := range catalog.Members(group) {
			allowed[name] = struct{}{}

			pattern := ParsePattern(name)
			if pattern.Kind == ExactName {
				continue
			}
			for _, col := range columns {
				if pattern.Matches(col) {
					allowed[col] = struct{}{}
				}
			}
		}
	}

	if !policy.Enabled(QualityFlagsGroup) {
		for name := range allowed {
			if IsQualityFlag(name) {
				delete(allowed, name)
			}
		}
	}

	return allowed
}

// IsQualityFlag reports whether a variable name denotes a QC indicator.
func IsQualityFlag(name string) bool {
	return strings.Contains(name, qcMarker)
}
