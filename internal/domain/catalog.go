package domain

import (
	"fmt"
	"slices"
	"strings"
)

// UnitEntry is one aggregation-specific unit.
type UnitEntry struct {
	Aggregation Aggregation
	Unit        string
}

// UnitBlock lists the units of a variable whose unit depends on aggregation.
type UnitBlock []UnitEntry

// Unit is either a scalar unit string or a UnitBlock.
type Unit struct {
	scalar string
	block  UnitBlock
}

// ScalarUnit returns a unit that is the same at every aggregation.
func ScalarUnit(u string) Unit {
	return Unit{scalar: u}
}

// BlockUnit returns an aggregation-dependent unit. An empty block is a
// variable whose unit resolves to "" at every aggregation.
func BlockUnit(entries ...UnitEntry) Unit {
	if entries == nil {
		entries = UnitBlock{}
	}
	return Unit{block: entries}
}

// IsBlock reports whether the unit depends on aggregation.
func (u Unit) IsBlock() bool {
	return u.block != nil
}

// Block returns the unit block, or nil for a scalar unit.
func (u Unit) Block() UnitBlock {
	return u.block
}

// For returns the unit at aggregation agg. A block with no entry for agg
// yields "".
func (u Unit) For(agg Aggregation) string {
	if u.block == nil {
		return u.scalar
	}
	for _, e := range u.block {
		if e.Aggregation == agg {
			return e.Unit
		}
	}
	return ""
}

// VariableDefinition is the catalog entry of one canonical variable.
type VariableDefinition struct {
	Name        string
	Description string
	Group       string
	Unit        Unit
}

// GroupMember assigns a variable name (possibly a pattern) to a group.
type GroupMember struct {
	Group    string
	Variable string
}

// SiteRecord holds a station's registry entry.
type SiteRecord struct {
	Code                string
	Lat                 float64
	Lon                 float64
	Elevation           float64
	Country             string
	PlantFunctionalType string
}

// Catalog is the read-only reference state shared by every station of a run:
// the variable legend, the group membership and the site registry.
type Catalog struct {
	variables  map[string]VariableDefinition
	groups     map[string][]string
	groupOrder []string
	sites      map[string]SiteRecord
}

// NewCatalog indexes the reference tables. Each variable takes the first
// group it is a member of. Duplicate variable names, duplicate site codes and
// unit blocks with repeated aggregation codes are errors.
func NewCatalog(defs []VariableDefinition, members []GroupMember, sites []SiteRecord) (*Catalog, error) {
	c := &Catalog{
		variables: make(map[string]VariableDefinition, len(defs)),
		groups:    make(map[string][]string),
		sites:     make(map[string]SiteRecord, len(sites)),
	}

	for _, m := range members {
		if _, ok := c.groups[m.Group]; !ok {
			c.groupOrder = append(c.groupOrder, m.Group)
		}
		if !slices.Contains(c.groups[m.Group], m.Variable) {
			c.groups[m.Group] = append(c.groups[m.Group], m.Variable)
		}
	}

	for _, d := range defs {
		if _, dup := c.variables[d.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate variable %q", d.Name)
		}
		if err := checkUnitBlock(d); err != nil {
			return nil, err
		}
		if d.Group == "" {
			d.Group = c.groupOf(d.Name)
		}
		c.variables[d.Name] = d
	}

	for _, s := range sites {
		if _, dup := c.sites[s.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate site %q", s.Code)
		}
		c.sites[s.Code] = s
	}

	return c, nil
}

func checkUnitBlock(d VariableDefinition) error {
	seen := make(map[Aggregation]bool, len(d.Unit.block))
	for _, e := range d.Unit.block {
		if seen[e.Aggregation] {
			return fmt.Errorf("catalog: variable %q lists aggregation %s twice", d.Name, e.Aggregation)
		}
		seen[e.Aggregation] = true
	}
	return nil
}

func (c *Catalog) groupOf(name string) string {
	for _, g := range c.groupOrder {
		if slices.Contains(c.groups[g], name) {
			return g
		}
	}
	return ""
}

// Variable looks up a canonical variable by its exact catalog name.
func (c *Catalog) Variable(name string) (VariableDefinition, bool) {
	d, ok := c.variables[name]
	return d, ok
}

// Variables returns every variable definition, sorted by name.
func (c *Catalog) Variables() []VariableDefinition {
	out := make([]VariableDefinition, 0, len(c.variables))
	for _, d := range c.variables {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b VariableDefinition) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// HasGroup reports whether any variable belongs to group.
func (c *Catalog) HasGroup(group string) bool {
	_, ok := c.groups[group]
	return ok
}

// Groups returns the group names in the order they first appear.
func (c *Catalog) Groups() []string {
	return slices.Clone(c.groupOrder)
}

// Members returns the variable names listed under group.
func (c *Catalog) Members(group string) []string {
	return slices.Clone(c.groups[group])
}

// Site looks up a station in the site registry.
func (c *Catalog) Site(code string) (SiteRecord, error) {
	s, ok := c.sites[code]
	if !ok {
		return SiteRecord{}, fmt.Errorf("%w: %s", ErrMetadataMissing, code)
	}
	return s, nil
}

// SiteCodes returns the registered site codes, sorted.
func (c *Catalog) SiteCodes() []string {
	codes := make([]string, 0, len(c.sites))
	for code := range c.sites {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
