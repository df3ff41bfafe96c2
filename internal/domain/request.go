package domain

import (
	"fmt"
	"strings"
)

// Aggregation identifies the temporal resolution of a station record.
type Aggregation string

const (
	HalfHourly Aggregation = "HH"
	Daily      Aggregation = "DD"
	Weekly     Aggregation = "WW"
	Yearly     Aggregation = "YY"
)

// SetType is the FLUXNET2015 product variant.
type SetType string

const (
	FullSet SetType = "FULLSET"
	SubSet  SetType = "SUBSET"
)

// AllSites is the site argument that converts every station under the data root.
const AllSites = "all"

// ParseAggregation validates an aggregation code.
func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(strings.TrimSpace(s)); a {
	case HalfHourly, Daily, Weekly, Yearly:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q, choose from HH, DD, WW, YY", ErrInvalidAggregation, s)
	}
}

// ParseSetType validates a set type.
func ParseSetType(s string) (SetType, error) {
	switch st := SetType(strings.TrimSpace(s)); st {
	case FullSet, SubSet:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q, choose from FULLSET, SUBSET", ErrInvalidSetType, s)
	}
}

// Request holds the four conversion parameters of a run.
type Request struct {
	DataRoot    string
	Site        string
	Aggregation Aggregation
	SetType     SetType
}

// ForSite returns a copy of the request narrowed to one station.
func (r Request) ForSite(site string) Request {
	r.Site = site
	return r
}

// IsAll reports whether the request covers every station under the data root.
func (r Request) IsAll() bool {
	return r.Site == AllSites
}
