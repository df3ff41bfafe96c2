package domain

import (
	"fmt"
	"time"
)

// FillValue marks missing data in station records and in the output.
const FillValue = -9999.0

const (
	titlePrefix  = "FLUXNET 2015 Tier 2"
	institution  = "https://fluxnet.org"
	source       = "FLUXNET"
	comment      = "Data converted from raw .CSV data to netCDF without any further processing steps."
	historyStamp = "2006-01-02 15:04:05"
	programName  = "fluxcdf"
)

// Fill is a variable's _FillValue. The zero value means no fill value at all,
// which is what coordinates and the time axis carry.
type Fill struct {
	Value float64
	Set   bool
}

// NoFill declares that a variable has no fill value.
var NoFill = Fill{}

// DefaultFill is the fill value of every data variable.
var DefaultFill = Fill{Value: FillValue, Set: true}

// Attribute is a named string or float64 attribute value.
type Attribute struct {
	Name  string
	Value any
}

// DataVariable is a retained column with its metadata.
type DataVariable struct {
	Name     string
	Values   []float64
	LongName string
	Units    string
	Fill     Fill
}

// Attributes returns the variable attributes in write order.
func (v DataVariable) Attributes() []Attribute {
	attrs := []Attribute{
		{Name: "long_name", Value: v.LongName},
		{Name: "units", Value: v.Units},
	}
	if v.Fill.Set {
		attrs = append(attrs, Attribute{Name: "_FillValue", Value: v.Fill.Value})
	}
	return attrs
}

// Coordinate is a scalar spatial coordinate of the station.
type Coordinate struct {
	Name         string
	Value        float64
	StandardName string
	LongName     string
	Units        string
	Fill         Fill
}

// Attributes returns the coordinate attributes in write order.
func (c Coordinate) Attributes() []Attribute {
	attrs := []Attribute{
		{Name: "standard_name", Value: c.StandardName},
		{Name: "long_name", Value: c.LongName},
		{Name: "units", Value: c.Units},
	}
	if c.Fill.Set {
		attrs = append(attrs, Attribute{Name: "_FillValue", Value: c.Fill.Value})
	}
	return attrs
}

// TimeAxis is the unlimited time dimension of a dataset.
type TimeAxis struct {
	Values   []time.Time
	LongName string
	Fill     Fill
}

// GlobalAttributes is the fixed set of dataset-level attributes.
type GlobalAttributes struct {
	Title               string
	Content             string
	Country             string
	Elevation           float64
	Longitude           float64
	Latitude            float64
	PlantFunctionalType string
	Institution         string
	Source              string
	History             string
	Contact             string
	Comment             string
}

// Attributes returns the global attributes in write order.
func (g GlobalAttributes) Attributes() []Attribute {
	return []Attribute{
		{Name: "title", Value: g.Title},
		{Name: "content", Value: g.Content},
		{Name: "country", Value: g.Country},
		{Name: "elevation", Value: g.Elevation},
		{Name: "longitude", Value: g.Longitude},
		{Name: "latitude", Value: g.Latitude},
		{Name: "plant_functional_type", Value: g.PlantFunctionalType},
		{Name: "institution", Value: g.Institution},
		{Name: "source", Value: g.Source},
		{Name: "history", Value: g.History},
		{Name: "contact", Value: g.Contact},
		{Name: "comment", Value: g.Comment},
	}
}

// AnnotatedDataset is a station table ready for serialization.
type AnnotatedDataset struct {
	Name        string
	Time        TimeAxis
	Variables   []DataVariable
	Coordinates []Coordinate
	Global      GlobalAttributes
}

// Variable looks up a data variable by name.
func (d AnnotatedDataset) Variable(name string) (DataVariable, bool) {
	for _, v := range d.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return DataVariable{}, false
}

// Invocation records how and when a station was converted.
type Invocation struct {
	Request     Request
	ConvertedAt time.Time
	Contact     string
}

// DatasetName returns the deterministic dataset name for a site and aggregation.
func DatasetName(site string, agg Aggregation) string {
	return fmt.Sprintf("FLX_%s_%s", site, agg)
}

// Attach builds the annotated dataset of one station from its table and
// resolved columns. Resolved columns missing from the table are skipped.
func Attach(table Table, resolved []ResolvedVariable, site SiteRecord, inv Invocation) AnnotatedDataset {
	req := inv.Request

	vars := make([]DataVariable, 0, len(resolved))
	for _, rv := range resolved {
		col, ok := table.Column(rv.RawColumn)
		if !ok {
			continue
		}
		vars = append(vars, DataVariable{
			Name:     rv.RawColumn,
			Values:   col.Values,
			LongName: rv.Description,
			Units:    rv.Unit,
			Fill:     DefaultFill,
		})
	}

	return AnnotatedDataset{
		Name: DatasetName(req.Site, req.Aggregation),
		Time: TimeAxis{
			Values:   table.Time,
			LongName: "time",
			Fill:     NoFill,
		},
		Variables: vars,
		Coordinates: []Coordinate{
			{
				Name:         "lon",
				Value:        site.Lon,
				StandardName: "longitude",
				LongName:     "longitude coordinate",
				Units:        "degrees_east",
				Fill:         NoFill,
			},
			{
				Name:         "lat",
				Value:        site.Lat,
				StandardName: "latitude",
				LongName:     "latitude coordinate",
				Units:        "degrees_north",
				Fill:         NoFill,
			},
		},
		Global: GlobalAttributes{
			Title:               fmt.Sprintf("%s %s %s", titlePrefix, req.Site, req.Aggregation),
			Content:             "Flux station " + req.Site,
			Country:             site.Country,
			Elevation:           site.Elevation,
			Longitude:           site.Lon,
			Latitude:            site.Lat,
			PlantFunctionalType: site.PlantFunctionalType,
			Institution:         institution,
			Source:              source,
			History:             history(inv),
			Contact:             inv.Contact,
			Comment:             comment,
		},
	}
}

// history formats the conversion time and the invocation parameters.
func history(inv Invocation) string {
	r := inv.Request
	return fmt.Sprintf("%s %s convert(%s, %s, %s, %s)",
		inv.ConvertedAt.Format(historyStamp), programName,
		r.DataRoot, r.Site, r.Aggregation, r.SetType)
}
