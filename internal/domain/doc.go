// Package domain resolves FLUXNET2015 station columns to canonical variables
// and attaches the metadata written alongside them.
//
// # Data Source
//
// FLUXNET2015 Tier 2 data ships as one directory per station, e.g.
//
//	FLX_AT-Neu_FLUXNET2015_FULLSET_2002-2012_1-4/
//	  FLX_AT-Neu_FLUXNET2015_FULLSET_HH_2002-2012_1-4.csv
//	  FLX_AT-Neu_FLUXNET2015_FULLSET_DD_2002-2012_1-4.csv
//
// Three reference tables describe the data: the variable legend
// (name, description, units), the site registry (coordinates, elevation,
// country, plant functional type) and the variable groups table that
// assigns each variable to a semantic group such as "QUALITY FLAGS".
//
// # Column Naming Conventions
//
// Exact names:
//
//	"TA_F_MDS", "NEE_VUT_REF" appear verbatim in the legend.
//
// Numbered replicates:
//
//	Repeated sensors are numbered, e.g. "TS_F_MDS_1", "TS_F_MDS_2". The
//	reference tables list them once with a "#" wildcard: "TS_F_MDS_#".
//	The wildcard stands for one or more digits and may sit mid-name,
//	e.g. "SWC_F_MDS_#_QC".
//
// Threshold replicates:
//
//	Night-time partitioning with the dynamic USTAR threshold (CUT) produces
//	one column per threshold percentile, e.g. "NEE_CUT_05", "NEE_CUT_50".
//	The legend keys all of them as "NEE_CUT_XX". Only names whose
//	second-to-last token is "CUT" and whose last token is all digits are
//	rewritten; other dynamically suffixed families are not recognised.
//
// Quality flags:
//
//	Any name containing "QC" is a quality indicator. When the
//	"QUALITY FLAGS" group is disabled these names are always excluded.
//
// # Units
//
// Most variables report one unit regardless of aggregation. Some report a
// rate at half-hourly resolution and an accumulated total at coarser ones;
// for those the legend leaves the unit empty and lists one row per
// aggregation code right after the variable's row. [Unit] models both
// shapes. An aggregation missing from a block resolves to "", never to
// another aggregation's unit.
//
// # Fill Values
//
// Missing data is -9999 in the CSVs and stays -9999 in the output, declared
// through _FillValue. Coordinates and the time axis never carry a fill value.
package domain
