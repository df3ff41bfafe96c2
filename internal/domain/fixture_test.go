package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSite    = "AT-Neu"
	groupMeteo  = "METEO"
	groupNEE    = "NEE"
	groupEnergy = "ENERGY"
)

// newTestCatalog builds a small legend modelled on the FLUXNET2015 FULLSET
// variable codes.
func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	defs := []VariableDefinition{
		{Name: "TA_F_MDS", Description: "Air temperature, gapfilled using MDS method", Unit: ScalarUnit("deg C")},
		{Name: "TA_F_MDS_QC", Description: "Quality flag for TA_F_MDS", Unit: ScalarUnit("nondimensional")},
		{Name: "TA_F_MDS_CUT_XX", Description: "Air temperature, CUT threshold XX", Unit: ScalarUnit("deg C")},
		{Name: "SW_IN_F", Description: "Shortwave radiation, incoming, consolidated", Unit: ScalarUnit("W m-2")},
		{Name: "TS_F_MDS_#", Description: "Soil temperature, gapfilled using MDS method", Unit: ScalarUnit("deg C")},
		{Name: "TS_F_MDS_#_QC", Description: "Quality flag for TS_F_MDS_#", Unit: ScalarUnit("nondimensional")},
		{Name: "P_F", Description: "Precipitation consolidated from P and P_ERA", Unit: BlockUnit(
			UnitEntry{Aggregation: HalfHourly, Unit: "mm"},
			UnitEntry{Aggregation: Daily, Unit: "mm d-1"},
			UnitEntry{Aggregation: Weekly, Unit: "mm d-1"},
			UnitEntry{Aggregation: Yearly, Unit: "mm y-1"},
		)},
		{Name: "NEE_VUT_REF", Description: "Net Ecosystem Exchange, using Variable Ustar Threshold (VUT)", Unit: BlockUnit(
			UnitEntry{Aggregation: HalfHourly, Unit: "umolCO2 m-2 s-1"},
			UnitEntry{Aggregation: Daily, Unit: "gC m-2 d-1"},
			UnitEntry{Aggregation: Weekly, Unit: "gC m-2 d-1"},
			UnitEntry{Aggregation: Yearly, Unit: "gC m-2 y-1"},
		)},
		{Name: "NEE_VUT_REF_QC", Description: "Quality flag for NEE_VUT_REF", Unit: BlockUnit(
			UnitEntry{Aggregation: Daily, Unit: "fraction"},
			UnitEntry{Aggregation: Weekly, Unit: "fraction"},
			UnitEntry{Aggregation: Yearly, Unit: "fraction"},
		)},
		{Name: "NEE_CUT_XX", Description: "Net Ecosystem Exchange, using Constant Ustar Threshold (CUT), percentile XX", Unit: BlockUnit(
			UnitEntry{Aggregation: HalfHourly, Unit: "umolCO2 m-2 s-1"},
			UnitEntry{Aggregation: Daily, Unit: "gC m-2 d-1"},
		)},
		{Name: "LE_F_MDS", Description: "Latent heat flux, gapfilled using MDS method", Unit: ScalarUnit("W m-2")},
	}

	members := []GroupMember{
		{Group: groupMeteo, Variable: "TA_F_MDS"},
		{Group: groupMeteo, Variable: "TA_F_MDS_CUT_XX"},
		{Group: groupMeteo, Variable: "SW_IN_F"},
		{Group: groupMeteo, Variable: "TS_F_MDS_#"},
		{Group: groupMeteo, Variable: "P_F"},
		{Group: groupMeteo, Variable: "FOO_LISTED"},
		{Group: groupNEE, Variable: "NEE_VUT_REF"},
		{Group: groupNEE, Variable: "NEE_VUT_REF_QC"},
		{Group: groupNEE, Variable: "NEE_CUT_XX"},
		{Group: groupEnergy, Variable: "LE_F_MDS"},
		{Group: QualityFlagsGroup, Variable: "TA_F_MDS_QC"},
		{Group: QualityFlagsGroup, Variable: "NEE_VUT_REF_QC"},
		{Group: QualityFlagsGroup, Variable: "TS_F_MDS_#_QC"},
	}

	sites := []SiteRecord{
		{Code: testSite, Lat: 47.11667, Lon: 11.3175, Elevation: 970, Country: "Austria", PlantFunctionalType: "GRA"},
		{Code: "CH-Cha", Lat: 47.21022, Lon: 8.41044, Elevation: 393, Country: "Switzerland", PlantFunctionalType: "GRA"},
	}

	c, err := NewCatalog(defs, members, sites)
	require.NoError(t, err)
	return c
}

// policyWith enables exactly the given groups out of every fixture group.
func policyWith(enabled ...string) Policy {
	on := make(map[string]bool, len(enabled))
	for _, g := range enabled {
		on[g] = true
	}
	var p Policy
	for _, g := range []string{groupMeteo, groupNEE, groupEnergy, QualityFlagsGroup} {
		p = append(p, GroupFlag{Group: g, Enabled: on[g]})
	}
	return p
}
