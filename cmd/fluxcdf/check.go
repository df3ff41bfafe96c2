package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/fluxcdf/internal/adapter/reference"
	"github.com/couchcryptid/fluxcdf/internal/config"
	"github.com/couchcryptid/fluxcdf/internal/domain"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("reference check failed")

func checkCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the reference tables and output variables list",
		Long: `Load the variable legend, site registry, variable groups and output
variables list and check them against each other without converting
any station.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.OutOrStdout(), cfg)
		},
	}
}

// phase tracks pass/fail for a check phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runCheck(w io.Writer, cfg *config.Config) error {
	fmt.Fprintln(w, "=== FLUXNET Reference Check ===")
	fmt.Fprintln(w)

	catalog, err := reference.LoadCatalog(cfg.ReferencePaths())
	if err != nil {
		fmt.Fprintf(w, "FATAL: load reference tables: %v\n", err)
		return err
	}
	policy, err := reference.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		fmt.Fprintf(w, "FATAL: load output variables: %v\n", err)
		return err
	}

	phases := []*phase{
		checkPolicyGroups(policy, catalog),
		checkGroupMembers(catalog),
		checkSites(catalog),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Variables: %d, groups: %d (%d enabled), sites: %d\n",
		len(catalog.Variables()), len(catalog.Groups()), len(policy.EnabledGroups()), len(catalog.SiteCodes()))
	printUnitCoverage(w, catalog)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(w, "\nCheck FAILED.")
	return errCheckFailed
}

// checkPolicyGroups flags policy groups that select nothing.
func checkPolicyGroups(policy domain.Policy, catalog *domain.Catalog) *phase {
	p := &phase{name: "Policy groups exist in variable groups"}
	for _, g := range policy.UnknownGroups(catalog) {
		p.errorf("group %q has no variables", g)
	}
	if len(policy.EnabledGroups()) == 0 {
		p.errorf("no group is enabled, every output would be empty")
	}
	return p
}

// checkGroupMembers flags group members with no legend entry. Such members
// are admitted by the policy but can never be resolved.
func checkGroupMembers(catalog *domain.Catalog) *phase {
	p := &phase{name: "Group members defined in legend"}
	for _, g := range catalog.Groups() {
		for _, name := range catalog.Members(g) {
			if _, ok := catalog.Variable(name); !ok {
				p.errorf("%s: %s", g, name)
			}
		}
	}
	return p
}

func checkSites(catalog *domain.Catalog) *phase {
	p := &phase{name: "Site coordinates in range"}
	for _, code := range catalog.SiteCodes() {
		s, err := catalog.Site(code)
		if err != nil {
			p.errorf("%v", err)
			continue
		}
		if !(s.Lat >= -90 && s.Lat <= 90) {
			p.errorf("%s: latitude %v", code, s.Lat)
		}
		if !(s.Lon >= -180 && s.Lon <= 180) {
			p.errorf("%s: longitude %v", code, s.Lon)
		}
	}
	return p
}

// printUnitCoverage reports, per aggregation, how many block-unit variables
// have no unit for it. These variables get an empty units attribute.
func printUnitCoverage(w io.Writer, catalog *domain.Catalog) {
	blocks := 0
	missing := map[domain.Aggregation]int{}
	for _, d := range catalog.Variables() {
		if !d.Unit.IsBlock() {
			continue
		}
		blocks++
		for _, agg := range []domain.Aggregation{domain.HalfHourly, domain.Daily, domain.Weekly, domain.Yearly} {
			if d.Unit.For(agg) == "" {
				missing[agg]++
			}
		}
	}
	fmt.Fprintf(w, "Unit blocks: %d variables, without unit at HH %d, DD %d, WW %d, YY %d\n",
		blocks, missing[domain.HalfHourly], missing[domain.Daily], missing[domain.Weekly], missing[domain.Yearly])
}
