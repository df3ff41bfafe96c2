package reference

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	"gopkg.in/yaml.v3"
)

const policyTable = "output variables"

// ReadPolicyTSV parses the tab-separated output variables list (GROUP, FLAG)
// where FLAG is 1 to write a group and 0 to skip it.
func ReadPolicyTSV(r io.Reader) (domain.Policy, error) {
	cr := newCSVReader(r, '\t')
	h, err := readHeader(cr, policyTable, "group", "flag")
	if err != nil {
		return nil, err
	}

	var p domain.Policy
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", policyTable, err)
		}
		line, _ := cr.FieldPos(0)

		group := h.field(row, "group")
		if group == "" {
			continue
		}
		switch flag := h.field(row, "flag"); flag {
		case "1":
			p = append(p, domain.GroupFlag{Group: group, Enabled: true})
		case "0", "":
			p = append(p, domain.GroupFlag{Group: group, Enabled: false})
		default:
			return nil, fmt.Errorf("%s line %d: flag for %q must be 0 or 1, got %q", policyTable, line, group, flag)
		}
	}

	return p, nil
}

// policyDocument is the YAML form of the output variables list:
//
//	groups:
//	  QUALITY FLAGS: false
//	  METEOROLOGICAL: true
type policyDocument struct {
	Groups map[string]bool `yaml:"groups"`
}

// ReadPolicyYAML parses the YAML form of the output variables list. Groups
// are ordered by name.
func ReadPolicyYAML(r io.Reader) (domain.Policy, error) {
	var doc policyDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: decode yaml: %w", policyTable, err)
	}

	names := make([]string, 0, len(doc.Groups))
	for name := range doc.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	p := make(domain.Policy, 0, len(names))
	for _, name := range names {
		p = append(p, domain.GroupFlag{Group: name, Enabled: doc.Groups[name]})
	}
	return p, nil
}

// LoadPolicy reads the output variables list from path. Files ending in
// .yaml or .yml are YAML; anything else is the tab-separated form.
func LoadPolicy(path string) (domain.Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open policy: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadPolicyYAML(f)
	default:
		return ReadPolicyTSV(f)
	}
}
