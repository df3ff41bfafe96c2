package reference

import (
	"fmt"
	"io"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

const groupsTable = "variable groups"

// ReadGroups parses the semicolon-separated variable groups table (Group;Variable).
func ReadGroups(r io.Reader) ([]domain.GroupMember, error) {
	cr := newCSVReader(r, ';')
	h, err := readHeader(cr, groupsTable, "group", "variable")
	if err != nil {
		return nil, err
	}

	var members []domain.GroupMember
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", groupsTable, err)
		}

		m := domain.GroupMember{Group: h.field(row, "group"), Variable: h.field(row, "variable")}
		if m.Group == "" || m.Variable == "" {
			continue
		}
		members = append(members, m)
	}

	return members, nil
}
