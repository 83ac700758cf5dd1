package layer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/brainboard/pkg/errors"
)

// Role is the layout function of a layer.
type Role int

const (
	IdeaCard          Role = 1  // movable idea card packed by reflows
	CombinaisonPanel  Role = 15 // two-part combinaison panel, also a Moscow quadrant
	RaffinementBank   Role = 16 // raffinement idea bank
	RaffinementHeader Role = 17 // raffinement header band
	ColumnHeader      Role = 18 // raffinement column header
	CombinaisonBank   Role = 19 // combinaison idea bank
	MoscowQuadrants   Role = 20 // Moscow quadrant container
	MoscowLabel       Role = 21 // Moscow label, anchors the selected ideas
)

// Template names used by the role table.
const (
	TemplateNone        = ""
	TemplateCombinaison = "combinaison"
	TemplateRaffinement = "raffinement"
	TemplateMoscow      = "moscow"
)

type roleInfo struct {
	name     string
	template string
}

var roles = map[Role]roleInfo{
	IdeaCard:          {"idea-card", TemplateNone},
	CombinaisonPanel:  {"combinaison-panel", TemplateCombinaison},
	RaffinementBank:   {"raffinement-bank", TemplateRaffinement},
	RaffinementHeader: {"raffinement-header", TemplateRaffinement},
	ColumnHeader:      {"column-header", TemplateRaffinement},
	CombinaisonBank:   {"combinaison-bank", TemplateCombinaison},
	MoscowQuadrants:   {"moscow-quadrants", TemplateMoscow},
	MoscowLabel:       {"moscow-label", TemplateMoscow},
}

// Roles returns every valid role in ascending order.
func Roles() []Role {
	return []Role{
		IdeaCard, CombinaisonPanel, RaffinementBank, RaffinementHeader,
		ColumnHeader, CombinaisonBank, MoscowQuadrants, MoscowLabel,
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// String returns the role's name, or its number if unknown.
func (r Role) String() string {
	if info, ok := roles[r]; ok {
		return info.name
	}
	return strconv.Itoa(int(r))
}

// Template returns the template that owns r, or TemplateNone for idea cards.
func (r Role) Template() string { return roles[r].template }

// Scaffold reports whether r is a template scaffold shape.
func (r Role) Scaffold() bool { return r.Valid() && r != IdeaCard }

// ParseRole accepts a role name ("idea-card") or its numeric code ("1").
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		r := Role(n)
		if !r.Valid() {
			return 0, errors.New(errors.ErrCodeInvalidRole, "unknown role %d", n)
		}
		return r, nil
	}
	for r, info := range roles {
		if info.name == s {
			return r, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidRole, "unknown role %q", s)
}

// UnmarshalJSON rejects role codes outside the closed set.
func (r *Role) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}
	if !Role(n).Valid() {
		return errors.New(errors.ErrCodeInvalidRole, "unknown role %d", n)
	}
	*r = Role(n)
	return nil
}
