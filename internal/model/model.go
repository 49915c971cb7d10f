package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mark represents the treatment applied to one edge of a panel.
type Mark int

const (
	MarkNone   Mark = iota // Raw edge, nothing applied
	MarkTape               // Edge banding tape glued to the edge
	MarkGroove             // Routed groove cut into the edge
)

func (m Mark) String() string {
	switch m {
	case MarkTape:
		return "TAPE"
	case MarkGroove:
		return "GROOVE"
	default:
		return "NONE"
	}
}

// Glyph returns the symbol printed on cut lists for this mark.
func (m Mark) Glyph() string {
	switch m {
	case MarkTape:
		return "—"
	case MarkGroove:
		return "م"
	default:
		return ""
	}
}

// ASCIIGlyph returns a glyph that renders with the PDF core fonts.
func (m Mark) ASCIIGlyph() string {
	switch m {
	case MarkTape:
		return "-"
	case MarkGroove:
		return "G"
	default:
		return ""
	}
}

// MarshalText encodes the mark as its name so JSON output stays readable.
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText. Unknown names decode to MarkNone.
func (m *Mark) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "TAPE":
		*m = MarkTape
	case "GROOVE":
		*m = MarkGroove
	default:
		*m = MarkNone
	}
	return nil
}

// EdgeMarks holds the mark for each of the four panel edges.
// Top and bottom run along the part width, left and right along the height.
type EdgeMarks struct {
	Top    Mark `json:"top"`
	Bottom Mark `json:"bottom"`
	Left   Mark `json:"left"`
	Right  Mark `json:"right"`
}

// HasAny reports whether at least one edge is marked.
func (e EdgeMarks) HasAny() bool {
	return e.Top != MarkNone || e.Bottom != MarkNone || e.Left != MarkNone || e.Right != MarkNone
}

// Count returns how many edges carry the given mark.
func (e EdgeMarks) Count(m Mark) int {
	n := 0
	for _, v := range [4]Mark{e.Top, e.Bottom, e.Left, e.Right} {
		if v == m {
			n++
		}
	}
	return n
}

// String renders the marked edges, e.g. "T+L+R(G)".
func (e EdgeMarks) String() string {
	var sides []string
	for _, s := range []struct {
		name string
		mark Mark
	}{{"T", e.Top}, {"B", e.Bottom}, {"L", e.Left}, {"R", e.Right}} {
		switch s.mark {
		case MarkTape:
			sides = append(sides, s.name)
		case MarkGroove:
			sides = append(sides, s.name+"(G)")
		}
	}
	if len(sides) == 0 {
		return "None"
	}
	return strings.Join(sides, "+")
}

// PartCategory is the print bucket a part is listed under.
type PartCategory int

const (
	CategoryMain      PartCategory = iota // Carcass parts: sides, shelves, tops
	CategoryBackPanel                     // Back panels, usually thin board
	CategoryDoorFront                     // Doors and drawer fronts
)

func (c PartCategory) String() string {
	switch c {
	case CategoryBackPanel:
		return "BACK_PANEL"
	case CategoryDoorFront:
		return "DOOR_FRONT"
	default:
		return "MAIN"
	}
}

func (c PartCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *PartCategory) UnmarshalText(b []byte) error {
	switch string(b) {
	case "BACK_PANEL":
		*c = CategoryBackPanel
	case "DOOR_FRONT":
		*c = CategoryDoorFront
	default:
		*c = CategoryMain
	}
	return nil
}

// Part is a single cut panel as produced by the unit calculation backend.
// The backend sends the piece count as either "qty" or "quantity".
type Part struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Width       float64 `json:"width"`  // cm
	Height      float64 `json:"height"` // cm
	Qty         *int    `json:"qty,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	EdgeCode    string  `json:"edge_code,omitempty"`
	Description string  `json:"description,omitempty"`
}

// NewPart creates a part with a generated ID.
func NewPart(name string, w, h float64, qty int) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Width:    w,
		Height:   h,
		Quantity: &qty,
	}
}

// DisplayQuantity returns qty, falling back to quantity and then to 1.
func (p Part) DisplayQuantity() int {
	if p.Qty != nil {
		return *p.Qty
	}
	if p.Quantity != nil {
		return *p.Quantity
	}
	return 1
}

// Clone returns a copy that shares no pointers with p.
func (p Part) Clone() Part {
	cp := p
	if p.Qty != nil {
		q := *p.Qty
		cp.Qty = &q
	}
	if p.Quantity != nil {
		q := *p.Quantity
		cp.Quantity = &q
	}
	return cp
}

// Unit is a cabinet module made of an ordered list of parts.
type Unit struct {
	ID     string  `json:"id,omitempty"`
	Type   string  `json:"type"`
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
	Depth  float64 `json:"depth"`  // cm
	Parts  []Part  `json:"parts"`
}

// NewUnit creates an empty unit with a generated ID.
func NewUnit(unitType string, w, h, d float64) Unit {
	return Unit{
		ID:     uuid.New().String()[:8],
		Type:   unitType,
		Width:  w,
		Height: h,
		Depth:  d,
		Parts:  []Part{},
	}
}

// Project ties the units of one kitchen job together.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Units      []Unit    `json:"units"`
}

func NewProject(name string) Project {
	now := time.Now().UTC()
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Units:     []Unit{},
	}
}

// PartCount returns the number of physical pieces across all units.
func (p Project) PartCount() int {
	total := 0
	for _, u := range p.Units {
		for _, part := range u.Parts {
			total += part.DisplayQuantity()
		}
	}
	return total
}
