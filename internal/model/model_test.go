package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDisplayQuantityPrefersQty(t *testing.T) {
	p := Part{Name: "shelf", Qty: intPtr(3), Quantity: intPtr(5)}
	assert.Equal(t, 3, p.DisplayQuantity())
}

func TestDisplayQuantityFallsBackToQuantity(t *testing.T) {
	p := Part{Name: "shelf", Quantity: intPtr(5)}
	assert.Equal(t, 5, p.DisplayQuantity())
}

func TestDisplayQuantityDefaultsToOne(t *testing.T) {
	p := Part{Name: "shelf"}
	assert.Equal(t, 1, p.DisplayQuantity())
}

func TestDisplayQuantityKeepsExplicitZero(t *testing.T) {
	p := Part{Name: "shelf", Qty: intPtr(0), Quantity: intPtr(4)}
	assert.Equal(t, 0, p.DisplayQuantity())
}

func TestPartDecodesBothQuantityFields(t *testing.T) {
	var withQty, withQuantity, bare Part
	require.NoError(t, json.Unmarshal([]byte(`{"name":"door","width":40,"height":70,"qty":2}`), &withQty))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"door","width":40,"height":70,"quantity":4}`), &withQuantity))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"door","width":40,"height":70}`), &bare))

	assert.Equal(t, 2, withQty.DisplayQuantity())
	assert.Equal(t, 4, withQuantity.DisplayQuantity())
	assert.Equal(t, 1, bare.DisplayQuantity())
}

func TestCloneDoesNotSharePointers(t *testing.T) {
	p := Part{Name: "side", Qty: intPtr(2)}
	cp := p.Clone()
	*cp.Qty = 9
	assert.Equal(t, 2, *p.Qty)
}

func TestNewPartSetsQuantity(t *testing.T) {
	p := NewPart("shelf", 56, 30, 2)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, 2, p.DisplayQuantity())
}

func TestEdgeMarksHasAnyAndCount(t *testing.T) {
	var none EdgeMarks
	assert.False(t, none.HasAny())

	m := EdgeMarks{Top: MarkTape, Left: MarkTape, Right: MarkGroove}
	assert.True(t, m.HasAny())
	assert.Equal(t, 2, m.Count(MarkTape))
	assert.Equal(t, 1, m.Count(MarkGroove))
	assert.Equal(t, 1, m.Count(MarkNone))
}

func TestEdgeMarksString(t *testing.T) {
	assert.Equal(t, "None", EdgeMarks{}.String())
	assert.Equal(t, "T+L+R(G)", EdgeMarks{Top: MarkTape, Left: MarkTape, Right: MarkGroove}.String())
}

func TestMarkJSONRoundTrip(t *testing.T) {
	in := EdgeMarks{Top: MarkTape, Bottom: MarkGroove}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"top":"TAPE","bottom":"GROOVE","left":"NONE","right":"NONE"}`, string(data))

	var out EdgeMarks
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMarkGlyphs(t *testing.T) {
	assert.Equal(t, "م", MarkGroove.Glyph())
	assert.Equal(t, "", MarkNone.Glyph())
	assert.Equal(t, "G", MarkGroove.ASCIIGlyph())
	assert.Equal(t, "-", MarkTape.ASCIIGlyph())
}

func TestPartCategoryText(t *testing.T) {
	data, err := json.Marshal(map[string]PartCategory{"c": CategoryDoorFront})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"DOOR_FRONT"}`, string(data))

	var c PartCategory
	require.NoError(t, c.UnmarshalText([]byte("BACK_PANEL")))
	assert.Equal(t, CategoryBackPanel, c)
	require.NoError(t, c.UnmarshalText([]byte("something")))
	assert.Equal(t, CategoryMain, c)
}

func TestProjectPartCount(t *testing.T) {
	p := NewProject("Kitchen")
	u := NewUnit("base_cabinet", 60, 72, 56)
	u.Parts = append(u.Parts, NewPart("side_panel", 72, 56, 2), Part{Name: "shelf"})
	p.Units = append(p.Units, u)
	assert.Equal(t, 3, p.PartCount())
}
