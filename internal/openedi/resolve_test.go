package openedi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/edispec/internal/doc"
)

func TestDefinitionName(t *testing.T) {
	assert.Equal(t, "ST", DefinitionName("#/components/schemas/ST"))
	assert.Equal(t, "a/b", DefinitionName("#/components/schemas/a~1b"))
	assert.Equal(t, "X", DefinitionName("#/$defs/X"))
	assert.Equal(t, "Bare", DefinitionName("Bare"))
	assert.Equal(t, "", DefinitionName("other.json#/components/schemas/ST"))
	assert.Equal(t, "", DefinitionName(""))
}

func TestResolver_Classify(t *testing.T) {
	schemas := doc.ObjectOf(
		"Loop_N1", doc.ObjectOf(MarkerLoop, doc.String("N1")),
		"N1", doc.ObjectOf(MarkerSegment, doc.String("N1")),
		"Both", doc.ObjectOf(MarkerSegment, doc.String("S"), MarkerLoop, doc.String("L")),
		"Codes", doc.ObjectOf("enum", doc.Array(doc.String("A"))),
		"Msg", doc.ObjectOf(MarkerMessage, doc.Number("850")),
	)
	r := NewResolver(schemas)

	d, ok := r.Resolve("#/components/schemas/Loop_N1")
	require.True(t, ok)
	assert.Equal(t, KindLoop, d.Kind)
	assert.Equal(t, "N1", d.Marker)

	d, ok = r.Resolve("#/components/schemas/N1")
	require.True(t, ok)
	assert.Equal(t, KindSegment, d.Kind)

	d, ok = r.Resolve("#/components/schemas/Both")
	require.True(t, ok)
	assert.Equal(t, KindLoop, d.Kind)
	assert.Equal(t, "L", d.Marker)

	d, ok = r.Resolve("#/components/schemas/Codes")
	require.True(t, ok)
	assert.Equal(t, KindOpaque, d.Kind)

	_, ok = r.Resolve("#/components/schemas/Nope")
	assert.False(t, ok)

	msg, code, ok := r.FindMessage()
	require.True(t, ok)
	assert.Equal(t, "Msg", msg.Name)
	assert.Equal(t, "850", code)
}
