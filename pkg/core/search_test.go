package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cofiy/pkg/core"
)

func TestSearch(t *testing.T) {
	doc := core.Document{Companies: []core.Company{
		{ID: "c1", Name: "Straße Logistics", Notes: []core.Note{
			{ID: "n1", Title: "Contract", Content: "Renewal due in MARCH"},
		}},
		{ID: "c2", Name: "Beta", Notes: []core.Note{
			{ID: "n1", Title: "March planning", Content: ""},
		}},
	}}

	t.Run("Matches Company Names With Case Folding", func(t *testing.T) {
		results := core.Search(doc, "sTRAßE LOG")
		require.Len(t, results, 1)
		assert.Equal(t, core.ResultCompany, results[0].Kind)
		assert.Equal(t, "Straße Logistics", results[0].Title())
	})

	t.Run("Matches Note Title And Content In Store Order", func(t *testing.T) {
		results := core.Search(doc, "march")
		require.Len(t, results, 2)
		assert.Equal(t, "c1", results[0].Company.ID)
		assert.Equal(t, "Contract", results[0].Title())
		assert.Equal(t, core.ResultNote, results[1].Kind)
		assert.Equal(t, "March planning", results[1].Note.Title)
	})

	t.Run("Blank Query", func(t *testing.T) {
		assert.Empty(t, core.Search(doc, "   "))
	})
}
