package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contractdesk/go-contract-backend/internal/catalog/domain"
)

func TestSeedCatalogLoads(t *testing.T) {
	cat, err := New(Seed())
	require.NoError(t, err)

	cats := cat.Categories()
	require.Len(t, cats, 4)

	// SortOrder drives panel order.
	for i := 1; i < len(cats); i++ {
		assert.LessOrEqual(t, cats[i-1].SortOrder, cats[i].SortOrder)
	}
}

func TestCatalogReferentialIntegrity(t *testing.T) {
	cat, err := New(Seed())
	require.NoError(t, err)

	categoryIDs := map[string]int{}
	for _, c := range cat.Categories() {
		categoryIDs[c.ID]++
	}

	for _, c := range cat.Categories() {
		for _, b := range c.Blocks {
			assert.Equal(t, 1, categoryIDs[b.CategoryID], "block %s category", b.ID)
			require.NotEmpty(t, b.Variants, "block %s must have variants", b.ID)
			for _, v := range b.Variants {
				assert.Equal(t, b.ID, v.BlockID, "variant %s block", v.ID)
			}
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	cat, err := New(Seed())
	require.NoError(t, err)

	t.Run("block by tag", func(t *testing.T) {
		b, err := cat.BlockByTag(domain.TagContact)
		require.NoError(t, err)
		assert.Equal(t, "blk-contact", b.ID)

		_, err = cat.BlockByTag("nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("variant by nodeType", func(t *testing.T) {
		v, err := cat.Variant("contactSingle")
		require.NoError(t, err)
		assert.Equal(t, "var-contact-single", v.ID)

		_, err = cat.Variant("ghostNode")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("tag for nodeType", func(t *testing.T) {
		tag, err := cat.TagForNodeType("billingRecurring")
		require.NoError(t, err)
		assert.Equal(t, domain.TagBilling, tag)
	})
}

func TestCatalogRejectsBrokenDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *domain.Document)
	}{
		{
			name: "orphan block",
			mutate: func(doc *domain.Document) {
				doc.Categories[0].Blocks[0].CategoryID = "cat-ghost"
			},
		},
		{
			name: "block without variants",
			mutate: func(doc *domain.Document) {
				doc.Categories[0].Blocks[0].Variants = nil
			},
		},
		{
			name: "duplicate nodeType",
			mutate: func(doc *domain.Document) {
				doc.Categories[1].Blocks[0].Variants[0].NodeType = "contactSingle"
			},
		},
		{
			name: "variant under wrong block",
			mutate: func(doc *domain.Document) {
				doc.Categories[0].Blocks[0].Variants[0].BlockID = "blk-service"
			},
		},
		{
			name: "connection to unknown block",
			mutate: func(doc *domain.Document) {
				doc.Connections[0].TargetBlockID = "blk-ghost"
			},
		},
		{
			name: "duplicate field name",
			mutate: func(doc *domain.Document) {
				v := &doc.Categories[0].Blocks[0].Variants[0]
				v.Fields = append(v.Fields, v.Fields[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Seed()
			tt.mutate(doc)
			_, err := New(doc)
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestCatalogDocumentRoundTrip(t *testing.T) {
	doc := Seed()

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded domain.Document
	require.NoError(t, json.Unmarshal(raw, &decoded))

	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))

	// The decoded document must still index cleanly.
	_, err = New(&decoded)
	require.NoError(t, err)
}
