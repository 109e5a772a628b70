package storefront

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casabert/storefront-backend/internal/domain/imageindex"
)

func sampleDocument() Document {
	return Document{
		Meta: Meta{Title: "Casa Bert · Mini Shop", Version: "3"},
		Hero: Hero{Text: "Mercadito económico"},
		Location: Location{
			Name:    "Casa Bert",
			PlaceID: "ChIJabc123",
		},
		Catalog: []Category{
			{
				Name:             "Bebidas",
				DescriptionShort: "Frías y calientes",
				Items: []Item{
					{Name: "Agua", Description: "Natural de manantial"},
					{Name: "Café de Olla", FotoURL: "https://cdn.example.com/explicit.jpg"},
				},
			},
		},
	}
}

func TestMergePrefersRemotePlaceID(t *testing.T) {
	remote := sampleDocument()
	remote.Location.PlaceID = "Y"
	local := sampleDocument()
	local.Location.PlaceID = "X"

	merged := Merge(&remote, local, nil)
	assert.Equal(t, "Y", merged.Location.PlaceID)
}

func TestMergeEmptyRemotePlaceIDFallsBackToLocal(t *testing.T) {
	remote := sampleDocument()
	remote.Location.PlaceID = ""
	local := sampleDocument()
	local.Location.PlaceID = "X"

	merged := Merge(&remote, local, nil)
	assert.Equal(t, "X", merged.Location.PlaceID)
}

func TestMergeAcceptsLegacyPlaceIDAlias(t *testing.T) {
	remote := sampleDocument()
	remote.Location.PlaceID = ""
	remote.Location.PlaceIDLegacy = "legacy"
	local := sampleDocument()
	local.Location.PlaceID = "X"

	merged := Merge(&remote, local, nil)
	assert.Equal(t, "legacy", merged.Location.PlaceID)
	assert.Empty(t, merged.Location.PlaceIDLegacy)
}

func TestMergeIsIdempotent(t *testing.T) {
	doc := sampleDocument()

	once := Merge(&doc, doc, nil)
	twice := Merge(&once, once, nil)

	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	remote := sampleDocument()
	local := sampleDocument()
	local.Location.PlaceID = "local-id"

	_ = Merge(&remote, local, imageindex.Index{"agua": "https://cdn.example.com/agua.png"})

	assert.Equal(t, sampleDocument(), remote)
	assert.Equal(t, "Frías y calientes", remote.Catalog[0].DescriptionShort)
	assert.Empty(t, remote.Catalog[0].Items[0].FotoURL)
}

func TestMergeResolvesDescriptionAliases(t *testing.T) {
	doc := sampleDocument()
	merged := Merge(&doc, Document{}, nil)

	require.Len(t, merged.Catalog, 1)
	cat := merged.Catalog[0]
	assert.Equal(t, "Frías y calientes", cat.ShortDescription)
	assert.Empty(t, cat.DescriptionShort)

	// description is the lowest-priority fallback for both variants.
	agua := cat.Items[0]
	assert.Equal(t, "Natural de manantial", agua.ShortDescription)
	assert.Equal(t, "Natural de manantial", agua.LongDescription)
	assert.Empty(t, agua.Description)
}

func TestMergeAliasPriorityOrder(t *testing.T) {
	doc := Document{Catalog: []Category{{
		Name: "Pan",
		Items: []Item{{
			Name:             "Concha",
			ShortDescription: "canonical",
			DescriptionShort: "alias-1",
			Description:      "fallback",
		}},
	}}}

	merged := Merge(&doc, Document{}, nil)
	assert.Equal(t, "canonical", merged.Catalog[0].Items[0].ShortDescription)
}

func TestMergeItemImageResolution(t *testing.T) {
	doc := sampleDocument()
	images := imageindex.Index{
		"agua":       "https://cdn.example.com/agua.png",
		"cafedeolla": "https://cdn.example.com/cafe.jpg",
	}

	merged := Merge(&doc, Document{}, images)
	items := merged.Catalog[0].Items

	// Index match fills an absent fotoUrl.
	assert.Equal(t, "https://cdn.example.com/agua.png", items[0].FotoURL)
	// An explicitly supplied fotoUrl always wins over an index match.
	assert.Equal(t, "https://cdn.example.com/explicit.jpg", items[1].FotoURL)
}

func TestMergeNilRemoteUsesLocal(t *testing.T) {
	local := sampleDocument()
	merged := Merge(nil, local, nil)

	assert.Equal(t, local.Meta.Title, merged.Meta.Title)
	assert.Equal(t, local.Location.PlaceID, merged.Location.PlaceID)
}

func TestMergeEmptyCatalogYieldsEmptyStorefront(t *testing.T) {
	merged := Merge(nil, Document{}, nil)
	assert.Empty(t, merged.Catalog)
}

func TestMergeNormalizesGalleryAliases(t *testing.T) {
	doc := Document{Location: Location{
		Photos:          []json.RawMessage{json.RawMessage(`"a.jpg"`)},
		InstagramPhotos: []json.RawMessage{json.RawMessage(`"b.jpg"`)},
	}}

	merged := Merge(nil, doc, nil)
	require.Len(t, merged.Location.MapsPhotos, 1)
	require.Len(t, merged.Location.InstagramPosts, 1)
	assert.Nil(t, merged.Location.Photos)
	assert.Nil(t, merged.Location.InstagramPhotos)
}
