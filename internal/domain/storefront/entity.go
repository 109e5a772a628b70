// internal/domain/storefront/entity.go
package storefront

import "encoding/json"

// Document is the canonical merged catalog+location payload rendered to
// shoppers. A merge always produces a fresh document; inputs are never
// mutated in place.
type Document struct {
	Meta     Meta       `json:"meta"`
	Hero     Hero       `json:"hero"`
	Location Location   `json:"location"`
	Catalog  []Category `json:"catalog"`
}

// Meta describes the catalog version shown in the storefront footer
type Meta struct {
	Title     string `json:"title"`
	Version   string `json:"version,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Hero is the storefront hero banner content
type Hero struct {
	Text string `json:"text"`
}

// Location carries the physical store details plus gallery feeds. The
// legacy fields are accepted on input only; merging moves their values into
// the canonical fields and clears them.
type Location struct {
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	MapURL    string `json:"mapUrl,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	PlaceID   string `json:"placeId,omitempty"`

	MapsPhotos     []json.RawMessage `json:"mapsPhotos,omitempty"`
	InstagramPosts []json.RawMessage `json:"instagramPosts,omitempty"`

	// Legacy aliases still present in older snapshots.
	PlaceIDLegacy   string            `json:"place_id,omitempty"`
	Photos          []json.RawMessage `json:"photos,omitempty"`
	InstagramPhotos []json.RawMessage `json:"instagramPhotos,omitempty"`
}

// Category groups items under a display name. Name is the identity key and
// slice order is display order.
type Category struct {
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription,omitempty"`
	LongDescription  string `json:"longDescription,omitempty"`
	Items            []Item `json:"items"`

	// Legacy aliases, input only.
	DescriptionShort string `json:"descriptionShort,omitempty"`
	DescShort        string `json:"descShort,omitempty"`
	DescriptionLong  string `json:"descriptionLong,omitempty"`
	DescLong         string `json:"descLong,omitempty"`
}

// Item is a single product. Name doubles as the join key against the image
// index, after normalization. Price, weight and pieces come from a
// spreadsheet and pass through untouched.
type Item struct {
	Name             string          `json:"name"`
	Price            json.RawMessage `json:"price,omitempty"`
	Weight           json.RawMessage `json:"weight,omitempty"`
	Pieces           json.RawMessage `json:"pieces,omitempty"`
	FotoURL          string          `json:"fotoUrl,omitempty"`
	ShortDescription string          `json:"shortDescription,omitempty"`
	LongDescription  string          `json:"longDescription,omitempty"`

	// Legacy aliases, input only.
	DescriptionShort string `json:"descriptionShort,omitempty"`
	DescShort        string `json:"descShort,omitempty"`
	DescriptionLong  string `json:"descriptionLong,omitempty"`
	DescLong         string `json:"descLong,omitempty"`
	Description      string `json:"description,omitempty"`
}
