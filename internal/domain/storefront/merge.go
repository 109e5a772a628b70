// internal/domain/storefront/merge.go
package storefront

import (
	"strings"

	"github.com/casabert/storefront-backend/internal/domain/imageindex"
)

// Alias resolution is data, not conditionals: each logical field has an
// ordered list of candidate accessors and the first non-empty value wins.
var (
	categoryShortSources = []func(*Category) string{
		func(c *Category) string { return c.ShortDescription },
		func(c *Category) string { return c.DescriptionShort },
		func(c *Category) string { return c.DescShort },
	}
	categoryLongSources = []func(*Category) string{
		func(c *Category) string { return c.LongDescription },
		func(c *Category) string { return c.DescriptionLong },
		func(c *Category) string { return c.DescLong },
	}
	itemShortSources = []func(*Item) string{
		func(i *Item) string { return i.ShortDescription },
		func(i *Item) string { return i.DescriptionShort },
		func(i *Item) string { return i.DescShort },
		func(i *Item) string { return i.Description },
	}
	itemLongSources = []func(*Item) string{
		func(i *Item) string { return i.LongDescription },
		func(i *Item) string { return i.DescriptionLong },
		func(i *Item) string { return i.DescLong },
		func(i *Item) string { return i.Description },
	}
)

// Merge reconciles the remote document, the local fallback and the image
// index into one canonical storefront document. remote may be nil when the
// upstream fetch failed; the local document is then the base. Neither input
// is modified.
func Merge(remote *Document, local Document, images imageindex.Index) Document {
	base := local
	if remote != nil {
		base = *remote
	}

	out := base
	out.Location = mergeLocation(remote, local)
	out.Catalog = make([]Category, len(base.Catalog))

	for i := range base.Catalog {
		out.Catalog[i] = mergeCategory(base.Catalog[i], images)
	}

	return out
}

func mergeLocation(remote *Document, local Document) Location {
	loc := local.Location
	if remote != nil {
		loc = remote.Location
	}

	// placeId precedence: remote value first, then the local fallback. An
	// empty string never overwrites a present value.
	candidates := []string{}
	if remote != nil {
		candidates = append(candidates, remote.Location.PlaceID, remote.Location.PlaceIDLegacy)
	}
	candidates = append(candidates, local.Location.PlaceID, local.Location.PlaceIDLegacy)
	loc.PlaceID = firstNonEmpty(candidates...)
	loc.PlaceIDLegacy = ""

	if len(loc.MapsPhotos) == 0 {
		loc.MapsPhotos = loc.Photos
	}
	loc.Photos = nil

	if len(loc.InstagramPosts) == 0 {
		loc.InstagramPosts = loc.InstagramPhotos
	}
	loc.InstagramPhotos = nil

	return loc
}

func mergeCategory(cat Category, images imageindex.Index) Category {
	merged := cat
	merged.ShortDescription = resolveCategoryField(&cat, categoryShortSources)
	merged.LongDescription = resolveCategoryField(&cat, categoryLongSources)
	merged.DescriptionShort = ""
	merged.DescShort = ""
	merged.DescriptionLong = ""
	merged.DescLong = ""

	merged.Items = make([]Item, len(cat.Items))
	for i := range cat.Items {
		merged.Items[i] = mergeItem(cat.Items[i], images)
	}

	return merged
}

func mergeItem(item Item, images imageindex.Index) Item {
	merged := item

	// An explicit fotoUrl always wins; an index match wins over absence.
	if merged.FotoURL == "" {
		merged.FotoURL = images[imageindex.NormalizeKey(item.Name)]
	}

	merged.ShortDescription = resolveItemField(&item, itemShortSources)
	merged.LongDescription = resolveItemField(&item, itemLongSources)
	merged.DescriptionShort = ""
	merged.DescShort = ""
	merged.DescriptionLong = ""
	merged.DescLong = ""
	merged.Description = ""

	return merged
}

func resolveCategoryField(cat *Category, sources []func(*Category) string) string {
	for _, source := range sources {
		if value := strings.TrimSpace(source(cat)); value != "" {
			return value
		}
	}
	return ""
}

func resolveItemField(item *Item, sources []func(*Item) string) string {
	for _, source := range sources {
		if value := strings.TrimSpace(source(item)); value != "" {
			return value
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
