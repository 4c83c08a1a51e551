package directory

import (
	"strings"

	"facetcrawl/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	nameReplacer     = strings.NewReplacer(" - ", "-")
	facilityReplacer = strings.NewReplacer(" - ", "-", "|", "-")
)

func normalizeName(name string) string {
	return nameReplacer.Replace(name)
}

func normalizeFacility(facility string) string {
	return strings.TrimSpace(facilityReplacer.Replace(facility))
}

// ExtractEntity builds a record out of one entity container, ok is false
// when the container has no name element. A missing facility element
// leaves the facility empty.
func ExtractEntity(entity *goquery.Selection, selectors Selectors) (EntityRecord, bool) {
	selectors = selectors.withDefaults()

	name, ok := htmlutil.FirstText(entity, selectors.Name)
	if !ok {
		return EntityRecord{}, false
	}
	facility, _ := htmlutil.FirstText(entity, selectors.Facility)

	return EntityRecord{
		Name:     normalizeName(name),
		Facility: normalizeFacility(facility),
	}, true
}

// ExtractEntities pulls every entity container out of a listing page, in document order.
func ExtractEntities(doc *goquery.Document, selectors Selectors) Page {
	selectors = selectors.withDefaults()

	page := Page{Records: []EntityRecord{}}
	doc.Find(selectors.Entity).Each(func(_ int, entity *goquery.Selection) {
		page.Elements++
		record, ok := ExtractEntity(entity, selectors)
		if !ok {
			return
		}
		page.Records = append(page.Records, record)
	})
	return page
}
