package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers connection failures, non-success statuses and
	// response bodies that cannot be parsed at all.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedPage means the response arrived but is not the expected document.
	ErrMalformedPage = errors.New("malformed page")
)

// FacetKind selects which filter dimension the facet listing endpoint is asked for,
// the values are the endpoint's own `autocompleteType` codes.
type FacetKind int

const (
	FacetCategory FacetKind = 1
	FacetLocation FacetKind = 2
)

func (k FacetKind) String() string {
	switch k {
	case FacetCategory:
		return "category"
	case FacetLocation:
		return "location"
	}
	return fmt.Sprintf("facet(%d)", int(k))
}

// EntityRecord is one listing entry. The json names are the ones the
// export has always used.
type EntityRecord struct {
	Name     string `json:"imie"`
	Facility string `json:"placowka"`
}

// Page is the result of extracting one listing page.
type Page struct {
	// Elements counts every entity container on the page, including the ones
	// skipped for lacking a name, it alone decides whether the page is empty.
	Elements int
	Records  []EntityRecord
}

func (p Page) Empty() bool {
	return p.Elements == 0
}

// Selectors locate the entity containers and their fields in a listing page.
type Selectors struct {
	Entity   string `json:"entity"`
	Name     string `json:"name"`
	Facility string `json:"facility"`
}

var DefaultSelectors = Selectors{
	Entity:   ".doctors-box",
	Name:     "span",
	Facility: ".doctor-facility",
}

func (s Selectors) withDefaults() Selectors {
	if s.Entity == "" {
		s.Entity = DefaultSelectors.Entity
	}
	if s.Name == "" {
		s.Name = DefaultSelectors.Name
	}
	if s.Facility == "" {
		s.Facility = DefaultSelectors.Facility
	}
	return s
}
