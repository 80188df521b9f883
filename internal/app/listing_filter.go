package app

import (
	"fmt"
	"strings"

	"petspotter/internal/config"
	"petspotter/internal/model"
)

// ListingFilterParams are the raw query parameters of a listing read.
// An empty string means the parameter was not supplied.
type ListingFilterParams struct {
	Status  string
	Species string
	Lost    string
}

// ListingFilter turns filter parameters into a store query. Exactly one
// dimension is honored per request; status always wins when present.
type ListingFilter interface {
	Dialect() string
	Build(params ListingFilterParams) (model.ListingQuery, error)
}

func NewListingFilter(dialect string) (ListingFilter, error) {
	switch dialect {
	case config.FilterDialectExact:
		return ExactFilter{}, nil
	case config.FilterDialectPattern:
		return PatternFilter{}, nil
	default:
		return nil, fmt.Errorf("unknown listing filter dialect %q", dialect)
	}
}

// ExactFilter accepts status=lost|found or species=cat|dog.
type ExactFilter struct{}

func (ExactFilter) Dialect() string { return config.FilterDialectExact }

func (ExactFilter) Build(params ListingFilterParams) (model.ListingQuery, error) {
	if params.Status != "" {
		return statusQuery(params.Status)
	}
	if params.Species != "" {
		switch params.Species {
		case "cat", "dog":
			return model.ListingQuery{Species: params.Species}, nil
		default:
			return model.ListingQuery{}, ErrBadFilter
		}
	}
	return model.ListingQuery{}, nil
}

// PatternFilter accepts status=lost|found, lost=true|false, or a species
// value matched case-insensitively as a substring.
type PatternFilter struct{}

func (PatternFilter) Dialect() string { return config.FilterDialectPattern }

func (PatternFilter) Build(params ListingFilterParams) (model.ListingQuery, error) {
	if params.Status != "" {
		return statusQuery(params.Status)
	}
	if params.Lost != "" {
		switch strings.ToLower(params.Lost) {
		case "true":
			return model.ListingQuery{Status: model.StatusLost}, nil
		case "false":
			return model.ListingQuery{Status: model.StatusFound}, nil
		default:
			return model.ListingQuery{}, ErrBadFilter
		}
	}
	if species := strings.TrimSpace(params.Species); species != "" {
		return model.ListingQuery{SpeciesContains: species}, nil
	}
	return model.ListingQuery{}, nil
}

func statusQuery(status string) (model.ListingQuery, error) {
	switch status {
	case model.StatusLost, model.StatusFound:
		return model.ListingQuery{Status: status}, nil
	default:
		return model.ListingQuery{}, ErrBadFilter
	}
}

func queryDimension(q model.ListingQuery) string {
	switch {
	case q.Status != "":
		return "status"
	case q.Species != "":
		return "species"
	case q.SpeciesContains != "":
		return "species_contains"
	default:
		return "all"
	}
}

func queryCacheKey(q model.ListingQuery) string {
	switch {
	case q.Status != "":
		return "status:" + q.Status
	case q.Species != "":
		return "species:" + q.Species
	case q.SpeciesContains != "":
		return "species_contains:" + strings.ToLower(q.SpeciesContains)
	default:
		return "all"
	}
}
