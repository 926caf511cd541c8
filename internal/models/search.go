package models

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchPageSize is the fixed page size of the public hotel search.
const SearchPageSize = 5

const (
	SortStarRating    = "starRating"
	SortPricePerNight = "pricePerNightAsc"
	SortPriceDesc     = "pricePerNightDesc"
)

// SearchParams carries the raw query-string values. Everything is optional;
// malformed values are treated as absent rather than erroring.
type SearchParams struct {
	Destination string
	Facilities  []string
	Types       []string
	Stars       []string
	MaxPrice    string
	AdultCount  string
	ChildCount  string
	SortOption  string
	Page        string
}

// BuildSearchFilter translates search parameters into a Mongo filter. Pure:
// no I/O, no mutation of params. Only active hotels are ever matched.
func BuildSearchFilter(p SearchParams) bson.M {
	filter := bson.M{"is_active": true}

	if dest := strings.TrimSpace(p.Destination); dest != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(dest), Options: "i"}
		filter["$or"] = []bson.M{
			{"city": pattern},
			{"country": pattern},
		}
	}

	if fs := nonEmpty(p.Facilities); len(fs) > 0 {
		// AND semantics: the hotel must offer every requested facility.
		filter["facilities"] = bson.M{"$all": fs}
	}

	if ts := nonEmpty(p.Types); len(ts) > 0 {
		// OR semantics: any overlap with the requested types matches.
		filter["types"] = bson.M{"$in": ts}
	}

	if stars := parseInts(p.Stars); len(stars) > 0 {
		filter["star_rating"] = bson.M{"$in": stars}
	}

	if maxPrice, err := strconv.Atoi(strings.TrimSpace(p.MaxPrice)); err == nil && maxPrice > 0 {
		filter["price_per_night"] = bson.M{"$lte": maxPrice}
	}

	if adults, err := strconv.Atoi(strings.TrimSpace(p.AdultCount)); err == nil && adults > 0 {
		filter["adult_count"] = bson.M{"$gte": adults}
	}

	if children, err := strconv.Atoi(strings.TrimSpace(p.ChildCount)); err == nil && children > 0 {
		filter["child_count"] = bson.M{"$gte": children}
	}

	return filter
}

// SearchSort maps a sort option to a Mongo sort spec. Unknown options fall
// back to star rating descending.
func SearchSort(option string) bson.D {
	switch option {
	case SortPricePerNight:
		return bson.D{{Key: "price_per_night", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price_per_night", Value: -1}}
	case SortStarRating:
		return bson.D{{Key: "star_rating", Value: -1}}
	default:
		return bson.D{{Key: "star_rating", Value: -1}}
	}
}

// ParsePage returns the 1-based page number; anything unparseable or < 1
// defaults to page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewPagination(total int64, page int) Pagination {
	pages := int((total + SearchPageSize - 1) / SearchPageSize)
	return Pagination{Total: total, Page: page, Pages: pages}
}

type SearchResult struct {
	Data       []*Hotel   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseInts(in []string) []int {
	out := make([]int, 0, len(in))
	for _, s := range in {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
