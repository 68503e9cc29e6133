// Package query turns loosely typed list parameters (page, size, sort, order,
// search, published) into a canonical Descriptor. Normalize never fails:
// anything malformed falls back to the defaults.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize      = 10
	DefaultPage      = 1
	DefaultSort      = "id"
	DefaultOrder     = "desc"
	DefaultPublished = "all"

	// MaxSize caps page size so a single request cannot pull a whole table.
	MaxSize = 100
	maxPage = math.MaxInt32
)

// Input holds the raw parameters exactly as the client sent them.
type Input struct {
	Page      string `json:"page"`
	Size      string `json:"size"`
	Sort      string `json:"sort"`
	Order     string `json:"order" validate:"omitempty,oneof=asc desc"`
	Search    string `json:"search"`
	Published string `json:"published" validate:"omitempty,oneof=all true false"`
}

type Descriptor struct {
	Page      int
	Size      int
	Skip      int
	Sort      string
	Order     string
	Search    *string
	Published string
}

func FromValues(v url.Values) Input {
	return Input{
		Page:      v.Get("page"),
		Size:      v.Get("size"),
		Sort:      v.Get("sort"),
		Order:     v.Get("order"),
		Search:    v.Get("search"),
		Published: v.Get("published"),
	}
}

func Normalize(in Input) Descriptor {
	size := positiveInt(in.Size, DefaultSize)
	if size > MaxSize {
		size = MaxSize
	}
	page := positiveInt(in.Page, DefaultPage)

	skip := 0
	if page > 1 {
		skip = size * (page - 1)
	}

	d := Descriptor{
		Page:      page,
		Size:      size,
		Skip:      skip,
		Sort:      orDefault(in.Sort, DefaultSort),
		Order:     orDefault(in.Order, DefaultOrder),
		Published: orDefault(in.Published, DefaultPublished),
	}
	if in.Search != "" {
		search := in.Search
		d.Search = &search
	}

	return d
}

// positiveInt parses s as a number and truncates it. Anything that is not at
// least 1 yields def.
func positiveInt(s string, def int) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	f = math.Trunc(f)
	if f < 1 {
		return def
	}
	if f > maxPage {
		return maxPage
	}
	return int(f)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
