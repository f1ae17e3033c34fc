package shopserver

import (
	"strings"

	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

type SortOrder struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type PageRequest struct {
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
	Offset     int         `json:"offset"`
	Sort       []SortOrder `json:"sort"`
}

// Page is the paged listing envelope returned by collection endpoints.
type Page[T any] struct {
	Content          []T         `json:"content"`
	Pageable         PageRequest `json:"pageable"`
	TotalElements    int64       `json:"totalElements"`
	TotalPages       int         `json:"totalPages"`
	Size             int         `json:"size"`
	Number           int         `json:"number"`
	First            bool        `json:"first"`
	Last             bool        `json:"last"`
	NumberOfElements int         `json:"numberOfElements"`
	Empty            bool        `json:"empty"`
}

func newPage[T, U any](page pagination.Page[T], convert func(T) U) Page[U] {
	mapped := pagination.Map(page, convert)
	sort := make([]SortOrder, 0, len(page.Pageable.Sort))
	for _, o := range page.Pageable.Sort {
		sort = append(sort, SortOrder{Property: o.Property, Direction: strings.ToUpper(string(o.Direction))})
	}
	return Page[U]{
		Content: mapped.Content,
		Pageable: PageRequest{
			PageNumber: page.Pageable.Page,
			PageSize:   page.Pageable.Size,
			Offset:     page.Pageable.Offset(),
			Sort:       sort,
		},
		TotalElements:    page.TotalElements,
		TotalPages:       page.TotalPages(),
		Size:             page.Pageable.Size,
		Number:           page.Pageable.Page,
		First:            page.First(),
		Last:             page.Last(),
		NumberOfElements: len(mapped.Content),
		Empty:            len(mapped.Content) == 0,
	}
}
