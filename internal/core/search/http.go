// Copyright (c) 2026 Catalog. All rights reserved.

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkline/catalog/internal/platform/apperr"
	requestutil "github.com/inkline/catalog/internal/platform/request"
	"github.com/inkline/catalog/internal/platform/respond"
	"github.com/inkline/catalog/pkg/convert"
)

// Handler implements the HTTP layer for tag search.
type Handler struct {
	facade   *Facade
	pageSize int
}

func NewHandler(facade *Facade, pageSize int) *Handler {
	return &Handler{facade: facade, pageSize: pageSize}
}

// Routes returns a [chi.Router] for /api/v1/search.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

/*
GET /api/v1/search.

Description: evaluates a free-form tag query and returns a page of
matching article ids, served from cache when possible.

Request:
  - q: string (the tag query; see the package doc for grammar)
  - page: int (1-indexed, default 1)
  - order: string (ASC_POSTDATE | ASC_UPDATEDATE | DESC_POSTDATE | DESC_UPDATEDATE, default DESC_POSTDATE)

Response:
  - 200: {data: []string, meta: {page, page_size, total_count, has_more}}
  - 400: ErrValidation: unrecognized order
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := requestutil.Query(request, "q")
	page := parsePage(requestutil.Query(request, "page"))
	order := parseOrder(requestutil.Query(request, "order"))

	if !order.Valid() {
		respond.Error(writer, request, invalidOrderError(string(order)))
		return
	}

	result, err := handler.facade.Search(request.Context(), query, page, order)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.IDs, respond.PageMeta{
		Page:       page,
		PageSize:   handler.pageSize,
		TotalCount: result.Count,
		HasMore:    page*handler.pageSize < result.Count,
	})
}

func parsePage(raw string) int {
	page := convert.ToIntD(raw, 1)
	if page < 1 {
		return 1
	}
	return page
}

func parseOrder(raw string) Order {
	if raw == "" {
		return DescPostDate
	}
	return Order(raw)
}

func invalidOrderError(raw string) error {
	return apperr.ValidationError("Unrecognized order: " + raw)
}
