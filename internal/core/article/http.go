// Copyright (c) 2026 Catalog. All rights reserved.

/*
Package article also provides the HTTP interface for article writes:
create/replace and delete. Reads go through the search package instead —
an article on its own, outside of a tag search, isn't a concept this API
exposes.
*/
package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/inkline/catalog/internal/platform/request"
	"github.com/inkline/catalog/internal/platform/respond"
)

// Handler implements the HTTP layer for article writes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /api/v1/articles.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.postArticle)
	router.Put("/{id}", handler.putArticle)
	router.Delete("/{id}", handler.deleteArticle)
	return router
}

type articleInput struct {
	PostDate   string   `json:"post_date"`
	UpdateDate string   `json:"update_date"`
	Tags       []string `json:"tags"`
}

/*
POST /api/v1/articles.

Description: creates a new article with its tag assignments, invalidating
any cached search result that depends on a tag the article introduces.

Response:
  - 201: Article
  - 400: ErrValidation: missing post_date/update_date
*/
func (handler *Handler) postArticle(writer http.ResponseWriter, request *http.Request) {
	var input articleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.PostArticle(request.Context(), "", input.PostDate, input.UpdateDate, input.Tags)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
PUT /api/v1/articles/{id}.

Description: replaces an existing article's tag assignments wholesale,
diffing against its current tags and invalidating only what changed.

Response:
  - 200: Article
  - 400: ErrValidation: missing post_date/update_date
*/
func (handler *Handler) putArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input articleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.PostArticle(request.Context(), id, input.PostDate, input.UpdateDate, input.Tags)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
DELETE /api/v1/articles/{id}.

Description: removes an article and invalidates every cache entry that
depended on a tag it carried.

Response:
  - 204: No Content
*/
func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteArticle(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
