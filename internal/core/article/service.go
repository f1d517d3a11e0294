// Copyright (c) 2026 Catalog. All rights reserved.

package article

import (
	"context"
	"log/slog"

	"github.com/inkline/catalog/internal/core/search"
	"github.com/inkline/catalog/internal/platform/validate"
	"github.com/inkline/catalog/pkg/normalize"
	"github.com/inkline/catalog/pkg/slice"
)

// Service orchestrates article writes and the cache invalidation they imply.
type Service struct {
	repo   Repository
	facade *search.Facade
	logger *slog.Logger
}

func NewService(repo Repository, facade *search.Facade, logger *slog.Logger) *Service {
	return &Service{repo: repo, facade: facade, logger: logger}
}

// PostArticle creates or replaces an article's tag assignments, then
// invalidates every cache entry depending on a tag that changed.
//
// Parameters:
//   - id: existing article id, or "" to create a new one
//   - postDate, updateDate: opaque CHAR(12)-width date tokens, caller-supplied
//   - tags: raw tag text, normalized here before storage
func (service *Service) PostArticle(ctx context.Context, id, postDate, updateDate string, tags []string) (*Article, error) {
	v := &validate.Validator{}
	v.Required(FieldPostDate, postDate).Required(FieldUpdateDate, updateDate)
	if err := v.Err(); err != nil {
		return nil, err
	}

	normalized := normalizeTags(tags)

	changed, err := service.repo.Set(ctx, id, postDate, updateDate, normalized)
	if err != nil {
		return nil, err
	}

	service.facade.InvalidateTags(ctx, changed)

	service.logger.Info("article_posted",
		slog.String("article_id", id),
		slog.Int("tag_count", len(normalized)),
		slog.Int("changed_tag_count", len(changed)),
	)

	return &Article{ID: id, PostDate: postDate, UpdateDate: updateDate, Tags: normalized}, nil
}

// DeleteArticle removes an article and invalidates cache entries for every
// tag it carried.
func (service *Service) DeleteArticle(ctx context.Context, id string) error {
	removed, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	service.facade.InvalidateTags(ctx, removed)

	service.logger.Info("article_deleted",
		slog.String("article_id", id),
		slog.Int("removed_tag_count", len(removed)),
	)

	return nil
}

func normalizeTags(tags []string) []string {
	normalized := slice.Filter(slice.Map(tags, normalize.Token), func(t string) bool {
		return t != ""
	})

	seen := make(map[string]struct{}, len(normalized))
	out := make([]string, 0, len(normalized))
	for _, t := range normalized {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
