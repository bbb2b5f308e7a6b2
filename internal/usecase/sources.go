package usecase

import (
	"context"
	"fmt"

	"github.com/ragingtiger/amznbot/internal/models"
	"github.com/ragingtiger/amznbot/internal/repo/amazon"
	"github.com/ragingtiger/amznbot/pkg/util"
)

const (
	ItemSourceName   = "items"
	SearchSourceName = "search"
)

type ItemSource struct {
	lookup ItemLookup
	ids    []string
}

func NewItemSource(lookup ItemLookup, ids []string) *ItemSource {
	return &ItemSource{
		lookup: lookup,
		ids:    ids,
	}
}

func (s *ItemSource) Name() string { return ItemSourceName }

// Fetch looks the configured ids up in chunks the catalog accepts. Any failing
// chunk fails the whole fetch.
func (s *ItemSource) Fetch(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	for i, chunk := range util.Chunk(s.ids, amazon.MaxItemsPerLookup) {
		found, err := s.lookup.Lookup(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to lookup items chunk %d: %w", i, err)
		}
		products = append(products, found...)
	}
	return products, nil
}

type SearchSource struct {
	search      ItemSearch
	keywords    string
	searchIndex string
}

func NewSearchSource(search ItemSearch, keywords, searchIndex string) *SearchSource {
	return &SearchSource{
		search:      search,
		keywords:    keywords,
		searchIndex: searchIndex,
	}
}

func (s *SearchSource) Name() string { return SearchSourceName }

func (s *SearchSource) Fetch(ctx context.Context) ([]models.Product, error) {
	products, err := s.search.Search(ctx, s.keywords, s.searchIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q in %s: %w", s.keywords, s.searchIndex, err)
	}
	return products, nil
}
