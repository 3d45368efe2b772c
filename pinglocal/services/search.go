package services

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/pinglocal/pinglocal/pinglocal/database/models"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
)

// offerSearchItems implements fuzzy.Source over active offers. The
// searchable string is the offer name plus the business name so "pizza
// luigi" finds Luigi's pizza offer.
type offerSearchItems []offerSearchItem

type offerSearchItem struct {
	Offer *models.Offer
	Name  string
}

func (items offerSearchItems) Len() int            { return len(items) }
func (items offerSearchItems) String(i int) string { return items[i].Name }

type businessSearchItems []*models.Business

func (items businessSearchItems) Len() int            { return len(items) }
func (items businessSearchItems) String(i int) string { return normalizeQuery(items[i].Name) }

// SearchService serves the browse screens' server-side search.
type SearchService struct {
	offers     repositories.OfferRepository
	businesses repositories.BusinessRepository
}

func NewSearchService(offers repositories.OfferRepository, businesses repositories.BusinessRepository) *SearchService {
	return &SearchService{offers: offers, businesses: businesses}
}

// SearchOffers ranks active offers against the query. An empty query returns
// the active list as-is, truncated to limit.
func (s *SearchService) SearchOffers(ctx context.Context, query string, limit int) ([]*models.Offer, error) {
	offers, err := s.offers.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query = normalizeQuery(query)
	if query == "" {
		if len(offers) > limit {
			offers = offers[:limit]
		}
		return offers, nil
	}

	businessNames := s.businessNameIndex(ctx)

	items := make(offerSearchItems, len(offers))
	for i, offer := range offers {
		name := normalizeQuery(offer.Name)
		if businessName, ok := businessNames[offer.BusinessID]; ok {
			name = name + " " + businessName
		}
		items[i] = offerSearchItem{Offer: offer, Name: name}
	}

	matches := fuzzy.FindFrom(query, items)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*models.Offer, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index].Offer
	}
	return results, nil
}

// SearchBusinesses ranks businesses by name.
func (s *SearchService) SearchBusinesses(ctx context.Context, query string, limit int) ([]*models.Business, error) {
	businesses, err := s.businesses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	query = normalizeQuery(query)
	if query == "" {
		if len(businesses) > limit {
			businesses = businesses[:limit]
		}
		return businesses, nil
	}

	items := businessSearchItems(businesses)
	matches := fuzzy.FindFrom(query, items)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*models.Business, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index]
	}
	return results, nil
}

func (s *SearchService) businessNameIndex(ctx context.Context) map[string]string {
	businesses, err := s.businesses.GetAll(ctx)
	if err != nil {
		// Search degrades to offer names only.
		return nil
	}
	index := make(map[string]string, len(businesses))
	for _, business := range businesses {
		index[business.ID] = normalizeQuery(business.Name)
	}
	return index
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
