package service

import (
	"context"
	"strings"

	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/repository"
)

// Sort keys accepted by the listings.  Anything else sorts by name.
var (
	storeSortFields = map[string]bool{"name": true, "address": true}
	userSortFields  = map[string]bool{"name": true, "email": true, "address": true, "role": true}
)

const defaultSortField = "name"

// StoreSearcher runs the store listing query.
type StoreSearcher interface {
	SearchForViewer(ctx context.Context, q repository.StoreSearchQuery) ([]model.StoreListing, error)
}

// UserSearcher runs the user listing query.
type UserSearcher interface {
	Search(ctx context.Context, q repository.UserSearchQuery) ([]model.UserListing, error)
}

// ListingService builds the filtered, sorted store and user tables.
type ListingService struct {
	stores StoreSearcher
	users  UserSearcher
}

func NewListingService(stores StoreSearcher, users UserSearcher) *ListingService {
	return &ListingService{stores: stores, users: users}
}

// StoresForViewer lists stores whose name or address contains search
// (case-insensitive; blank means all) with the overall average and
// viewerID's own rating attached.
func (s *ListingService) StoresForViewer(ctx context.Context, viewerID uint64, search, sortField, sortOrder string) ([]model.StoreListing, error) {
	rows, err := s.stores.SearchForViewer(ctx, repository.StoreSearchQuery{
		ViewerID: viewerID,
		Search:   strings.TrimSpace(search),
		SortBy:   sortFieldOr(storeSortFields, sortField),
		Desc:     isDesc(sortOrder),
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].OverallRating = roundOne(rows[i].OverallRating)
	}
	return rows, nil
}

// UsersForAdmin lists accounts matching search over name, email and address
// and, when role is set, holding exactly that role.  Store owners carry the
// average over all ratings of their stores; everyone else carries nil.
func (s *ListingService) UsersForAdmin(ctx context.Context, search, role, sortField, sortOrder string) ([]model.UserListing, error) {
	rows, err := s.users.Search(ctx, repository.UserSearchQuery{
		Search: strings.TrimSpace(search),
		Role:   strings.TrimSpace(role),
		SortBy: sortFieldOr(userSortFields, sortField),
		Desc:   isDesc(sortOrder),
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Role != model.RoleOwner || rows[i].AverageRating == nil {
			rows[i].AverageRating = nil
			continue
		}
		v := roundOne(*rows[i].AverageRating)
		rows[i].AverageRating = &v
	}
	return rows, nil
}

func sortFieldOr(allowed map[string]bool, field string) string {
	if allowed[field] {
		return field
	}
	return defaultSortField
}

func isDesc(order string) bool {
	return strings.EqualFold(strings.TrimSpace(order), "DESC")
}
