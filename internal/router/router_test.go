package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/handler"
	"github.com/iliyamo/store-rating/internal/model"
	"github.com/iliyamo/store-rating/internal/service"
	"github.com/iliyamo/store-rating/internal/utils"
)

const secret = "router-test"

type stubAll struct{}

func (stubAll) Create(context.Context, service.NewStore) (*model.Store, error) {
	return &model.Store{ID: 1}, nil
}

func (stubAll) StoresForViewer(context.Context, uint64, string, string, string) ([]model.StoreListing, error) {
	return []model.StoreListing{}, nil
}

func (stubAll) SubmitOrUpdate(context.Context, service.SubmitRating) (*model.Rating, bool, error) {
	return &model.Rating{ID: 1}, true, nil
}

func (stubAll) ListForRater(context.Context, uint64) ([]model.RatingWithStore, error) {
	return []model.RatingWithStore{}, nil
}

func (stubAll) DashboardForOwner(context.Context, uint64) (*service.OwnerDashboard, error) {
	return &service.OwnerDashboard{Reviewers: []model.StoreReview{}}, nil
}

func (stubAll) Stats(context.Context) (model.DashboardStats, error) { return model.DashboardStats{}, nil }

func (stubAll) CreateUser(context.Context, service.NewAccount) (*model.User, error) {
	return &model.User{ID: 1}, nil
}

func (stubAll) UsersForAdmin(context.Context, string, string, string, string) ([]model.UserListing, error) {
	return []model.UserListing{}, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	s := stubAll{}
	guards := Guards{JWTSecret: secret}
	RegisterStores(e, handler.NewStoreHandler(s, s), guards)
	RegisterRatings(e, handler.NewRatingHandler(s), guards)
	RegisterOwner(e, handler.NewOwnerHandler(s), guards)
	RegisterAdmin(e, handler.NewAdminHandler(s, s), guards)
	return e
}

func call(t *testing.T, e *echo.Echo, method, path, role string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		tok, err := utils.NewAccessToken(secret, 5, role, 5)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRoleMatrix(t *testing.T) {
	e := newTestServer()
	const (
		admin = model.RoleAdmin
		user  = model.RoleUser
		owner = model.RoleOwner
	)
	// Allowed POSTs reach the handler and fail validation on the empty body.
	cases := []struct {
		method, path, role string
		want               int
	}{
		{http.MethodGet, "/v1/stores", "", http.StatusUnauthorized},
		{http.MethodGet, "/v1/stores", user, http.StatusOK},
		{http.MethodGet, "/v1/stores", admin, http.StatusOK},
		{http.MethodGet, "/v1/stores", owner, http.StatusForbidden},
		{http.MethodPost, "/v1/stores", admin, http.StatusBadRequest},
		{http.MethodPost, "/v1/stores", user, http.StatusForbidden},
		{http.MethodPost, "/v1/ratings", user, http.StatusBadRequest},
		{http.MethodPost, "/v1/ratings", admin, http.StatusForbidden},
		{http.MethodPost, "/v1/ratings", owner, http.StatusForbidden},
		{http.MethodGet, "/v1/ratings/my-ratings", user, http.StatusOK},
		{http.MethodGet, "/v1/owner/ratings", owner, http.StatusOK},
		{http.MethodGet, "/v1/owner/ratings", user, http.StatusForbidden},
		{http.MethodGet, "/v1/admin/dashboard", admin, http.StatusOK},
		{http.MethodGet, "/v1/admin/dashboard", owner, http.StatusForbidden},
		{http.MethodGet, "/v1/admin/users", admin, http.StatusOK},
		{http.MethodPost, "/v1/admin/users", admin, http.StatusBadRequest},
		{http.MethodPost, "/v1/admin/users", user, http.StatusForbidden},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, call(t, e, tc.method, tc.path, tc.role), "%s %s as %q", tc.method, tc.path, tc.role)
	}
}
