package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubShopUsecase records the last search input; the embedded interface
// covers the methods these tests never call.
type stubShopUsecase struct {
	usecase.ShopUsecase
	lastSearch *usecase.SearchShopsInput
}

func (s *stubShopUsecase) Search(_ context.Context, input *usecase.SearchShopsInput) ([]*entity.Shop, error) {
	s.lastSearch = input

	return []*entity.Shop{}, nil
}

func newSearchContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestShopHandler_SearchByScore_SortsOnlyWhenFlagSet(t *testing.T) {
	cases := []struct {
		name        string
		target      string
		sortByScore bool
	}{
		{name: "flag true sorts", target: "/shops/search/score?score=true", sortByScore: true},
		{name: "flag false keeps storage order", target: "/shops/search/score?city=Madrid&score=false", sortByScore: false},
		{name: "missing flag keeps storage order", target: "/shops/search/score", sortByScore: false},
		{name: "other values keep storage order", target: "/shops/search/score?score=1", sortByScore: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubShopUsecase{}
			h := NewShopHandler(uc)

			require.NoError(t, h.SearchByScore(newSearchContext(tc.target)))
			require.NotNil(t, uc.lastSearch)
			assert.Equal(t, tc.sortByScore, uc.lastSearch.SortByScore)
		})
	}
}

func TestShopHandler_SearchByScore_PassesFiltersThrough(t *testing.T) {
	uc := &stubShopUsecase{}
	h := NewShopHandler(uc)

	require.NoError(t, h.SearchByScore(newSearchContext("/shops/search/score?city=Madrid&activity=books&score=true")))

	require.NotNil(t, uc.lastSearch)
	assert.Equal(t, "Madrid", uc.lastSearch.City)
	assert.Equal(t, "books", uc.lastSearch.Activity)
	assert.True(t, uc.lastSearch.SortByScore)
}
