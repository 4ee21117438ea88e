package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"persons/internal/country/handler/mocks"
	"persons/internal/country/models"
	dErrors "persons/pkg/domain-errors"
	"persons/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type CountryHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestCountryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CountryHandlerSuite))
}

func (s *CountryHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = testutil.NewRouter(New(s.service, logger))
}

func (s *CountryHandlerSuite) TestCreate() {
	s.Run("returns 201 with the new country", func() {
		id := uuid.New()
		s.service.EXPECT().AddCountry(gomock.Any(), &models.AddCountryRequest{Name: "Canada"}).
			Return(&models.Country{ID: id, Name: "Canada"}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries",
			map[string]string{"country_name": " Canada "}))

		s.Equal(http.StatusCreated, rr.Code)
		resp := testutil.UnmarshalResponse[models.Response](s.T(), rr)
		s.Equal(id, resp.ID)
		s.Equal("Canada", resp.Name)
	})

	s.Run("blank name is rejected before the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries",
			map[string]string{"country_name": ""}))
		testutil.AssertFieldError(s.T(), rr, "country_name")
	})

	s.Run("missing body is a bad request", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("duplicate maps to 409", func() {
		s.service.EXPECT().AddCountry(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "country name must be unique"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/countries",
			map[string]string{"country_name": "USA"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func (s *CountryHandlerSuite) TestList() {
	s.service.EXPECT().ListCountries(gomock.Any()).
		Return([]*models.Country{{ID: uuid.New(), Name: "Brazil"}, {ID: uuid.New(), Name: "India"}}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/countries", nil))
	s.Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
	s.Require().Len(resp.Countries, 2)
	s.Equal("Brazil", resp.Countries[0].Name)
}

func (s *CountryHandlerSuite) TestGet() {
	s.Run("invalid id is a bad request", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/countries/not-a-uuid", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown id is 404", func() {
		s.service.EXPECT().GetCountry(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "country not found"))
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/countries/"+uuid.NewString(), nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
