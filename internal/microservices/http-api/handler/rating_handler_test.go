package handler_test

import (
	"net/http"
	"testing"

	"carhub/internal/microservices/http-api/dto"
	"carhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRatingHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, m := setupRouter()
		m.ratings.On("Rate", mock.Anything, int64(1), 5).
			Return(&dto.RatingResponse{ID: 10, CarID: 1, Rating: 5}, nil).Once()

		w := doJSON(r, http.MethodPost, "/rate/", `{"car_id":1,"rating":5}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":10,"car_id":1,"rating":5}`, w.Body.String())
		m.ratings.AssertExpectations(t)
	})

	t.Run("FormEncoded", func(t *testing.T) {
		r, m := setupRouter()
		m.ratings.On("Rate", mock.Anything, int64(2), 3).
			Return(&dto.RatingResponse{ID: 11, CarID: 2, Rating: 3}, nil).Once()

		w := doForm(r, "/rate", "car_id=2&rating=3")

		assert.Equal(t, http.StatusCreated, w.Code)
		m.ratings.AssertExpectations(t)
	})

	outOfRange := map[string]string{
		`{"car_id":1,"rating":0}`:  `{"rating":["Ensure this value is greater than or equal to 1."]}`,
		`{"car_id":1,"rating":-1}`: `{"rating":["Ensure this value is greater than or equal to 1."]}`,
		`{"car_id":1,"rating":6}`:  `{"rating":["Ensure this value is less than or equal to 5."]}`,
	}
	for body, want := range outOfRange {
		t.Run("OutOfRange "+body, func(t *testing.T) {
			r, m := setupRouter()

			w := doJSON(r, http.MethodPost, "/rate/", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, want, w.Body.String())
			m.ratings.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("MissingFields", func(t *testing.T) {
		r, _ := setupRouter()

		w := doJSON(r, http.MethodPost, "/rate/", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"car_id":["This field is required."],"rating":["This field is required."]}`, w.Body.String())
	})

	t.Run("NotANumber", func(t *testing.T) {
		r, _ := setupRouter()

		w := doJSON(r, http.MethodPost, "/rate/", `{"car_id":1,"rating":"five"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"rating":["A valid integer is required."]}`, w.Body.String())
	})

	t.Run("UnknownCar", func(t *testing.T) {
		r, m := setupRouter()
		m.ratings.On("Rate", mock.Anything, int64(99), 4).
			Return(nil, service.NewValidationError("car_id", `Invalid pk "99" - object does not exist.`)).Once()

		w := doJSON(r, http.MethodPost, "/rate/", `{"car_id":99,"rating":4}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"car_id":["Invalid pk \"99\" - object does not exist."]}`, w.Body.String())
	})
}

func TestPopularHandler_List(t *testing.T) {
	r, m := setupRouter()
	ranked := []dto.CarResponse{
		{ID: 2, Make: "FIAT", Model: "500", AvgRating: 4.7, RatesNumber: 3},
		{ID: 1, Make: "OPEL", Model: "Astra", AvgRating: 2.5, RatesNumber: 2},
		{ID: 3, Make: "FIAT", Model: "Ducato"},
	}
	m.popularity.On("Popular", mock.Anything).Return(ranked, nil).Once()

	w := doJSON(r, http.MethodGet, "/popular/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":2,"make":"FIAT","model":"500","avg_rating":4.7,"rates_number":3},
		{"id":1,"make":"OPEL","model":"Astra","avg_rating":2.5,"rates_number":2},
		{"id":3,"make":"FIAT","model":"Ducato","avg_rating":0,"rates_number":0}
	]`, w.Body.String())
	m.popularity.AssertExpectations(t)
}
