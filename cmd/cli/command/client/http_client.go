package client

// http_client.go = handles HTTP calls from carhubCLI to the CarHub API.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"carhub/internal/microservices/http-api/dto"
)

// defines the HTTP client structure and methods
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a non-2xx answer from the API, with its error detail flattened
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Login exchanges admin credentials for an access token
func (c *HTTPClient) Login(ctx context.Context, request *dto.LoginRequest) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", request, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Cars CRUD
func (c *HTTPClient) ListCars(ctx context.Context) ([]dto.CarResponse, error) {
	var result []dto.CarResponse
	if err := c.do(ctx, http.MethodGet, "/cars/", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) GetCar(ctx context.Context, id int64) (*dto.CarResponse, error) {
	var result dto.CarResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cars/%d/", id), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) CreateCar(ctx context.Context, request *dto.CreateCarDTO) (*dto.CarResponse, error) {
	var result dto.CarResponse
	if err := c.do(ctx, http.MethodPost, "/cars/", request, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteCar(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cars/%d/", id), nil, http.StatusNoContent, nil)
}

// Rate submits a 1..5 rating
func (c *HTTPClient) Rate(ctx context.Context, carID int64, rating int) (*dto.RatingResponse, error) {
	request := dto.CreateRatingDTO{CarID: &carID, Rating: &rating}
	var result dto.RatingResponse
	if err := c.do(ctx, http.MethodPost, "/rate/", request, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Popular(ctx context.Context) ([]dto.CarResponse, error) {
	var result []dto.CarResponse
	if err := c.do(ctx, http.MethodGet, "/popular/", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ModelsForMake lists vPIC models of a make without storing them
func (c *HTTPClient) ModelsForMake(ctx context.Context, makeName string) ([]dto.VehicleResponse, error) {
	request := dto.CarsByMakeDTO{Make: makeName}
	var result []dto.VehicleResponse
	if err := c.do(ctx, http.MethodPost, "/cars_by_make/", request, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ImportByMake stores the vPIC models of a make and returns the new cars
func (c *HTTPClient) ImportByMake(ctx context.Context, makeName string) ([]dto.CarResponse, error) {
	request := dto.CarsByMakeDTO{Make: makeName, Create: true}
	var result []dto.CarResponse
	if err := c.do(ctx, http.MethodPost, "/cars_by_make/", request, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ImportForSelected runs the admin import for the makes of the given cars
func (c *HTTPClient) ImportForSelected(ctx context.Context, ids []int64) (*dto.ImportResult, error) {
	request := dto.ImportSelectedDTO{CarIDs: ids}
	var result dto.ImportResult
	if err := c.do(ctx, http.MethodPost, "/admin/cars/import-by-make", request, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // Ensure the response body is closed

	if resp.StatusCode != wantStatus {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{StatusCode: resp.StatusCode, Messages: errorMessages(raw)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorMessages flattens the API error shapes: ["msg"], {"error":"msg"} and
// {"field":["msg"]}.
func errorMessages(raw []byte) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		if s := strings.TrimSpace(string(raw)); s != "" {
			return []string{s}
		}
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		var s string
		if err := json.Unmarshal(obj[k], &s); err == nil {
			if k == "error" || k == "detail" {
				msgs = append(msgs, s)
			} else {
				msgs = append(msgs, k+": "+s)
			}
			continue
		}
		var field []string
		if err := json.Unmarshal(obj[k], &field); err == nil {
			msgs = append(msgs, k+": "+strings.Join(field, " "))
		}
	}
	return msgs
}
