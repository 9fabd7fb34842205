package hh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/metrics"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.hh.ru"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}, baseURL: DefaultBaseURL}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient = &http.Client{Timeout: timeout}
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetUserAgent sets the HH-User-Agent header hh.ru requires to identify the application.
func (c *Client) SetUserAgent(userAgent string) {
	c.userAgent = userAgent
}

func (c *Client) GetVacancies(ctx context.Context, parameters SearchParameters) (VacanciesResponse, error) {

	if err := parameters.Validate(); err != nil {
		return VacanciesResponse{}, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := c.baseURL + "/vacancies?" + parameters.ToUrlParams().Encode()

	body, err := c.sendRequest(ctx, "vacancies", apiURL)
	if err != nil {
		return VacanciesResponse{}, err
	}

	var vacanciesResponse VacanciesResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&vacanciesResponse); err != nil {
		return VacanciesResponse{}, fmt.Errorf("%w: error decoding JSON response: %v", models.ErrServerError, err)
	}

	return vacanciesResponse, nil
}

func (c *Client) GetVacancy(ctx context.Context, id string) (VacancyDetailsDto, error) {

	apiURL := c.baseURL + "/vacancies/" + id

	body, err := c.sendRequest(ctx, "vacancy", apiURL)
	if err != nil {
		return VacancyDetailsDto{}, err
	}

	var vacancyResponse VacancyDetailsDto
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&vacancyResponse); err != nil {
		return VacancyDetailsDto{}, fmt.Errorf("%w: error decoding JSON response: %v", models.ErrServerError, err)
	}

	return vacancyResponse, nil
}

func (c *Client) GetAreas(ctx context.Context) ([]Area, error) {

	body, err := c.sendRequest(ctx, "areas", c.baseURL+"/areas")
	if err != nil {
		return nil, err
	}

	var areas []area
	if err = json.NewDecoder(bytes.NewReader(body)).Decode(&areas); err != nil {
		return nil, fmt.Errorf("%w: error decoding JSON response: %v", models.ErrServerError, err)
	}

	return flattenAreas(areas), nil
}

func (c *Client) GetIndustries(ctx context.Context) ([]Industry, error) {

	body, err := c.sendRequest(ctx, "industries", c.baseURL+"/industries")
	if err != nil {
		return nil, err
	}

	var industries []industry
	if err = json.NewDecoder(bytes.NewReader(body)).Decode(&industries); err != nil {
		return nil, fmt.Errorf("%w: error decoding JSON response: %v", models.ErrServerError, err)
	}

	return flattenIndustries(industries), nil
}

func (c *Client) sendRequest(ctx context.Context, endpoint string, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, classifyTransportError(ctx, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	if c.userAgent != "" {
		req.Header.Set("HH-User-Agent", c.userAgent)
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.HhRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response body: %v", models.ErrConnectionProblem, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: request failed with status %v", models.ErrNothingFound, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: request failed with status %v, body: %v",
			models.ErrServerError, resp.StatusCode, string(body))
	}
}

// classifyTransportError keeps cancellation visible to the caller and reports anything else
// that happened before a response arrived as a connectivity problem.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled: %w", context.Canceled)
	}
	return fmt.Errorf("%w: error sending request: %v", models.ErrConnectionProblem, err)
}
