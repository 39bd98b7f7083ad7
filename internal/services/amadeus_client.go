package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"tripmate/internal/config"
)

type FlightRecord struct {
	Airline       string
	DepartureTime string
	ArrivalTime   string
	Price         float64
	Currency      string
	CabinClass    string
	Stops         int
}

type HotelRecord struct {
	Name          string
	Location      string
	PricePerNight float64
	Currency      string
	RoomType      string
	Amenities     []string
	Rating        float64
}

// ProviderError is a typed failure from the travel inventory API. The tool
// dispatcher classifies these by status code and message to pick a
// troubleshooting suggestion.
type ProviderError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("amadeus %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

type PriceSearchInterface interface {
	SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]FlightRecord, error)
	SearchHotels(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]HotelRecord, error)
}

type AmadeusClient struct {
	httpClient *http.Client
	apiKey     string
	apiSecret  string
	baseURL    string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusClient(cfg config.Config) PriceSearchInterface {
	return &AmadeusClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.AmadeusAPIKey,
		apiSecret:  cfg.AmadeusAPISecret,
		baseURL:    strings.TrimRight(cfg.AmadeusBaseURL, "/"),
	}
}

// getAccessToken returns a cached bearer token, fetching a fresh one when
// the current token is within 30 seconds of expiry.
func (c *AmadeusClient) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", &ProviderError{StatusCode: resp.StatusCode, Endpoint: "oauth2/token", Message: "authentication failed"}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("amadeus token decode: %w", err)
	}
	if payload.AccessToken == "" {
		return "", &ProviderError{StatusCode: resp.StatusCode, Endpoint: "oauth2/token", Message: "empty access token"}
	}

	c.accessToken = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

func (c *AmadeusClient) doGet(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("amadeus request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("amadeus http error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return &ProviderError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("amadeus decode: %w", err)
	}
	return nil
}

func (c *AmadeusClient) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]FlightRecord, error) {
	if adults <= 0 {
		adults = 1
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", departureDate)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("max", strconv.Itoa(maxResults))
	q.Set("currencyCode", "USD")
	if returnDate != "" {
		q.Set("returnDate", returnDate)
	}

	var payload struct {
		Data []struct {
			Itineraries []struct {
				Segments []struct {
					CarrierCode string `json:"carrierCode"`
					Departure   struct {
						At string `json:"at"`
					} `json:"departure"`
					Arrival struct {
						At string `json:"at"`
					} `json:"arrival"`
				} `json:"segments"`
			} `json:"itineraries"`
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
			TravelerPricings []struct {
				FareDetailsBySegment []struct {
					Cabin string `json:"cabin"`
				} `json:"fareDetailsBySegment"`
			} `json:"travelerPricings"`
		} `json:"data"`
	}

	if err := c.doGet(ctx, "/v1/shopping/flight-offers", q, &payload); err != nil {
		return nil, err
	}

	var flights []FlightRecord
	for _, offer := range payload.Data {
		price, _ := strconv.ParseFloat(offer.Price.Total, 64)
		cabin := ""
		if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
			cabin = offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin
		}
		for _, itin := range offer.Itineraries {
			if len(itin.Segments) == 0 {
				continue
			}
			flights = append(flights, FlightRecord{
				Airline:       itin.Segments[0].CarrierCode,
				DepartureTime: itin.Segments[0].Departure.At,
				ArrivalTime:   itin.Segments[len(itin.Segments)-1].Arrival.At,
				Price:         price,
				Currency:      offer.Price.Currency,
				CabinClass:    cabin,
				Stops:         len(itin.Segments) - 1,
			})
		}
	}

	return flights, nil
}

func (c *AmadeusClient) SearchHotels(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]HotelRecord, error) {
	if guests <= 0 {
		guests = 2
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	q := url.Values{}
	q.Set("cityCode", city)
	q.Set("checkInDate", checkIn)
	q.Set("checkOutDate", checkOut)
	q.Set("adults", strconv.Itoa(guests))
	q.Set("radius", "50")
	q.Set("radiusUnit", "KM")
	q.Set("bestRateOnly", "true")
	q.Set("view", "FULL")
	q.Set("sort", "PRICE")

	var payload struct {
		Data []struct {
			Hotel struct {
				Name      string   `json:"name"`
				Rating    string   `json:"rating"`
				Amenities []string `json:"amenities"`
				Address   struct {
					CityName    string `json:"cityName"`
					CountryCode string `json:"countryCode"`
				} `json:"address"`
			} `json:"hotel"`
			Offers []struct {
				Price struct {
					Total    string `json:"total"`
					Currency string `json:"currency"`
				} `json:"price"`
				Room struct {
					Type string `json:"type"`
				} `json:"room"`
			} `json:"offers"`
		} `json:"data"`
	}

	if err := c.doGet(ctx, "/v1/shopping/hotel-offers", q, &payload); err != nil {
		return nil, err
	}

	nights := nightsBetween(checkIn, checkOut)

	var hotels []HotelRecord
	for _, offer := range payload.Data {
		if len(offer.Offers) == 0 {
			continue
		}
		first := offer.Offers[0]
		total, _ := strconv.ParseFloat(first.Price.Total, 64)
		rating, _ := strconv.ParseFloat(offer.Hotel.Rating, 64)

		hotels = append(hotels, HotelRecord{
			Name:          offer.Hotel.Name,
			Location:      fmt.Sprintf("%s, %s", offer.Hotel.Address.CityName, offer.Hotel.Address.CountryCode),
			PricePerNight: total / float64(nights),
			Currency:      first.Price.Currency,
			RoomType:      first.Room.Type,
			Amenities:     offer.Hotel.Amenities,
			Rating:        rating,
		})
		if len(hotels) >= maxResults {
			break
		}
	}

	return hotels, nil
}

func nightsBetween(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 1
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}
