package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"shop-api/internal/domain"
)

// Client talks to the OpenStreetMap services used for address
// autocompletion (Nominatim) and nearby parcel-locker lookup (Overpass).
type Client struct {
	nominatimURL string
	overpassURL  string
	httpClient   *http.Client
}

type AddressSuggestion struct {
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

var postalCodeRe = regexp.MustCompile(`^\d{5}$`)

func NewClient(nominatimURL, overpassURL string, timeout time.Duration) *Client {
	return &Client{
		nominatimURL: nominatimURL,
		overpassURL:  overpassURL,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) SearchAddress(ctx context.Context, keyword string, limit int) ([]AddressSuggestion, error) {
	q := strings.TrimSpace(keyword)
	if q == "" {
		return nil, fmt.Errorf("%w: keyword must not be empty", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/search?format=json&q=%s&limit=%d", c.nominatimURL, url.QueryEscape(q), limit)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	req.Header.Set("User-Agent", "shop-api/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var raw []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]AddressSuggestion, 0, len(raw))
	for _, item := range raw {
		lat, _ := strconv.ParseFloat(item.Lat, 64)
		lon, _ := strconv.ParseFloat(item.Lon, 64)
		name := item.DisplayName
		if name == "" {
			name = "Adresse"
		}
		out = append(out, AddressSuggestion{DisplayName: name, Lat: lat, Lon: lon})
	}
	return out, nil
}

// NearbyPickupPoints queries Overpass for parcel lockers and post offices
// in the given postal code. Results are not persisted; DB-seeded pickup
// points are served separately.
func (c *Client) NearbyPickupPoints(ctx context.Context, postalCode string, limit int) ([]domain.PickupPoint, error) {
	code := strings.TrimSpace(postalCode)
	if !postalCodeRe.MatchString(code) {
		return nil, fmt.Errorf("%w: postal code must be 5 digits", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = 5
	}

	query := fmt.Sprintf(`
		[out:json][timeout:25];
		(
		  node["amenity"="parcel_locker"]["addr:postcode"=%q];
		  node["amenity"="post_office"]["addr:postcode"=%q];
		  node["amenity"="parcel_pickup"]["addr:postcode"=%q];
		  node["shop"="parcel_locker"]["addr:postcode"=%q];
		);
		out %d;`, code, code, code, code, limit)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(query))
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var raw struct {
		Elements []struct {
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]domain.PickupPoint, 0, len(raw.Elements))
	for _, e := range raw.Elements {
		if len(out) == limit {
			break
		}
		tags := e.Tags
		name := tags["name"]
		if name == "" {
			name = "Point relais"
		}
		address := strings.TrimSpace(tags["addr:housenumber"] + " " + tags["addr:street"])
		pc := tags["addr:postcode"]
		if pc == "" {
			pc = code
		}
		out = append(out, domain.PickupPoint{
			Name:       name,
			Address:    address,
			City:       tags["addr:city"],
			PostalCode: pc,
			Lat:        e.Lat,
			Lon:        e.Lon,
		})
	}
	return out, nil
}
