package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"palengke/internal/models"
	"palengke/pkg/cache"
)

// Delivery fee: flat base plus a per-km rate, in pesos.
const (
	baseFee  = 20
	feePerKM = 10

	estimateTTL = 10 * time.Minute
)

// PickupPoint is a named meeting spot on a campus. Distance and walking time
// are measured from the campus's main gate.
type PickupPoint struct {
	Name        string
	Campus      string
	DistanceKM  float64
	WalkMinutes int
	Lat         float64
	Lon         float64
}

// pickupPoints is the static estimation table. The first entry per campus is
// the default when the requested point is unknown.
var pickupPoints = map[string][]PickupPoint{
	models.CampusADMU: {
		{Name: "Gate 2.5", Campus: models.CampusADMU, DistanceKM: 0.3, WalkMinutes: 5, Lat: 14.6390, Lon: 121.0777},
		{Name: "Gate 3.5", Campus: models.CampusADMU, DistanceKM: 0.8, WalkMinutes: 11, Lat: 14.6415, Lon: 121.0752},
		{Name: "Zen Garden", Campus: models.CampusADMU, DistanceKM: 1.1, WalkMinutes: 15, Lat: 14.6371, Lon: 121.0789},
		{Name: "Regis Center", Campus: models.CampusADMU, DistanceKM: 0.5, WalkMinutes: 7, Lat: 14.6330, Lon: 121.0745},
	},
	models.CampusUPD: {
		{Name: "AS Steps", Campus: models.CampusUPD, DistanceKM: 0.9, WalkMinutes: 12, Lat: 14.6538, Lon: 121.0650},
		{Name: "Shopping Center", Campus: models.CampusUPD, DistanceKM: 1.4, WalkMinutes: 18, Lat: 14.6552, Lon: 121.0710},
		{Name: "Main Library", Campus: models.CampusUPD, DistanceKM: 1.0, WalkMinutes: 13, Lat: 14.6530, Lon: 121.0690},
	},
}

// campusGates are the delivery origins per campus.
var campusGates = map[string][2]float64{
	models.CampusADMU: {14.6402, 121.0767}, // Gate 1, Katipunan Ave
	models.CampusUPD:  {14.6549, 121.0644}, // University Ave
}

// Estimate is a delivery fee/time quote for a campus pickup point.
type Estimate struct {
	Campus     string `json:"campus"`
	Pickup     string `json:"pickup"`
	Fee        int64  `json:"fee"`
	EtaMinutes int    `json:"etaMinutes"`
	Source     string `json:"source"`
}

// EstimateService quotes delivery fee and time between a campus gate and a
// pickup point. When a routing API is configured, its road distance refines
// the static table; any failure on that call falls back to the table.
type EstimateService struct {
	routingURL string
	client     *http.Client
	cache      cache.Cache
}

// NewEstimateService builds the service. routingURL may be empty (table-only
// estimates) and c may be nil (no caching).
func NewEstimateService(routingURL string, c cache.Cache) *EstimateService {
	return &EstimateService{
		routingURL: strings.TrimRight(routingURL, "/"),
		client:     &http.Client{Timeout: 3 * time.Second},
		cache:      c,
	}
}

// Estimate returns the quote for the given campus and pickup point. Unknown
// campuses resolve to ADMU and unknown pickup points to the campus default.
func (s *EstimateService) Estimate(ctx context.Context, campus, pickup string) (*Estimate, error) {
	points, ok := pickupPoints[campus]
	if !ok {
		campus = models.CampusADMU
		points = pickupPoints[campus]
	}

	point := points[0]
	for _, p := range points {
		if strings.EqualFold(p.Name, pickup) {
			point = p
			break
		}
	}

	if cached := s.cacheGet(ctx, campus, point.Name); cached != nil {
		return cached, nil
	}

	estimate := s.tableEstimate(point)
	if s.routingURL != "" {
		if routed, err := s.routeEstimate(ctx, campus, point); err != nil {
			log.Printf("Routing API failed for %s/%s, using table estimate: %v", campus, point.Name, err)
		} else {
			estimate = routed
		}
	}

	s.cacheSet(ctx, campus, point.Name, estimate)
	return estimate, nil
}

func (s *EstimateService) tableEstimate(point PickupPoint) *Estimate {
	return &Estimate{
		Campus:     point.Campus,
		Pickup:     point.Name,
		Fee:        deliveryFee(point.DistanceKM),
		EtaMinutes: point.WalkMinutes,
		Source:     "table",
	}
}

// osrmResponse is the subset of the routing API response we read.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

func (s *EstimateService) routeEstimate(ctx context.Context, campus string, point PickupPoint) (*Estimate, error) {
	gate := campusGates[campus]
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		s.routingURL, gate[1], gate[0], point.Lon, point.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing API returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("routing API returned no route (code %q)", body.Code)
	}

	route := body.Routes[0]
	return &Estimate{
		Campus:     campus,
		Pickup:     point.Name,
		Fee:        deliveryFee(route.Distance / 1000),
		EtaMinutes: int(math.Ceil(route.Duration / 60)),
		Source:     "routing",
	}, nil
}

func deliveryFee(distanceKM float64) int64 {
	return int64(baseFee + math.Ceil(distanceKM*feePerKM))
}

func (s *EstimateService) cacheGet(ctx context.Context, campus, pickup string) *Estimate {
	if s.cache == nil {
		return nil
	}
	key := s.cache.GenerateKey("estimate", campus+":"+pickup)
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var estimate Estimate
	if err := json.Unmarshal([]byte(raw), &estimate); err != nil {
		return nil
	}
	return &estimate
}

func (s *EstimateService) cacheSet(ctx context.Context, campus, pickup string, estimate *Estimate) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(estimate)
	if err != nil {
		return
	}
	key := s.cache.GenerateKey("estimate", campus+":"+pickup)
	if err := s.cache.Set(ctx, key, string(raw), estimateTTL); err != nil {
		log.Printf("Failed to cache estimate for %s/%s: %v", campus, pickup, err)
	}
}
