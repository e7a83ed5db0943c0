package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/cache"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
	"github.com/Jay5Bhatt/space-knowledge-engine/internal/worker"
)

const defaultAPODBaseURL = "https://api.nasa.gov/planetary/apod"

// NASAClient fetches the Astronomy Picture of the Day. Without an API
// key, or in demo mode, it serves synthetic payloads.
type NASAClient struct {
	httpClient *http.Client
	demoMode   bool
	apiKey     string
	userAgent  string
	limiter    *worker.Limiter
	store      cache.Cache
	baseURL    string
}

// NewNASAClient creates a NASA client from the fetch config.
func NewNASAClient(cfg model.FetchConfig, limiter *worker.Limiter, store cache.Cache) *NASAClient {
	return &NASAClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		demoMode:   cfg.DemoMode,
		apiKey:     cfg.NASAAPIKey,
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
		store:      store,
		baseURL:    defaultAPODBaseURL,
	}
}

type apodResponse struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// FetchAPOD fetches today's APOD entry, falling back to the mock on demo
// mode, missing key, or any fetch/parse failure.
func (c *NASAClient) FetchAPOD(ctx context.Context) model.Item {
	if c.demoMode {
		return mockAPOD()
	}
	if c.apiKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: NASA_API_KEY not set, using mock APOD")
		return mockAPOD()
	}

	reqURL := fmt.Sprintf("%s?api_key=%s", c.baseURL, c.apiKey)

	body, err := c.fetch(ctx, reqURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: APOD fetch failed, using mock: %v\n", err)
		return mockAPOD()
	}

	var apod apodResponse
	if err := json.Unmarshal(body, &apod); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: APOD response unparsable, using mock: %v\n", err)
		return mockAPOD()
	}

	title := apod.Title
	if title == "" {
		title = "NASA APOD"
	}
	return model.Item{
		ID:     "nasa_apod_live",
		Title:  title,
		Source: "nasa_apod",
		Raw:    title + "\n\n" + apod.Explanation,
	}
}

// FetchMission returns a mission status item. Only the synthetic update
// is implemented; the shape matches what a live mission feed would fill.
func (c *NASAClient) FetchMission(ctx context.Context, mission string) model.Item {
	return model.Item{
		ID:     "nasa_mission_" + strings.ToLower(mission) + "_mock",
		Title:  "Mock NASA Mission: " + mission,
		Source: "nasa_mission_mock",
		Raw: "Synthetic mission update for " + mission + ". " +
			"Instrumentation reports stable telemetry and recent spectroscopic measurements.",
	}
}

func (c *NASAClient) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	// APOD rotates daily; cache under a date-scoped key so the key never
	// embeds the API key and a new day fetches fresh.
	key := cache.Key("nasa_apod:" + time.Now().UTC().Format("2006-01-02"))
	if c.store != nil {
		if cached, found := c.store.Get(key); found {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx, reqURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch APOD: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.store != nil {
		if err := c.store.Set(key, body, 12*time.Hour); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}
	return body, nil
}

func mockAPOD() model.Item {
	return model.Item{
		ID:     "nasa_apod_mock",
		Title:  "Mock APOD: Pillars of Creation",
		Source: "nasa_apod_mock",
		Raw: "Synthetic APOD entry. Description: The Pillars of Creation observed " +
			"in infrared wavelengths reveal complex star-forming regions.",
	}
}
