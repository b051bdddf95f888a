package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"kasif-platform/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrayerTimesClient refreshes the local prayer-times cache from the aladhan
// timings API. The cache is best-effort: failures are logged and the static
// fallback table in services keeps the app usable.
type PrayerTimesClient struct {
	BaseURL    string
	City       string
	Country    string
	HTTPClient *http.Client
	DB         *gorm.DB
}

func NewPrayerTimesClient(db *gorm.DB) *PrayerTimesClient {
	baseURL := os.Getenv("PRAYER_TIMES_API_URL")
	if baseURL == "" {
		baseURL = "https://api.aladhan.com"
	}
	city := os.Getenv("PRAYER_TIMES_CITY")
	if city == "" {
		city = "Istanbul"
	}
	country := os.Getenv("PRAYER_TIMES_COUNTRY")
	if country == "" {
		country = "Turkey"
	}

	return &PrayerTimesClient{
		BaseURL: baseURL,
		City:    city,
		Country: country,
		DB:      db,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// timingsResponse matches the aladhan API payload, reduced to the fields we
// read.
type timingsResponse struct {
	Data struct {
		Timings struct {
			Fajr    string `json:"Fajr"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

func (c *PrayerTimesClient) FetchTimings(ctx context.Context) ([]models.PrayerTime, error) {
	u, err := url.Parse(fmt.Sprintf("%s/v1/timingsByCity", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("city", c.City)
	q.Set("country", c.Country)
	q.Set("method", "13")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call timings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("timings API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode timings response: %w", err)
	}

	now := time.Now()
	t := response.Data.Timings
	return []models.PrayerTime{
		{SlotID: "sabah", Label: "Sabah", Time: t.Fajr, FetchedAt: now},
		{SlotID: "ogle", Label: "Öğle", Time: t.Dhuhr, FetchedAt: now},
		{SlotID: "ikindi", Label: "İkindi", Time: t.Asr, FetchedAt: now},
		{SlotID: "aksam", Label: "Akşam", Time: t.Maghrib, FetchedAt: now},
		{SlotID: "yatsi", Label: "Yatsı", Time: t.Isha, FetchedAt: now},
	}, nil
}

// PollPrayerTimes refreshes the cache on an interval, upserting per slot.
func PollPrayerTimes(ctx context.Context, client *PrayerTimesClient, pollInterval time.Duration) {
	log.Println("Starting prayer-times polling...")

	refresh := func() {
		times, err := client.FetchTimings(ctx)
		if err != nil {
			log.Printf("❌ Error fetching prayer times: %v", err)
			return
		}
		err = client.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "time", "fetched_at"}),
		}).Create(&times).Error
		if err != nil {
			log.Printf("❌ Error caching prayer times: %v", err)
			return
		}
		log.Printf("🕌 Prayer times refreshed (%d slot(s))", len(times))
	}

	refresh()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Prayer-times polling stopped.")
			return
		case <-ticker.C:
			refresh()
		}
	}
}
