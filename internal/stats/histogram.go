package stats

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"story-insights-backend/internal/models"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Fallback layouts for records whose date field is not already YYYY-MM-DD.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// DailyHistogram buckets records into the last 7 calendar days ending at
// now, keyed YYYY-MM-DD and zero-filled. Unparseable dates are logged and
// skipped; they never abort the aggregation.
func DailyHistogram(records []models.ArtifactRecord, now time.Time) []models.TimeBucket {
	counts := make(map[string]int, 7)
	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		key := now.AddDate(0, 0, i-6).Format("2006-01-02")
		keys[i] = key
		counts[key] = 0
	}

	for _, rec := range records {
		raw := rec.Date
		if raw == "" {
			raw = rec.CreatedAt
		}
		day, ok := parseDay(raw)
		if !ok {
			log.Printf("stats: skipping record %s: unparseable date %q", rec.ArtifactID, raw)
			continue
		}
		if _, in := counts[day]; in {
			counts[day]++
		}
	}

	buckets := make([]models.TimeBucket, 7)
	for i, key := range keys {
		buckets[i] = models.TimeBucket{Key: key, Count: counts[key]}
	}
	return buckets
}

func parseDay(raw string) (string, bool) {
	if isoDate.MatchString(raw) {
		return raw, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// HourlyHistogram buckets records into 24 hourly buckets "00".."23",
// zero-filled, using HourBucket on each record's time string.
func HourlyHistogram(records []models.ArtifactRecord) []models.TimeBucket {
	counts := make(map[string]int, 24)
	for _, rec := range records {
		counts[HourBucket(rec.Time)]++
	}

	buckets := make([]models.TimeBucket, 24)
	for h := 0; h < 24; h++ {
		key := fmt.Sprintf("%02d", h)
		buckets[h] = models.TimeBucket{Key: key, Count: counts[key]}
	}
	return buckets
}

// HourBucket extracts the hour from a time string by taking the leading
// 1-2 digit run before the first ':'. Unparseable or out-of-range values
// default to "00".
func HourBucket(t string) string {
	digits := 0
	for digits < len(t) && digits < 2 && t[digits] >= '0' && t[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(t) || t[digits] != ':' {
		return "00"
	}
	hour, err := strconv.Atoi(t[:digits])
	if err != nil || hour > 23 {
		return "00"
	}
	return fmt.Sprintf("%02d", hour)
}
