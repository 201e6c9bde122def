// Package location pulls place references out of free-text issue
// descriptions and resolves them to coordinates.
package location

import (
	"context"
	"regexp"

	"github.com/apex/log"

	"wefix/metrics"
	"wefix/models"
)

// Location source labels. SourceBrowser marks coordinates reported by
// the client device rather than extracted from the text.
const (
	SourceText    = "text"
	SourceBrowser = "browser"
)

// placePatterns are tried in declared order; the first pattern that
// matches supplies the candidate phrase.
var placePatterns = []*regexp.Regexp{
	// "near Main Street", "at Central Park"
	regexp.MustCompile(`(?:near|at|on|in|around|close to|by)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	// "Main Street", "Oak Road"
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+(?:Street|Road|Avenue|Lane|Drive|Park|Square|Plaza|Circle|Boulevard|Highway))`),
	// postal-code-like tokens, "NY 10001"
	regexp.MustCompile(`([A-Z]{2,}\s+\d{4,6})`),
	// "42 Elm Street"
	regexp.MustCompile(`(?i)(\d+\s+[A-Z][a-z]+\s+(?:Street|Road|Avenue|Lane|Drive))`),
}

var leadingPreposition = regexp.MustCompile(`(?i)^(?:near|at|on|in|around|close to|by)\s+`)

// ExtractPlace returns the first place-like phrase found in the text,
// or "" when nothing matches.
func ExtractPlace(text string) string {
	if text == "" {
		return ""
	}
	for _, pattern := range placePatterns {
		if match := pattern.FindString(text); match != "" {
			return leadingPreposition.ReplaceAllString(match, "")
		}
	}
	return ""
}

// Geocoder resolves a place phrase to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (lat, lng float64, displayName string, err error)
}

// DeviceCoordinates are coordinates reported by the caller's device,
// used when the text yields nothing.
type DeviceCoordinates struct {
	Latitude  float64
	Longitude float64
}

// Extractor combines phrase extraction with geocoding and a device
// coordinate fallback.
type Extractor struct {
	geocoder Geocoder
}

func NewExtractor(geocoder Geocoder) *Extractor {
	return &Extractor{geocoder: geocoder}
}

// Extract resolves a location for the text. A geocoded phrase wins;
// failing that, device coordinates; failing both, nil. A nil result
// means "no location", not an error.
func (e *Extractor) Extract(ctx context.Context, text string, device *DeviceCoordinates) *models.LocationInfo {
	place := ExtractPlace(text)
	if place != "" && e.geocoder != nil {
		lat, lng, displayName, err := e.geocoder.Geocode(ctx, place)
		if err == nil {
			return &models.LocationInfo{
				Latitude:    lat,
				Longitude:   lng,
				Source:      SourceText,
				MatchedText: place,
				DisplayName: displayName,
			}
		}
		metrics.GeocodeErrorTotal.Inc()
		log.Warnf("Geocoding %q failed, falling back to device coordinates: %v", place, err)
	}

	if device != nil {
		return &models.LocationInfo{
			Latitude:  device.Latitude,
			Longitude: device.Longitude,
			Source:    SourceBrowser,
		}
	}
	return nil
}
