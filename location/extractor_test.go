package location

import (
	"context"
	"errors"
	"testing"
)

func TestExtractPlace(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "preposition followed by capitalized phrase",
			text: "there is a water leak near Main Street today",
			want: "Main Street",
		},
		{
			name: "street suffix without preposition",
			text: "Oak Road has a huge pothole",
			want: "Oak Road",
		},
		{
			name: "street suffix beats the numbered-address pattern",
			text: "broken lamp outside 42 elm street",
			want: "elm street",
		},
		{
			name: "postal code token",
			text: "flooding reported around sector NY 10001 yesterday",
			want: "NY 10001",
		},
		{
			name: "no location",
			text: "the bin is overflowing again",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlace(tt.text); got != tt.want {
				t.Errorf("ExtractPlace(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

type stubGeocoder struct {
	lat, lng float64
	name     string
	err      error
	calls    int
}

func (s *stubGeocoder) Geocode(_ context.Context, place string) (float64, float64, string, error) {
	s.calls++
	return s.lat, s.lng, s.name, s.err
}

func TestExtractGeocodesPhrase(t *testing.T) {
	geo := &stubGeocoder{lat: 17.4, lng: 78.5, name: "Main Street, Hyderabad"}
	e := NewExtractor(geo)

	got := e.Extract(context.Background(), "leak near Main Street", nil)
	if got == nil {
		t.Fatal("expected a location")
	}
	if got.Source != "text" || got.MatchedText != "Main Street" {
		t.Errorf("got %+v, want source=text matched=Main Street", got)
	}
	if got.Latitude != 17.4 || got.Longitude != 78.5 {
		t.Errorf("coordinates = (%v, %v), want (17.4, 78.5)", got.Latitude, got.Longitude)
	}
}

func TestExtractFallsBackToDevice(t *testing.T) {
	geo := &stubGeocoder{err: errors.New("service unavailable")}
	e := NewExtractor(geo)
	device := &DeviceCoordinates{Latitude: 1.5, Longitude: 2.5}

	got := e.Extract(context.Background(), "leak near Main Street", device)
	if got == nil {
		t.Fatal("expected the device fallback")
	}
	if got.Source != SourceBrowser || got.Latitude != 1.5 {
		t.Errorf("got %+v, want device fallback", got)
	}
}

func TestExtractNothingAvailable(t *testing.T) {
	e := NewExtractor(&stubGeocoder{})
	if got := e.Extract(context.Background(), "the bin is overflowing", nil); got != nil {
		t.Errorf("expected nil for no phrase and no device coordinates, got %+v", got)
	}
}

func TestExtractNoPhraseUsesDeviceWithoutGeocoding(t *testing.T) {
	geo := &stubGeocoder{lat: 9, lng: 9}
	e := NewExtractor(geo)
	device := &DeviceCoordinates{Latitude: 3, Longitude: 4}

	got := e.Extract(context.Background(), "the bin is overflowing", device)
	if got == nil || got.Source != SourceBrowser {
		t.Fatalf("got %+v, want browser source", got)
	}
	if geo.calls != 0 {
		t.Errorf("geocoder called %d times, want 0", geo.calls)
	}
}
