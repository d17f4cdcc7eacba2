package widgets

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	defaultMapZoom = 15
	osmEmbedBase   = "https://www.openstreetmap.org/export/embed.html"
	osmLinkBase    = "https://www.openstreetmap.org/"
)

// Map is an OpenStreetMap embed centred on one marker.
type Map struct {
	Title     string
	Latitude  float64
	Longitude float64
	Zoom      int
	EmbedURL  string
	LinkURL   string
	Valid     bool
}

// NewMap builds the embed and link-out URLs. Valid is false when the
// coordinates are missing (0,0), NaN or out of range; the URLs stay empty.
func NewMap(title string, lat, lng float64, zoom int) Map {
	if zoom < 1 || zoom > 19 {
		zoom = defaultMapZoom
	}
	m := Map{Title: title, Latitude: lat, Longitude: lng, Zoom: zoom}
	if !validCoordinates(lat, lng) {
		return m
	}
	m.Valid = true

	span := 180.0 / math.Pow(2, float64(zoom))
	bbox := fmt.Sprintf("%s,%s,%s,%s",
		coord(lng-span), coord(lat-span/2), coord(lng+span), coord(lat+span/2))
	q := url.Values{}
	q.Set("bbox", bbox)
	q.Set("layer", "mapnik")
	q.Set("marker", coord(lat)+","+coord(lng))
	m.EmbedURL = osmEmbedBase + "?" + q.Encode()

	lq := url.Values{}
	lq.Set("mlat", coord(lat))
	lq.Set("mlon", coord(lng))
	m.LinkURL = osmLinkBase + "?" + lq.Encode() + "#map=" + strconv.Itoa(zoom) + "/" + coord(lat) + "/" + coord(lng)
	return m
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func coord(v float64) string { return strconv.FormatFloat(v, 'f', 5, 64) }
