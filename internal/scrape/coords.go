package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Coordinate extraction strategies, tried in order:
//  1. span.geo-dec: decimal degrees with compass letters ("40.75°N 73.99°W")
//  2. span.geo:     "lat; lon" (or comma-separated) decimal pair
//  3. visible text: decimal-with-compass pairs, then two standalone decimals
//
// Individual tokens may also carry degree/minute/second components.

var (
	compassRe    = regexp.MustCompile(`(?i)([NSEW])`)
	numberRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	decCompassRe = regexp.MustCompile(`(?i)([+-]?\d+(?:\.\d+)?)\s*°?\s*([NSEW])`)
	decimalRe    = regexp.MustCompile(`[+-]?\d+\.\d+|[+-]?\d+`)
)

// ResolveCoordinates extracts latitude and longitude from a location cell
// (or any element wrapping coordinate markup). Returns ok=false when no
// supported pattern matches.
func ResolveCoordinates(cell *goquery.Selection) (float64, float64, bool) {
	if cell == nil || cell.Length() == 0 {
		return 0, 0, false
	}

	if geoDec := cell.Find("span.geo-dec").First(); geoDec.Length() > 0 {
		if lat, lon, ok := parseTokenPair(geoDec.Text()); ok {
			return lat, lon, true
		}
	}

	if geo := cell.Find("span.geo").First(); geo.Length() > 0 {
		if lat, lon, ok := parseGeoSpan(geo.Text()); ok {
			return lat, lon, true
		}
	}

	return ParseLocationText(cell.Text())
}

// ParseLocationText extracts a coordinate pair from free-form location text.
func ParseLocationText(text string) (float64, float64, bool) {
	// Decimal degrees with compass letters.
	if pairs := decCompassRe.FindAllStringSubmatch(text, 2); len(pairs) >= 2 {
		vals := make([]float64, 0, 2)
		for _, m := range pairs[:2] {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				return 0, 0, false
			}
			if d := strings.ToUpper(m[2]); d == "S" || d == "W" {
				v = -abs(v)
			}
			vals = append(vals, v)
		}
		return vals[0], vals[1], true
	}

	// Two standalone decimals.
	if nums := decimalRe.FindAllString(text, 2); len(nums) >= 2 {
		lat, err1 := strconv.ParseFloat(nums[0], 64)
		lon, err2 := strconv.ParseFloat(nums[1], 64)
		if err1 == nil && err2 == nil {
			return lat, lon, true
		}
	}

	return 0, 0, false
}

// parseTokenPair scans whitespace-separated tokens for two parseable
// coordinate values (decimal or DMS, with optional compass letter).
func parseTokenPair(text string) (float64, float64, bool) {
	vals := make([]float64, 0, 2)
	for _, token := range strings.Fields(text) {
		if v, ok := tokenToDecimal(token); ok {
			vals = append(vals, v)
		}
		if len(vals) == 2 {
			return vals[0], vals[1], true
		}
	}
	return 0, 0, false
}

// parseGeoSpan handles the "lat; lon" (or "lat, lon") geo microformat span.
func parseGeoSpan(text string) (float64, float64, bool) {
	var parts []string
	switch {
	case strings.Contains(text, ";"):
		parts = strings.SplitN(text, ";", 2)
	case strings.Contains(text, ","):
		parts = strings.SplitN(text, ",", 2)
	default:
		parts = strings.Fields(text)
	}
	if len(parts) < 2 {
		return 0, 0, false
	}

	latStr := strings.TrimSpace(parts[0])
	lonStr := strings.TrimSpace(parts[1])

	lat, err1 := strconv.ParseFloat(latStr, 64)
	lon, err2 := strconv.ParseFloat(lonStr, 64)
	if err1 == nil && err2 == nil {
		return lat, lon, true
	}

	// The span may carry DMS inside each part.
	latV, ok1 := tokenToDecimal(latStr)
	lonV, ok2 := tokenToDecimal(lonStr)
	if ok1 && ok2 {
		return latV, lonV, true
	}

	return 0, 0, false
}

// tokenToDecimal parses a token that may be decimal degrees or DMS and
// returns a signed value. Compass letters S and W negate the value.
func tokenToDecimal(token string) (float64, bool) {
	token = strings.TrimSpace(strings.ReplaceAll(token, "−", "-"))

	var direction string
	if m := compassRe.FindString(token); m != "" {
		direction = strings.ToUpper(m)
	}

	nums := numberRe.FindAllString(token, -1)
	if len(nums) == 0 {
		return 0, false
	}

	var val float64
	if len(nums) >= 3 {
		deg, err1 := strconv.ParseFloat(nums[0], 64)
		min, err2 := strconv.ParseFloat(nums[1], 64)
		sec, err3 := strconv.ParseFloat(nums[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false
		}
		val = deg + min/60.0 + sec/3600.0
	} else {
		v, err := strconv.ParseFloat(nums[0], 64)
		if err != nil {
			return 0, false
		}
		val = v
	}

	if direction == "S" || direction == "W" {
		val = -abs(val)
	}
	if strings.HasPrefix(token, "-") {
		val = -abs(val)
	}

	return val, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
