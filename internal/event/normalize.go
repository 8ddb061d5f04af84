package event

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Structured-data blocks wrap their JSON in legacy CDATA comments on some
// templates; both halves must go before the payload parses.
const (
	cdataOpen  = "/*<![CDATA[*/"
	cdataClose = "/*]]>*/"
)

// standupMarkers are matched against the lowercased title when the scrape
// is not already scoped to the stand-up category.
var standupMarkers = []string{"stand up", "stand-up", "comedy"}

// ExtractRecords parses the content of one structured-data script block and
// returns the normalized records it describes. A block may hold a single
// Event object, a list mixing Events with other entity types, or something
// unrelated entirely; anything that is not an Event contributes nothing.
// Malformed JSON yields an empty slice, never an error: one broken block
// must not take down its siblings on the same page.
func ExtractRecords(content string, globalStandup bool) []Record {
	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, cdataOpen, "")
	content = strings.ReplaceAll(content, cdataClose, "")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil
	}

	records := make([]Record, 0)
	switch data := raw.(type) {
	case map[string]interface{}:
		if isEvent(data) {
			records = append(records, Normalize(data, globalStandup))
		}
	case []interface{}:
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok || !isEvent(obj) {
				continue
			}
			records = append(records, Normalize(obj, globalStandup))
		}
	}
	return records
}

// Normalize converts one decoded Event object into a Record. Every field
// extraction is independent: a missing or oddly shaped field produces an
// empty output field, not a failure.
func Normalize(item map[string]interface{}, globalStandup bool) Record {
	rec := Record{
		Title:     stringField(item, "name"),
		StartDate: stringField(item, "startDate"),
		EndDate:   stringField(item, "endDate"),
		URL:       stringField(item, "url"),
		Image:     imageURL(item["image"]),
	}

	rec.Location, rec.LocationURL = locationFields(item["location"])

	if price, ok := offerPrice(item["offers"]); ok {
		rec.Price = price
		rec.Currency = Currency
	}

	if globalStandup {
		rec.IsStandup = true
	} else {
		title := strings.ToLower(rec.Title)
		for _, marker := range standupMarkers {
			if strings.Contains(title, marker) {
				rec.IsStandup = true
				break
			}
		}
	}

	return rec
}

func isEvent(obj map[string]interface{}) bool {
	return stringField(obj, "@type") == "Event"
}

func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

// imageURL handles the three image shapes seen in the wild: a plain URL
// string, an ImageObject with a url subfield, or a list whose first element
// is either of those.
func imageURL(raw interface{}) string {
	switch img := raw.(type) {
	case string:
		return img
	case map[string]interface{}:
		return stringField(img, "url")
	case []interface{}:
		if len(img) == 0 {
			return ""
		}
		switch first := img[0].(type) {
		case string:
			return first
		case map[string]interface{}:
			return stringField(first, "url")
		}
	}
	return ""
}

// locationFields reads the venue name and URL from a nested location
// object. Some templates publish the venue link under sameAs instead of url.
func locationFields(raw interface{}) (name, url string) {
	loc, ok := raw.(map[string]interface{})
	if !ok {
		return "", ""
	}
	name = stringField(loc, "name")
	url = stringField(loc, "url")
	if url == "" {
		url = stringField(loc, "sameAs")
	}
	return name, url
}

// offerPrice reads price (or lowPrice for aggregate offers) from an offers
// field that may be a single object or a list, in which case the first
// entry is taken.
func offerPrice(raw interface{}) (string, bool) {
	var offer map[string]interface{}
	switch o := raw.(type) {
	case map[string]interface{}:
		offer = o
	case []interface{}:
		if len(o) == 0 {
			return "", false
		}
		first, ok := o[0].(map[string]interface{})
		if !ok {
			return "", false
		}
		offer = first
	default:
		return "", false
	}

	price, ok := offer["price"]
	if !ok {
		price, ok = offer["lowPrice"]
	}
	if !ok {
		return "", false
	}

	switch p := price.(type) {
	case float64:
		return formatPrice(p), true
	case string:
		if p == "" {
			return "", false
		}
		if v, err := strconv.ParseFloat(p, 64); err == nil {
			return formatPrice(v), true
		}
		// Not numeric; pass through as published.
		return p, true
	}
	return "", false
}

func formatPrice(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
