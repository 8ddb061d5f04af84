package event

// Currency is the price designator used for every listing on the source
// site; the structured data never carries a different one.
const Currency = "RON"

// Record represents one normalized event extracted from a structured-data block
type Record struct {
	Title       string `json:"title"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	LocationURL string `json:"location_url,omitempty"`
	URL         string `json:"url,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       string `json:"price,omitempty"`
	Currency    string `json:"currency,omitempty"`
	IsStandup   bool   `json:"is_standup"`
}
