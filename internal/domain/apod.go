package domain

// APODEntry represents one Astronomy Picture of the Day record.
// The upstream API returns either a single object or an array of these
// depending on the query parameters.
type APODEntry struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl,omitempty"`
	MediaType   string `json:"media_type,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
}

// ImageURL returns the HD image URL when available, falling back to the
// standard one.
func (e *APODEntry) ImageURL() string {
	if e.HDURL != "" {
		return e.HDURL
	}
	if e.URL != "" {
		return e.URL
	}
	return "No image URL"
}

// APODQuery holds validated query parameters for the APOD API.
// At most one of the three selection modes is populated.
type APODQuery struct {
	Date      string
	StartDate string
	EndDate   string
	Count     int
}
