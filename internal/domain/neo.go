package domain

// NeoFeed is the envelope returned by the NeoWs feed API.
// ErrorMessage is populated when the API reports a failure in the body,
// which it sometimes does even with an HTTP 200.
type NeoFeed struct {
	ElementCount     int                       `json:"element_count"`
	NearEarthObjects map[string][]NearEarthObj `json:"near_earth_objects"`
	ErrorMessage     string                    `json:"error_message,omitempty"`
}

// NearEarthObj represents one asteroid record in the feed.
type NearEarthObj struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	AbsoluteMagnitude float64             `json:"absolute_magnitude_h"`
	EstimatedDiameter NeoDiameter         `json:"estimated_diameter"`
	IsHazardous       bool                `json:"is_potentially_hazardous_asteroid"`
	CloseApproaches   []NeoCloseApproach  `json:"close_approach_data"`
	JPLURL            string              `json:"nasa_jpl_url"`
}

// NeoDiameter holds diameter estimates per unit.
type NeoDiameter struct {
	Kilometers NeoDiameterRange `json:"kilometers"`
}

// NeoDiameterRange is a min/max diameter estimate.
type NeoDiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// NeoCloseApproach describes one close approach of an asteroid.
type NeoCloseApproach struct {
	DateFull         string          `json:"close_approach_date_full"`
	RelativeVelocity NeoVelocity     `json:"relative_velocity"`
	MissDistance     NeoMissDistance `json:"miss_distance"`
	OrbitingBody     string          `json:"orbiting_body"`
}

// NeoVelocity holds velocity readings as decimal strings, as the API
// serves them.
type NeoVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

// NeoMissDistance holds miss distance readings as decimal strings.
type NeoMissDistance struct {
	Kilometers string `json:"kilometers"`
	Lunar      string `json:"lunar"`
}

// NeoQuery holds validated query parameters for the NeoWs feed API.
type NeoQuery struct {
	StartDate string
	EndDate   string
}
