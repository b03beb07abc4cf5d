package domain

// MarsPhotosResponse is the envelope returned by the Mars Rover Photos API.
type MarsPhotosResponse struct {
	Photos []MarsPhoto `json:"photos"`
}

// MarsPhoto represents a single rover photo record.
type MarsPhoto struct {
	ID        int        `json:"id"`
	Sol       int        `json:"sol"`
	ImgSrc    string     `json:"img_src"`
	EarthDate string     `json:"earth_date"`
	Camera    MarsCamera `json:"camera"`
}

// MarsCamera describes the camera that took a photo.
type MarsCamera struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// MarsQuery holds validated query parameters for the Mars Rover Photos API.
// Sol and EarthDate are mutually exclusive; Sol wins when both are supplied.
type MarsQuery struct {
	Sol       *int
	EarthDate string
	Camera    string
}

// ValidMarsCameras lists the camera codes accepted by the rover photo API.
var ValidMarsCameras = []string{
	"FHAZ", "RHAZ", "MAST", "CHEMCAM", "MAHLI",
	"MARDI", "NAVCAM", "PANCAM", "MINITES",
}

// IsValidMarsCamera reports whether the upper-cased camera code is known.
func IsValidMarsCamera(camera string) bool {
	for _, c := range ValidMarsCameras {
		if c == camera {
			return true
		}
	}
	return false
}
