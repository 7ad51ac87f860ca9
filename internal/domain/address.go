package domain

// Sentinel values used on synthesized records.
const (
	BranchStart  = "START"
	ChainStart   = "START"
	DriverSystem = "SYSTEM"
	UnknownDay   = "Unknown"
)

// AddressRecord is a delivery stop candidate as produced by ingestion.
//
// Records are treated as values: pipeline stages return new records instead of
// mutating the ones they were given. Lat and Lng are nil until geocoded.
type AddressRecord struct {
	BranchID       string   `json:"branchId"`
	Chain          string   `json:"chain"`
	Street         string   `json:"street"`
	PostalCode     string   `json:"postalCode"`
	City           string   `json:"city"`
	FullAddress    string   `json:"fullAddress"`
	Driver         string   `json:"driver"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	PlacementCount int      `json:"placementCount"`
	VisitDay       string   `json:"visitDay,omitempty"`
}

// Coords returns the record's coordinates and whether both are present.
func (a AddressRecord) Coords() (Coordinates, bool) {
	if a.Lat == nil || a.Lng == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *a.Lat, Lng: *a.Lng}, true
}

// HasCoords reports whether the record carries usable coordinates.
// A 0/0 pair is treated as absent, matching how uploads leave empty cells.
func (a AddressRecord) HasCoords() bool {
	c, ok := a.Coords()
	return ok && (c.Lat != 0 || c.Lng != 0)
}

// WithCoords returns a copy of the record carrying c.
func (a AddressRecord) WithCoords(c Coordinates) AddressRecord {
	lat, lng := c.Lat, c.Lng
	a.Lat = &lat
	a.Lng = &lng
	return a
}

// Ingestion is the output of the spreadsheet reader.
type Ingestion struct {
	Addresses []AddressRecord `json:"addresses"`
	Drivers   []string        `json:"drivers"`
}
