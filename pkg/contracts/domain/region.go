package domain

// RegionMapping maps a National Olympic Committee code to a human-readable
// region name. Region may be empty in the raw source: the refugee team and
// Tuvalu codes historically carry no region and are patched downstream.
type RegionMapping struct {
	NOC    string `json:"noc"`
	Region string `json:"region,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
