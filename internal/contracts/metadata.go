package contracts

// ComplexMetadata is static enrichment data for one apartment complex
type ComplexMetadata struct {
	Households      int      `json:"households,omitempty" yaml:"households"`
	StationDistance string   `json:"station_distance,omitempty" yaml:"station_distance"`
	BuildYear       int      `json:"build_year,omitempty" yaml:"build_year"`
	TotalFloors     int      `json:"total_floors,omitempty" yaml:"total_floors"`
	AreaTags        []string `json:"area_tags,omitempty" yaml:"area_tags"`
}
