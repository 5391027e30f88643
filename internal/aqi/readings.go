// Package aqi holds the data exchanged with the air quality prediction
// service and the static display tables for AQI categories.
package aqi

// Reading names as agreed with the prediction service, in form order.
const (
	PM25    = "pm25"
	PM10    = "pm10"
	NO      = "no"
	NO2     = "no2"
	NOx     = "nox"
	NH3     = "nh3"
	CO      = "co"
	SO2     = "so2"
	O3      = "o3"
	Benzene = "benzene"
	Toluene = "toluene"
)

// ReadingNames lists every reading the service requires.
var ReadingNames = []string{PM25, PM10, NO, NO2, NOx, NH3, CO, SO2, O3, Benzene, Toluene}

// ReadingInfo describes a reading for labels and prompts.
type ReadingInfo struct {
	Name string
	// Feature is the model feature name the service echoes back in input_data.
	Feature     string
	Label       string
	Unit        string
	Description string
}

var readingInfo = map[string]ReadingInfo{
	PM25:    {PM25, "PM2.5", "PM2.5", "μg/m³", "PM2.5 concentration"},
	PM10:    {PM10, "PM10", "PM10", "μg/m³", "PM10 concentration"},
	NO:      {NO, "NO", "NO", "μg/m³", "Nitric Oxide concentration"},
	NO2:     {NO2, "NO2", "NO2", "μg/m³", "Nitrogen Dioxide concentration"},
	NOx:     {NOx, "NOx", "NOx", "μg/m³", "Nitrogen Oxides concentration"},
	NH3:     {NH3, "NH3", "NH3", "μg/m³", "Ammonia concentration"},
	CO:      {CO, "CO", "CO", "mg/m³", "Carbon Monoxide concentration"},
	SO2:     {SO2, "SO2", "SO2", "μg/m³", "Sulfur Dioxide concentration"},
	O3:      {O3, "O3", "O3", "μg/m³", "Ozone concentration"},
	Benzene: {Benzene, "Benzene", "Benzene", "μg/m³", "Benzene concentration"},
	Toluene: {Toluene, "Toluene", "Toluene", "μg/m³", "Toluene concentration"},
}

// Info returns the description of a reading. ok is false for unknown names.
func Info(name string) (ReadingInfo, bool) {
	ri, ok := readingInfo[name]
	return ri, ok
}

// Readings is the body of a /predict request. Every field is always sent.
type Readings struct {
	PM25    float64 `json:"pm25" yaml:"pm25"`
	PM10    float64 `json:"pm10" yaml:"pm10"`
	NO      float64 `json:"no" yaml:"no"`
	NO2     float64 `json:"no2" yaml:"no2"`
	NOx     float64 `json:"nox" yaml:"nox"`
	NH3     float64 `json:"nh3" yaml:"nh3"`
	CO      float64 `json:"co" yaml:"co"`
	SO2     float64 `json:"so2" yaml:"so2"`
	O3      float64 `json:"o3" yaml:"o3"`
	Benzene float64 `json:"benzene" yaml:"benzene"`
	Toluene float64 `json:"toluene" yaml:"toluene"`
}

// field returns a pointer to the named reading, or nil.
func (r *Readings) field(name string) *float64 {
	switch name {
	case PM25:
		return &r.PM25
	case PM10:
		return &r.PM10
	case NO:
		return &r.NO
	case NO2:
		return &r.NO2
	case NOx:
		return &r.NOx
	case NH3:
		return &r.NH3
	case CO:
		return &r.CO
	case SO2:
		return &r.SO2
	case O3:
		return &r.O3
	case Benzene:
		return &r.Benzene
	case Toluene:
		return &r.Toluene
	}
	return nil
}

// Get returns the value of the named reading.
func (r Readings) Get(name string) (float64, bool) {
	p := r.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Set assigns the named reading. It reports false for unknown names.
func (r *Readings) Set(name string, v float64) bool {
	p := r.field(name)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Map returns the readings keyed by reading name.
func (r Readings) Map() map[string]float64 {
	m := make(map[string]float64, len(ReadingNames))
	for _, name := range ReadingNames {
		v, _ := r.Get(name)
		m[name] = v
	}
	return m
}

// FeatureMap returns the readings keyed by model feature name (PM2.5, NOx, …).
func (r Readings) FeatureMap() map[string]float64 {
	m := make(map[string]float64, len(ReadingNames))
	for _, name := range ReadingNames {
		v, _ := r.Get(name)
		m[readingInfo[name].Feature] = v
	}
	return m
}
