package aqi

// AQI category labels as returned by the prediction service.
const (
	Good                        = "Good"
	Moderate                    = "Moderate"
	UnhealthyForSensitiveGroups = "Unhealthy for Sensitive Groups"
	Unhealthy                   = "Unhealthy"
	VeryUnhealthy               = "Very Unhealthy"
	Hazardous                   = "Hazardous"
)

// Categories lists the known labels from least to most severe.
var Categories = []string{Good, Moderate, UnhealthyForSensitiveGroups, Unhealthy, VeryUnhealthy, Hazardous}

// Fallbacks for categories missing from the tables below. The category set
// is owned by the service, so unknown labels are expected.
const (
	UnknownColor       = "#666"
	UnknownDescription = "Unknown air quality category."
)

var categoryColors = map[string]string{
	Good:                        "#00e400",
	Moderate:                    "#ffff00",
	UnhealthyForSensitiveGroups: "#ff7e00",
	Unhealthy:                   "#ff0000",
	VeryUnhealthy:               "#8f3f97",
	Hazardous:                   "#7e0023",
}

var categoryDescriptions = map[string]string{
	Good:                        "Air quality is satisfactory, and air pollution poses little or no risk.",
	Moderate:                    "Air quality is acceptable. However, there may be a risk for some people, particularly those who are unusually sensitive to air pollution.",
	UnhealthyForSensitiveGroups: "Members of sensitive groups may experience health effects. The general public is less likely to be affected.",
	Unhealthy:                   "Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects.",
	VeryUnhealthy:               "Health alert: The risk of health effects is increased for everyone.",
	Hazardous:                   "Health warning of emergency conditions: everyone is more likely to be affected.",
}

// CategoryColor returns the hex color for a category, or UnknownColor.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return UnknownColor
}

// CategoryDescription returns the health description for a category, or
// UnknownDescription.
func CategoryDescription(category string) string {
	if d, ok := categoryDescriptions[category]; ok {
		return d
	}
	return UnknownDescription
}

// ConfidenceColor returns the badge color for a confidence score in [0,100].
func ConfidenceColor(confidence float64) string {
	switch {
	case confidence >= 80:
		return "#00e400"
	case confidence >= 60:
		return "#ffff00"
	case confidence >= 40:
		return "#ff7e00"
	default:
		return "#ff0000"
	}
}

// CategoryIndex returns the severity rank of a category, or -1.
func CategoryIndex(category string) int {
	for i, c := range Categories {
		if c == category {
			return i
		}
	}
	return -1
}
