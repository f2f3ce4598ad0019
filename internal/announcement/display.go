package announcement

// Display lookups for announcement categories. Unknown categories fall back
// to a neutral default.

var categoryIcons = map[string]string{
	"RFQ":                     "sap-icon://message-information",
	"Business Announcement":   "sap-icon://bell",
	"Compliance Notification": "sap-icon://alert",
	"Alert":                   "sap-icon://warning",
	"Maintenance":             "sap-icon://wrench",
	"Urgent":                  "sap-icon://error",
}

var categoryColors = map[string]string{
	"RFQ":                     "Accent6",
	"Business Announcement":   "Accent8",
	"Compliance Notification": "Accent2",
	"Urgent":                  "Accent4",
}

var categoryStates = map[string]string{
	"RFQ":                     "Information",
	"Business Announcement":   "Success",
	"Compliance Notification": "Warning",
	"Alert":                   "Error",
	"Maintenance":             "Indication06",
	"Urgent":                  "Error",
}

// Icon returns the display icon for a category.
func Icon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "sap-icon://hint"
}

// Color returns the avatar accent color for a category.
func Color(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return "Accent6"
}

// StatusState returns the semantic status state for a category.
func StatusState(category string) string {
	if state, ok := categoryStates[category]; ok {
		return state
	}
	return "None"
}
