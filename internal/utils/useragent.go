package utils

import (
	"fmt"

	ua "github.com/mssola/user_agent"
)

// DeviceSummary renders a short device description from a User-Agent header,
// stored alongside bookings for support lookups. Returns nil for an empty
// header so the column stays NULL.
func DeviceSummary(userAgent string) *string {
	if userAgent == "" {
		return nil
	}

	parser := ua.New(userAgent)

	deviceType := "desktop"
	if parser.Mobile() {
		deviceType = "mobile"
	}
	if parser.Bot() {
		deviceType = "bot"
	}

	osInfo := parser.OSInfo()
	os := osInfo.Name
	if osInfo.Version != "" {
		os = os + " " + osInfo.Version
	}
	if os == "" {
		os = "Unknown"
	}

	browser, version := parser.Browser()
	if browser == "" {
		browser = "Unknown"
	}
	if version != "" {
		browser = browser + " " + version
	}

	summary := fmt.Sprintf("%s | %s | %s", deviceType, os, browser)
	return &summary
}
