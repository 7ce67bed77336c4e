// Package enrichment derives display fields from request metadata for the
// sandbox access log.
package enrichment

import (
	"fmt"

	"github.com/mssola/user_agent"
)

type Agent struct {
	Browser    string
	Version    string
	OS         string
	DeviceType string
}

func ParseUserAgent(uaString string) Agent {
	if uaString == "" {
		return Agent{Browser: "unknown", OS: "unknown", DeviceType: "unknown"}
	}

	ua := user_agent.New(uaString)
	browser, version := ua.Browser()

	deviceType := "desktop"
	switch {
	case ua.Bot():
		deviceType = "bot"
	case ua.Mobile():
		deviceType = "mobile"
	}

	os := ua.OS()
	if os == "" {
		os = "unknown"
	}

	return Agent{
		Browser:    browser,
		Version:    version,
		OS:         os,
		DeviceType: deviceType,
	}
}

func (a Agent) String() string {
	name := a.Browser
	if a.Version != "" {
		name += " " + a.Version
	}
	return fmt.Sprintf("%s on %s (%s)", name, a.OS, a.DeviceType)
}
