package enrichment

import (
	"strings"
	"testing"
)

func TestParseUserAgent_Desktop(t *testing.T) {
	agent := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	if agent.Browser != "Chrome" {
		t.Errorf("expected Chrome, got '%s'", agent.Browser)
	}
	if agent.DeviceType != "desktop" {
		t.Errorf("expected desktop, got '%s'", agent.DeviceType)
	}
}

func TestParseUserAgent_Mobile(t *testing.T) {
	agent := ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")

	if agent.DeviceType != "mobile" {
		t.Errorf("expected mobile, got '%s'", agent.DeviceType)
	}
}

func TestParseUserAgent_Bot(t *testing.T) {
	agent := ParseUserAgent("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")

	if agent.DeviceType != "bot" {
		t.Errorf("expected bot, got '%s'", agent.DeviceType)
	}
}

func TestParseUserAgent_Empty(t *testing.T) {
	agent := ParseUserAgent("")

	if !strings.Contains(agent.String(), "unknown") {
		t.Errorf("expected unknown agent, got '%s'", agent.String())
	}
}
