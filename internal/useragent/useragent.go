// Package useragent describes clients for logs and metric labels.
// Banner decisions never depend on it.
package useragent

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

// Device is a coarse description of a user agent.
type Device struct {
	Type    string
	OS      string
	Browser string
	IsBot   bool
}

// Describe parses a raw User-Agent string with uasurfer.
func Describe(uaString string) Device {
	u := uasurfer.Parse(uaString)

	var deviceType string
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		deviceType = "desktop"
	case uasurfer.DevicePhone:
		deviceType = "mobile"
	case uasurfer.DeviceTablet:
		deviceType = "tablet"
	default:
		deviceType = "other"
	}

	v := u.OS.Version
	os := fmt.Sprintf("%s %d.%d.%d", strings.TrimPrefix(u.OS.Name.String(), "OS"), v.Major, v.Minor, v.Patch)

	return Device{
		Type:    deviceType,
		OS:      os,
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		IsBot:   u.IsBot(),
	}
}
