package models

import (
	"fmt"
	"strings"
)

// AppType is the language/platform family of an application.
type AppType string

const (
	AppTypeWeb     AppType = "web"
	AppTypePython  AppType = "python"
	AppTypePHP     AppType = "php"
	AppTypeIOS     AppType = "ios-native"
	AppTypeAndroid AppType = "android-native"
)

// AppTypes lists every application type in display order.
var AppTypes = []AppType{AppTypeWeb, AppTypePython, AppTypePHP, AppTypeIOS, AppTypeAndroid}

// IsValid checks if the application type is valid
func (a AppType) IsValid() bool {
	switch a {
	case AppTypeWeb, AppTypePython, AppTypePHP, AppTypeIOS, AppTypeAndroid:
		return true
	default:
		return false
	}
}

// IsNative reports whether the type is scaffolded by platform tooling
// rather than a framework.
func (a AppType) IsNative() bool {
	return a == AppTypeIOS || a == AppTypeAndroid
}

// DockerByDefault reports whether containers are added when the caller
// did not decide.
func (a AppType) DockerByDefault() bool {
	return a != AppTypeIOS
}

// String returns the string representation of AppType
func (a AppType) String() string {
	return string(a)
}

// ParseAppType parses a string into an AppType
func ParseAppType(s string) (AppType, error) {
	at := AppType(strings.TrimSpace(s))
	if !at.IsValid() {
		return "", fmt.Errorf("invalid application type: %s (must be web, python, php, ios-native, or android-native)", s)
	}
	return at, nil
}

// WebAppKind splits web applications for container selection.
type WebAppKind string

const (
	WebAppFrontend WebAppKind = "frontend"
	WebAppBackend  WebAppKind = "backend"
)

// IsValid checks if the web application kind is valid
func (k WebAppKind) IsValid() bool {
	return k == WebAppFrontend || k == WebAppBackend
}

// String returns the string representation of WebAppKind
func (k WebAppKind) String() string {
	return string(k)
}

// ParseWebAppKind parses a string into a WebAppKind
func ParseWebAppKind(s string) (WebAppKind, error) {
	k := WebAppKind(strings.TrimSpace(s))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid app type: %s (must be frontend or backend)", s)
	}
	return k, nil
}
