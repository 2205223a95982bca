package models

import (
	"fmt"
	"strings"
)

// LibType is the flavour of a library project.
type LibType string

const (
	LibTypeUI         LibType = "ui"
	LibTypeNetworking LibType = "networking"
	LibTypeUtility    LibType = "utility"
	LibTypePython     LibType = "python"
	LibTypePHP        LibType = "php"
	LibTypeIOS        LibType = "ios-native"
	LibTypeAndroid    LibType = "android-native"
)

// LibTypes lists every library type in display order.
var LibTypes = []LibType{
	LibTypeUI, LibTypeNetworking, LibTypeUtility,
	LibTypePython, LibTypePHP, LibTypeIOS, LibTypeAndroid,
}

// IsValid checks if the library type is valid
func (l LibType) IsValid() bool {
	switch l {
	case LibTypeUI, LibTypeNetworking, LibTypeUtility,
		LibTypePython, LibTypePHP, LibTypeIOS, LibTypeAndroid:
		return true
	default:
		return false
	}
}

// IsTypeScript reports whether the library is built with the TypeScript toolchain.
func (l LibType) IsTypeScript() bool {
	return l == LibTypeUI || l == LibTypeNetworking || l == LibTypeUtility
}

// String returns the string representation of LibType
func (l LibType) String() string {
	return string(l)
}

// ParseLibType parses a string into a LibType
func ParseLibType(s string) (LibType, error) {
	lt := LibType(strings.TrimSpace(s))
	if !lt.IsValid() {
		return "", fmt.Errorf("invalid library type: %s (must be ui, networking, utility, python, php, ios-native, or android-native)", s)
	}
	return lt, nil
}
