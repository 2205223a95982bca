package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/viper"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
)

const (
	// FileName is the optional workspace config file at the workspace root.
	FileName = "scaffold.yaml"

	// EnvPrefix prefixes environment overrides, e.g. SCAFFOLD_PYTHONVERSION.
	EnvPrefix = "SCAFFOLD"
)

// Config holds the workspace-wide generator defaults.
type Config struct {
	Organization   string `validate:"required,hostname_rfc1123"`
	NpmScope       string `validate:"required"`
	PythonVersion  string `validate:"required"`
	PHPVersion     string `validate:"required"`
	IOS            IOSConfig
	Android        AndroidConfig
	InstallCommand []string
}

// IOSConfig holds iOS toolchain versions.
type IOSConfig struct {
	MinVersion   string `validate:"required"`
	SwiftVersion string `validate:"required"`
}

// AndroidConfig holds Android toolchain versions.
type AndroidConfig struct {
	KotlinVersion string `validate:"required"`
	GradleVersion string `validate:"required"`
	AGPVersion    string `validate:"required"`
	MinSdk        int    `validate:"gte=1"`
	CompileSdk    int    `validate:"gtefield=MinSdk"`
	TargetSdk     int    `validate:"gtefield=MinSdk,ltefield=CompileSdk"`
}

var defaults = map[string]any{
	"organization":          "terrible-lizard",
	"npmScope":              "",
	"pythonVersion":         "3.11",
	"phpVersion":            "8.2",
	"ios.minVersion":        "17.0",
	"ios.swiftVersion":      "6.0",
	"android.kotlinVersion": "1.9.20",
	"android.gradleVersion": "8.11.1",
	"android.agpVersion":    "8.2.0",
	"android.minSdk":        24,
	"android.compileSdk":    34,
	"android.targetSdk":     34,
	"installCommand":        "",
}

var validate = validator.New()

// Default returns the built-in configuration without file or environment
// overrides.
func Default() Config {
	return Config{
		Organization:  "terrible-lizard",
		NpmScope:      "terrible-lizard",
		PythonVersion: "3.11",
		PHPVersion:    "8.2",
		IOS: IOSConfig{
			MinVersion:   "17.0",
			SwiftVersion: "6.0",
		},
		Android: AndroidConfig{
			KotlinVersion: "1.9.20",
			GradleVersion: "8.11.1",
			AGPVersion:    "8.2.0",
			MinSdk:        24,
			CompileSdk:    34,
			TargetSdk:     34,
		},
	}
}

// Load reads <root>/scaffold.yaml when present, or path when set, and
// applies SCAFFOLD_* environment overrides on top of the defaults.
func Load(fs filesystem.FileSystem, root, path string) (Config, error) {
	v := newViper()

	if path == "" {
		path = filepath.Join(root, FileName)
		if !fs.Exists(path) {
			path = ""
		}
	}

	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Organization:  v.GetString("organization"),
		NpmScope:      v.GetString("npmScope"),
		PythonVersion: v.GetString("pythonVersion"),
		PHPVersion:    v.GetString("phpVersion"),
		IOS: IOSConfig{
			MinVersion:   v.GetString("ios.minVersion"),
			SwiftVersion: v.GetString("ios.swiftVersion"),
		},
		Android: AndroidConfig{
			KotlinVersion: v.GetString("android.kotlinVersion"),
			GradleVersion: v.GetString("android.gradleVersion"),
			AGPVersion:    v.GetString("android.agpVersion"),
			MinSdk:        v.GetInt("android.minSdk"),
			CompileSdk:    v.GetInt("android.compileSdk"),
			TargetSdk:     v.GetInt("android.targetSdk"),
		},
	}
	if cfg.NpmScope == "" {
		cfg.NpmScope = cfg.Organization
	}

	if raw := strings.TrimSpace(v.GetString("installCommand")); raw != "" {
		args, err := shellwords.Parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid installCommand %q: %w", raw, err)
		}
		cfg.InstallCommand = args
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and that every version key parses as a
// semantic version.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	versions := []struct {
		key   string
		value string
	}{
		{"pythonVersion", c.PythonVersion},
		{"phpVersion", c.PHPVersion},
		{"ios.minVersion", c.IOS.MinVersion},
		{"ios.swiftVersion", c.IOS.SwiftVersion},
		{"android.kotlinVersion", c.Android.KotlinVersion},
		{"android.gradleVersion", c.Android.GradleVersion},
		{"android.agpVersion", c.Android.AGPVersion},
	}
	for _, version := range versions {
		if _, err := semver.NewVersion(version.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", version.key, version.value, err)
		}
	}
	return nil
}

// IOSOrganizationIdentifier is the default reverse-DNS prefix for iOS bundles.
func (c Config) IOSOrganizationIdentifier() string {
	return "com." + c.Organization
}

// AndroidPackagePrefix is the default Java package prefix.
func (c Config) AndroidPackagePrefix() string {
	return "com." + strings.ReplaceAll(c.Organization, "-", "_")
}
