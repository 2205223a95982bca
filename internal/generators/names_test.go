package generators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectDirectory(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		want      string
	}{
		{"My App", "", "my-app"},
		{"myApp", "Team/Apps", "team/apps/my-app"},
		{"orders", "/services/", "services/orders"},
		{"team/api", "", "team/api"},
		{"_internal", "", "_internal"},
		{"my.app", "", "my.app"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectDirectory(tt.name, tt.directory)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestProjectDirectory_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		directory string
		msg       string
	}{
		{"a/../../b", "", "relative path segments"},
		{"../libs/evil", "", "relative path segments"},
		{"..", "", "relative path segments"},
		{".", "", "relative path segments"},
		{"/etc", "", `Invalid name "/etc"`},
		{"a//b", "", `Invalid name "a//b"`},
		{`a\b`, "", `Invalid name "a\\b"`},
		{"my app!", "", `Invalid name "my app!"`},
		{"orders", "../..", `Invalid directory "../.."`},
		{"orders", "team/./apps", "relative path segments"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"@"+tt.directory, func(t *testing.T) {
			_, err := ProjectDirectory(tt.name, tt.directory)
			require.ErrorIs(t, err, ErrConfiguration)
			require.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	err := ValidatePackageName("com.class.app")
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorContains(t, err, `"class" is a Java keyword`)

	require.Error(t, ValidatePackageName("com.Package.app"))
	require.NoError(t, ValidatePackageName("com.terrible_lizard.myapp"))
}
