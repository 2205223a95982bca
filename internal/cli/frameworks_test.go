package cli

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jakoblorz/go-scaffold/internal/toolchain"
)

func TestFrameworks(t *testing.T) {
	res := run(nil, toolchain.NewMockRunner(), nil, "frameworks")
	require.NoError(t, res.err)

	require.Contains(t, res.stdout.String(), "basic, flask, django, fastapi")
	snaps.MatchSnapshot(t, res.stdout.String())
}

func TestFrameworks_JSON(t *testing.T) {
	res := run(nil, toolchain.NewMockRunner(), nil, "frameworks", "--json", "--templates")
	require.NoError(t, res.err)

	out := res.stdout.Bytes()
	require.Equal(t, "symfony", gjson.GetBytes(out, "frameworks.php.0").String())
	require.Equal(t, "svelte", gjson.GetBytes(out, `inferred.web.#(=="svelte")`).String())
	require.False(t, gjson.GetBytes(out, `frameworks.web.#(=="svelte")`).Exists())
	require.Contains(t, gjson.GetBytes(out, "templates").String(), "app/web/basic")
}
