package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ALMANAC_PACKS", "/srv/packs")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde", "~", home},
		{"tilde slash", "~/packs/create", filepath.Join(home, "packs", "create")},
		{"env var", "$ALMANAC_PACKS/create", "/srv/packs/create"},
		{"braced env var", "${ALMANAC_PACKS}/lang", "/srv/packs/lang"},
		{"relative", "./packs/../packs/extra", "packs/extra"},
		{"tilde user is untouched", "~bob/packs", "~bob/packs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Expand(tt.in))
		})
	}
}

func TestExpandAll_DropsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := ExpandAll([]string{"~/a", " ", "", "b/"})
	require.Equal(t, []string{filepath.Join(home, "a"), "b"}, got)
}
