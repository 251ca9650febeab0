package tilemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tilecheck/internal/tilemap"
	"github.com/cory-johannsen/tilecheck/internal/validation"
)

func TestBundledMapsAreValid(t *testing.T) {
	paths, err := tilemap.ListMapFiles("../../maps", tilemap.DefaultExtension)
	require.NoError(t, err)

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			g, err := tilemap.LoadGridFromFile(p)
			require.NoError(t, err)
			for i, line := range g.Lines() {
				assert.Len(t, line, g.Width, "row %d", i)
			}
			_, err = validation.Validate(g)
			assert.NoError(t, err)
		})
	}
}
