package preview

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"configureflow/internal/catalog"
)

func TestGenerate(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := &Generator{now: func() time.Time { return fixed }}

	got, err := g.Generate(
		catalog.Configuration{ID: "cfg-9"},
		catalog.Product{ID: "desk", ImageURL: "https://img.example.com/desk.png"},
	)
	require.NoError(t, err)

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "cfg-9", parsed.Query().Get("config"))
	assert.Equal(t, "1700000000000", parsed.Query().Get("t"))
	assert.Equal(t, "/desk.png", parsed.Path)
}

func TestGenerate_NoImage(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate(catalog.Configuration{ID: "c"}, catalog.Product{ID: "p"})
	require.Error(t, err)
}
