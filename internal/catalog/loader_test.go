package catalog

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestLoad_WrappedDataDragon(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "items.json"), quietOptions())
	require.NoError(t, err)

	assert.Equal(t, "14.1.1", c.Version())
	assert.Equal(t, 8, c.Len())
	assert.Len(t, c.Digest(), 64)

	phage := c.Lookup("3044")
	require.NotNil(t, phage)
	assert.Equal(t, []string{"1028", "1036"}, phage.Children(), "numeric component ids become strings")
	assert.Equal(t, 350, c.RecipeCost(phage))

	assert.True(t, c.Lookup("2003").IsBase(), "missing from means base item")
	assert.False(t, c.IsPurchasable(c.Lookup("3400")))
	assert.False(t, c.IsPurchasable(c.Lookup("3513")))
}

func TestParse_FlatMap(t *testing.T) {
	c, err := Parse([]byte(`{
	  "1036": {"name": "Long Sword", "gold": {"total": 350}},
	  "3133": {"gold": {"total": 1100}, "from": ["1036", "1036"]}
	}`), quietOptions())
	require.NoError(t, err)

	assert.Equal(t, "", c.Version())
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.IsPurchasable(c.Lookup("1036")), "missing purchasable flag defaults to true")
	assert.Equal(t, 400, c.RecipeCost(c.Lookup("3133")))
}

func TestParse_RoundsFractionalGold(t *testing.T) {
	c, err := Parse([]byte(`{"1": {"gold": {"total": 349.6}}}`), quietOptions())
	require.NoError(t, err)
	assert.Equal(t, 350, c.Lookup("1").TotalCost())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed json", doc: `{"1036": `},
		{name: "array root", doc: `[1, 2, 3]`},
		{name: "negative cost", doc: `{"1036": {"gold": {"total": -1}}}`},
		{name: "components not a list", doc: `{"3133": {"from": {"a": 1}}}`},
		{name: "component is an object", doc: `{"3133": {"from": [{"id": "1036"}]}}`},
		{name: "map flag not bool", doc: `{"1036": {"maps": {"11": "yes"}}}`},
		{name: "record not an object", doc: `{"1036": 350}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), quietOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	p := writeFile(t, "items.yaml", []byte(`
version: "14.2.1"
items:
  1036:
    name: Long Sword
    gold: {total: 350}
  3133:
    name: Caulfield's Warhammer
    gold: {total: 1100}
    from: [1036, 1036]
`))
	c, err := Load(p, quietOptions())
	require.NoError(t, err)

	assert.Equal(t, "14.2.1", c.Version())
	require.NotNil(t, c.Lookup("3133"))
	assert.Equal(t, []string{"1036", "1036"}, c.Lookup("3133").Children())
}

func TestLoad_Zstd(t *testing.T) {
	plain, err := os.ReadFile(filepath.Join("testdata", "items.json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	p := writeFile(t, "items.json.zst", buf.Bytes())
	c, err := Load(p, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())

	direct, err := Parse(buf.Bytes(), quietOptions())
	require.NoError(t, err)
	assert.Equal(t, c.Digest(), direct.Digest())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), quietOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_StrictRejectsCycles(t *testing.T) {
	doc := []byte(`{
	  "A": {"gold": {"total": 100}, "from": ["B"]},
	  "B": {"gold": {"total": 50}, "from": ["A"]}
	}`)
	p := writeFile(t, "cyclic.json", doc)

	lenient, err := Load(p, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, lenient.Len())

	opts := quietOptions()
	opts.Strict = true
	_, err = Load(p, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "recipe cycle: A -> B -> A")
}

func TestSource_LoadsOnce(t *testing.T) {
	plain, err := os.ReadFile(filepath.Join("testdata", "items.json"))
	require.NoError(t, err)
	p := writeFile(t, "items.json", plain)

	src := NewSource(p, quietOptions())
	assert.Equal(t, p, src.Path())

	var wg sync.WaitGroup
	got := make([]*Catalog, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := src.Catalog()
			assert.NoError(t, err)
			got[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}

	require.NoError(t, os.Remove(p))
	again, err := src.Catalog()
	require.NoError(t, err)
	assert.Same(t, got[0], again, "catalog is not re-read after the first load")
}

func TestSource_Static(t *testing.T) {
	c := New(testDefs(), Options{})
	got, err := Static(c).Catalog()
	require.NoError(t, err)
	assert.Same(t, c, got)
}
