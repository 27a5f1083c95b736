package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() []Def {
	return []Def{
		{ID: "1036", Name: "Long Sword", TotalCost: 350},
		{ID: "1028", Name: "Ruby Crystal", TotalCost: 400},
		{ID: "3133", Name: "Caulfield's Warhammer", TotalCost: 1100, Children: []string{"1036", "1036"}},
		{ID: "3044", Name: "Phage", TotalCost: 1100, Children: []string{"1028", "1036"}},
		{ID: "3400", Name: "Your Cut", NotPurchasable: true},
		{ID: "3513", Name: "Eye of the Herald", Maps: map[string]bool{"11": false, "12": true}},
		{ID: "9000", Name: "Overpriced Parts", TotalCost: 500, Children: []string{"1036", "1028"}},
		{ID: "9001", Name: "Half Known", TotalCost: 1000, Children: []string{"1036", "4040"}},
	}
}

func TestNew_Lookup(t *testing.T) {
	c := New(testDefs(), Options{})

	assert.Equal(t, 8, c.Len())
	assert.Equal(t, DefaultMapID, c.MapID())

	it := c.Lookup("3133")
	require.NotNil(t, it)
	assert.Equal(t, "3133", it.ID())
	assert.Equal(t, "Caulfield's Warhammer", it.Name())
	assert.Equal(t, 1100, it.TotalCost())
	assert.Equal(t, []string{"1036", "1036"}, it.Children())
	assert.Equal(t, 2, it.NumChildren())
	assert.Equal(t, "1036", it.Child(1))
	assert.False(t, it.IsBase())

	assert.NotNil(t, c.Lookup(" 3133.0 "), "lookup normalizes ids")
	assert.Nil(t, c.Lookup("nonexistent-id"))
	assert.Nil(t, c.Lookup(""))

	var nilCatalog *Catalog
	assert.Nil(t, nilCatalog.Lookup("3133"))
}

func TestItem_ChildrenIsCopy(t *testing.T) {
	c := New(testDefs(), Options{})
	it := c.Lookup("3133")
	require.NotNil(t, it)

	kids := it.Children()
	kids[0] = "mutated"
	assert.Equal(t, "1036", it.Child(0))
}

func TestNew_DropsEmptyIDsAndClampsCost(t *testing.T) {
	c := New([]Def{
		{ID: "", TotalCost: 10},
		{ID: "0", TotalCost: 10},
		{ID: "42", TotalCost: -5, Children: []string{"", "7"}},
	}, Options{})

	assert.Equal(t, 1, c.Len())
	it := c.Lookup("42")
	require.NotNil(t, it)
	assert.Equal(t, 0, it.TotalCost())
	assert.Equal(t, []string{"7"}, it.Children())
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3006", want: "3006"},
		{in: " 3006 ", want: "3006"},
		{in: "3006.0", want: "3006"},
		{in: "3006.5", want: "3006.5"},
		{in: "1e3", want: "1000"},
		{in: "0", want: ""},
		{in: "0.0", want: ""},
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "nonexistent-id", want: "nonexistent-id"},
		{in: "Item.Name", want: "Item.Name"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeID(tt.in))
		})
	}
}

func TestIsPurchasable(t *testing.T) {
	sr := New(testDefs(), Options{})
	aram := New(testDefs(), Options{MapID: "12"})

	tests := []struct {
		name   string
		id     string
		onSR   bool
		onARAM bool
	}{
		{name: "plain item", id: "1036", onSR: true, onARAM: true},
		{name: "explicitly not purchasable", id: "3400", onSR: false, onARAM: false},
		{name: "excluded from SR only", id: "3513", onSR: false, onARAM: true},
		{name: "unknown", id: "4040", onSR: false, onARAM: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.onSR, sr.IsPurchasable(sr.Lookup(tt.id)))
			assert.Equal(t, tt.onARAM, aram.IsPurchasable(aram.Lookup(tt.id)))
		})
	}
}

func TestRecipeCost(t *testing.T) {
	c := New(append(testDefs(),
		Def{ID: "7000", TotalCost: 2500, Children: []string{"7001", "7002"}},
		Def{ID: "7001", TotalCost: 1200},
		Def{ID: "7002", TotalCost: 800},
	), Options{})

	tests := []struct {
		name string
		id   string
		want int
	}{
		{name: "markup over two children", id: "7000", want: 500},
		{name: "duplicate children both count", id: "3133", want: 400},
		{name: "base item costs its total", id: "1036", want: 350},
		{name: "children worth more than the item", id: "9000", want: 0},
		{name: "unknown child contributes nothing", id: "9001", want: 650},
		{name: "not purchasable", id: "3400", want: 0},
		{name: "unknown item", id: "4040", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.RecipeCost(c.Lookup(tt.id)))
		})
	}
}

func TestIDs_Sorted(t *testing.T) {
	c := New(testDefs(), Options{})
	assert.Equal(t, []string{"1028", "1036", "3044", "3133", "3400", "3513", "9000", "9001"}, c.IDs())
}

func TestItem_Def(t *testing.T) {
	c := New(testDefs(), Options{})
	d := c.Lookup("3513").Def()

	assert.Equal(t, "3513", d.ID)
	assert.False(t, d.NotPurchasable)
	assert.Equal(t, map[string]bool{"11": false, "12": true}, d.Maps)
	assert.True(t, c.Lookup("3400").Def().NotPurchasable)
}
