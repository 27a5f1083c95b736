package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Clean(t *testing.T) {
	c := New([]Def{
		{ID: "1036", TotalCost: 350},
		{ID: "3133", TotalCost: 1100, Children: []string{"1036", "1036"}},
	}, Options{})
	assert.NoError(t, Validate(c))
	assert.Empty(t, Cycles(c))
}

func TestValidate_UnknownComponent(t *testing.T) {
	c := New([]Def{
		{ID: "3133", TotalCost: 1100, Children: []string{"1036", "4040"}},
		{ID: "1036", TotalCost: 350},
	}, Options{})

	err := Validate(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "item 3133: unknown component 4040")
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name string
		defs []Def
		want [][]string
	}{
		{
			name: "two items",
			defs: []Def{
				{ID: "A", Children: []string{"B"}},
				{ID: "B", Children: []string{"A"}},
			},
			want: [][]string{{"A", "B", "A"}},
		},
		{
			name: "self reference",
			defs: []Def{{ID: "A", Children: []string{"A"}}},
			want: [][]string{{"A", "A"}},
		},
		{
			name: "cycle below an acyclic root",
			defs: []Def{
				{ID: "A", Children: []string{"B"}},
				{ID: "B", Children: []string{"C"}},
				{ID: "C", Children: []string{"B"}},
			},
			want: [][]string{{"B", "C", "B"}},
		},
		{
			name: "diamond is not a cycle",
			defs: []Def{
				{ID: "A", Children: []string{"B", "C"}},
				{ID: "B", Children: []string{"D"}},
				{ID: "C", Children: []string{"D"}},
				{ID: "D"},
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.defs, Options{})
			assert.Equal(t, tt.want, Cycles(c))
		})
	}
}
