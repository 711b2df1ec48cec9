package calibration

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strip-analyzer/pkg/colorutil"
)

func TestBuiltinProductsValidate(t *testing.T) {
	for _, name := range ListProducts() {
		p := GetProduct(name)
		require.NotNil(t, p, "registered product %s must resolve", name)
		assert.NoError(t, p.Validate(), "product %s", name)
	}
}

func TestForTypeKeySets(t *testing.T) {
	six := ForType(Strip6in1)
	require.NotNil(t, six)
	assert.Equal(t, []string{
		FreeChlorine, PH, TotalAlkalinity, TotalChlorine, TotalHardness, CyanuricAcid,
	}, six.Keys())

	three := ForType(Strip3in1)
	require.NotNil(t, three)
	assert.Equal(t, []string{FreeChlorine, PH, TotalAlkalinity}, three.Keys())

	assert.Nil(t, ForType(StripType("9-in-1")))
}

func TestTableContiguity(t *testing.T) {
	// Every built-in table must have ascending, contiguous,
	// non-overlapping ranges. Validate enforces this; assert it
	// directly so a relaxed Validate does not slip through.
	for _, p := range []*Product{Pool6in1(), Pool3in1()} {
		for _, table := range p.Parameters {
			for i := 1; i < len(table.Entries); i++ {
				prev, cur := table.Entries[i-1], table.Entries[i]
				assert.Equal(t, prev.RangeHigh, cur.RangeLow,
					"%s entries %d/%d must be contiguous", table.Key, i-1, i)
				assert.Less(t, cur.RangeLow, cur.RangeHigh,
					"%s entry %d must have a positive-width range", table.Key, i)
			}
		}
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	ref := colorutil.RGB{R: 100, G: 100, B: 100}

	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "gap between ranges",
			entries: []Entry{
				{RangeLow: 0, RangeHigh: 1, Ref: ref, Status: StatusLow},
				{RangeLow: 2, RangeHigh: 3, Ref: ref, Status: StatusHigh},
			},
		},
		{
			name: "overlapping ranges",
			entries: []Entry{
				{RangeLow: 0, RangeHigh: 2, Ref: ref, Status: StatusLow},
				{RangeLow: 1, RangeHigh: 3, Ref: ref, Status: StatusHigh},
			},
		},
		{
			name: "empty range",
			entries: []Entry{
				{RangeLow: 0, RangeHigh: 0, Ref: ref, Status: StatusLow},
				{RangeLow: 0, RangeHigh: 1, Ref: ref, Status: StatusHigh},
			},
		},
		{
			name: "unknown status",
			entries: []Entry{
				{RangeLow: 0, RangeHigh: 1, Ref: ref, Status: Status("medium")},
				{RangeLow: 1, RangeHigh: 2, Ref: ref, Status: StatusHigh},
			},
		},
		{
			name: "single entry",
			entries: []Entry{
				{RangeLow: 0, RangeHigh: 1, Ref: ref, Status: StatusOK},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Table{Key: "test", Entries: tt.entries}
			assert.Error(t, table.Validate())
		})
	}
}

func TestStatusFor(t *testing.T) {
	table := phTable()

	assert.Equal(t, StatusLow, table.StatusFor(6.2))
	assert.Equal(t, StatusOK, table.StatusFor(7.0))
	assert.Equal(t, StatusOK, table.StatusFor(7.2), "boundary belongs to the upper range")
	assert.Equal(t, StatusHigh, table.StatusFor(8.0))
	assert.Equal(t, StatusHigh, table.StatusFor(9.5), "top band is open-ended above")
	assert.Equal(t, StatusLow, table.StatusFor(5.0), "below the bottom band clamps to it")
}

func TestEntryMidpoint(t *testing.T) {
	e := Entry{RangeLow: 6.8, RangeHigh: 7.2}
	assert.InDelta(t, 7.0, e.Midpoint(), 1e-9)
}

func TestProductSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")

	orig := Pool3in1()
	orig.ProductName = "custom-brand"
	require.NoError(t, orig.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig.ProductName, loaded.ProductName)
	assert.Equal(t, orig.Keys(), loaded.Keys())
	assert.Equal(t, orig.Parameters[0].Entries, loaded.Parameters[0].Entries)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")

	bad := &Product{
		ProductName: "bad",
		Type:        Strip3in1,
		Parameters: []Table{{
			Key: PH,
			Entries: []Entry{
				{RangeLow: 0, RangeHigh: 1, Status: StatusLow},
				{RangeLow: 5, RangeHigh: 6, Status: StatusHigh}, // gap
			},
		}},
	}
	require.NoError(t, bad.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
