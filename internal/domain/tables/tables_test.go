package tables

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	random, err := r.Lookup("table1")
	require.NoError(t, err)
	assert.Equal(t, "t_random", random.BackendTable)
	assert.Equal(t, []string{"random_num", "random_float", "md5"}, random.ColumnNames())
	assert.Equal(t, map[string]string{"0": "random_num", "1": "random_float", "2": "md5"}, random.IndexMap)

	data, err := r.Lookup("table2")
	require.NoError(t, err)
	assert.Equal(t, "t_data", data.BackendTable)
	assert.Equal(t, []string{"my_date", "my_data"}, data.ColumnNames())

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "table1", all[0].ShortName)
	assert.Equal(t, "table2", all[1].ShortName)
}

func TestRegistryLookup_InvalidTable(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"", "table3", "t_random", "TABLE1"} {
		d, err := r.Lookup(name)
		assert.Nil(t, d)
		require.Error(t, err, name)
		assert.True(t, errors.IsInvalidTable(err))
	}
}

func TestIndexMapIsContiguous(t *testing.T) {
	for _, d := range DefaultRegistry().All() {
		require.Len(t, d.IndexMap, len(d.Columns))
		for i, col := range d.Columns {
			name, err := d.SortColumn(string(rune('0' + i)))
			require.NoError(t, err)
			assert.Equal(t, col.Name, name)
		}
	}
}

func TestSortColumn_Unknown(t *testing.T) {
	d, err := DefaultRegistry().Lookup("table2")
	require.NoError(t, err)

	_, err = d.SortColumn("2")
	require.Error(t, err)
	assert.Equal(t, errors.ReasonUnknownSortColumn, errors.ReasonOf(err))
}

func TestColumnDefault(t *testing.T) {
	assert.Equal(t, int64(0), Column{Type: constants.ColumnTypeInt}.Default())
	assert.Equal(t, float64(0), Column{Type: constants.ColumnTypeFloat}.Default())
	assert.Equal(t, "N/A", Column{Type: constants.ColumnTypeText}.Default())
}

func TestRecordMarshalJSON_KeepsColumnOrder(t *testing.T) {
	d, err := DefaultRegistry().Lookup("table1")
	require.NoError(t, err)

	rec := Record{Columns: d.Columns, Values: []interface{}{int64(42), 1.5, "abc"}}
	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"random_num":42,"random_float":1.5,"md5":"abc"}`, string(out))

	page, err := json.Marshal([]Record{rec})
	require.NoError(t, err)
	assert.Equal(t, `[{"random_num":42,"random_float":1.5,"md5":"abc"}]`, string(page))
}

func TestRecordMarshalJSON_NonFiniteFloats(t *testing.T) {
	d, err := DefaultRegistry().Lookup("table1")
	require.NoError(t, err)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		rec := Record{Columns: d.Columns, Values: []interface{}{int64(1), f, "abc"}}
		out, err := json.Marshal([]Record{rec})
		require.NoError(t, err, f)
		assert.Equal(t, `[{"random_num":1,"random_float":null,"md5":"abc"}]`, string(out))
	}
}

func TestRecordStrings(t *testing.T) {
	d, err := DefaultRegistry().Lookup("table1")
	require.NoError(t, err)

	rec := Record{Columns: d.Columns, Values: []interface{}{int64(-7), 0.25, "N/A"}}
	assert.Equal(t, []string{"-7", "0.25", "N/A"}, rec.Strings())

	v, ok := rec.Get("md5")
	assert.True(t, ok)
	assert.Equal(t, "N/A", v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}
