package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardemon/cdf/sqlval"
)

func TestBuildInsert(t *testing.T) {
	r := widgetRecord()
	r.SetString("Name", "abc")
	r.SetInteger("Age", 5)

	t.Run("identity excluded from column list", func(t *testing.T) {
		statement, err := r.buildInsert(nil)
		require.NoError(t, err)
		assert.Equal(t, "insert into `widgets` (`Name`,`Age`) values (?,?)", statement)
	})

	t.Run("explicit table override", func(t *testing.T) {
		statement, err := r.buildInsert([]string{"other"})
		require.NoError(t, err)
		assert.Equal(t, "insert into `other` (`Name`,`Age`) values (?,?)", statement)
	})

	t.Run("no table configured", func(t *testing.T) {
		bare := New("", NewString("A"))
		_, err := bare.buildInsert(nil)
		assert.ErrorIs(t, err, ErrNoTable)
	})

	t.Run("no writable columns", func(t *testing.T) {
		bare := New("t", NewIdentity())
		_, err := bare.buildInsert(nil)
		assert.ErrorIs(t, err, ErrNoColumns)
	})
}

func TestBuildUpdate(t *testing.T) {
	r := widgetRecord()
	r.SetString("Name", "abc")

	t.Run("requires identity value", func(t *testing.T) {
		_, err := r.buildUpdate(nil)
		assert.ErrorIs(t, err, ErrNoIdentity)
	})

	t.Run("predicates on identity", func(t *testing.T) {
		r.SetInteger("Id", 7)
		statement, err := r.buildUpdate(nil)
		require.NoError(t, err)
		assert.Equal(t, "update `widgets` set `Name`=?,`Age`=? where `Id`=?", statement)
	})

	t.Run("no identity column declared", func(t *testing.T) {
		bare := New("t", NewString("A"))
		_, err := bare.buildUpdate(nil)
		assert.ErrorIs(t, err, ErrNoIdentity)
	})
}

func TestBuildSelect(t *testing.T) {
	r := widgetRecord()

	t.Run("plain select lists declared columns", func(t *testing.T) {
		statement, params, err := r.buildSelect(nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "select `Id`,`Name`,`Age` from `widgets`", statement)
		assert.Empty(t, params)
	})

	t.Run("multiple values group with or", func(t *testing.T) {
		where := &Where{Conditions: []Condition{In("Colour", "Red", "Blue")}}
		statement, params, err := r.buildSelect(where, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "select `Id`,`Name`,`Age` from `widgets` where (`Colour`=? OR `Colour`=?)", statement)
		require.Len(t, params, 2)
		assert.Equal(t, sqlval.TypeString, params[0].Type)
	})

	t.Run("distinct columns join with and", func(t *testing.T) {
		where := &Where{Conditions: []Condition{Equal("A", 1), Equal("B", 2)}}
		statement, params, err := r.buildSelect(where, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "select `Id`,`Name`,`Age` from `widgets` where `A`=? AND `B`=?", statement)
		assert.Len(t, params, 2)
	})

	t.Run("nil value becomes is null", func(t *testing.T) {
		where := &Where{Conditions: []Condition{Equal("Deleted", nil)}}
		statement, params, err := r.buildSelect(where, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "select `Id`,`Name`,`Age` from `widgets` where `Deleted` IS NULL", statement)
		assert.Empty(t, params)
	})

	t.Run("ordering", func(t *testing.T) {
		statement, _, err := r.buildSelect(nil, []Order{{Column: "Name", Ascending: true}, {Column: "Age"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "select `Id`,`Name`,`Age` from `widgets` order by `Name` asc,`Age` desc", statement)
	})

	t.Run("declared group operator", func(t *testing.T) {
		where := &Where{Group: OpAnd, Conditions: []Condition{In("Flag", true, false)}}
		statement, _, err := r.buildSelect(where, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, statement, "(`Flag`=? AND `Flag`=?)")
	})

	t.Run("bad where value type", func(t *testing.T) {
		where := &Where{Conditions: []Condition{Equal("A", struct{}{})}}
		_, _, err := r.buildSelect(where, nil, nil)
		assert.Error(t, err)
	})
}

func TestBuildDelete(t *testing.T) {
	r := widgetRecord()

	t.Run("with where clause", func(t *testing.T) {
		statement, params, err := r.buildDelete(&Where{Conditions: []Condition{Equal("Age", 5)}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "delete from `widgets` where `Age`=?", statement)
		assert.Len(t, params, 1)
	})

	t.Run("without where clause", func(t *testing.T) {
		statement, params, err := r.buildDelete(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "delete from `widgets`", statement)
		assert.Empty(t, params)
	})
}

func TestWhereEqual(t *testing.T) {
	w := WhereEqual(map[string]any{
		"B":      2,
		"A":      1,
		"Colour": []any{"Red", "Blue"},
	})
	require.Len(t, w.Conditions, 3)
	// Map input is emitted in sorted column order.
	assert.Equal(t, "A", w.Conditions[0].Column)
	assert.Equal(t, "B", w.Conditions[1].Column)
	assert.Equal(t, "Colour", w.Conditions[2].Column)
	assert.Len(t, w.Conditions[2].Values, 2)
}
