package record

import (
	"testing"
	"time"

	"github.com/pingcap/tidb/pkg/parser"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardemon/cdf/sqldb"
	"github.com/cleardemon/cdf/sqlval"
)

// Every statement the builders generate, once its placeholders are
// substituted, must be accepted by a real MySQL parser.
func TestGeneratedSQLParses(t *testing.T) {
	p := parser.New()
	parses := func(t *testing.T, statement string) {
		t.Helper()
		_, _, err := p.Parse(statement, "", "")
		assert.NoError(t, err, "statement does not parse: %s", statement)
	}

	r := New("widgets",
		NewIdentity(),
		NewString("Name"),
		NewInteger("Age"),
		NewFloat("Weight"),
		NewBool("Active"),
		NewTime("Seen"),
		NewData("Payload"),
	)
	r.SetInteger("Id", 3)
	r.SetString("Name", "it's a ?tricky? name")
	r.SetInteger("Age", 41)
	r.SetFloat("Weight", 12.25)
	r.SetBool("Active", true)
	r.SetTime("Seen", time.Date(2023, 2, 3, 4, 5, 6, 0, time.UTC))
	r.SetData("Payload", []byte("bin?data"))

	params := func(t *testing.T) []sqldb.Parameter {
		t.Helper()
		var out []sqldb.Parameter
		for _, col := range r.writableColumns() {
			out = append(out, sqldb.Parameter{Type: col.Type(), Value: col.Value()})
		}
		return out
	}

	t.Run("insert", func(t *testing.T) {
		statement, err := r.buildInsert(nil)
		require.NoError(t, err)
		final, err := sqldb.Substitute(statement, params(t))
		require.NoError(t, err)
		parses(t, final)
	})

	t.Run("update", func(t *testing.T) {
		statement, err := r.buildUpdate(nil)
		require.NoError(t, err)
		all := append(params(t), sqldb.Parameter{Type: sqlval.TypeInteger, Value: int64(3)})
		final, err := sqldb.Substitute(statement, all)
		require.NoError(t, err)
		parses(t, final)
	})

	t.Run("select with where and order", func(t *testing.T) {
		where := &Where{Conditions: []Condition{
			In("Name", "Red", "Blue"),
			Equal("Age", 41),
			Equal("Seen", nil),
		}}
		statement, whereParams, err := r.buildSelect(where, []Order{{Column: "Name", Ascending: true}}, nil)
		require.NoError(t, err)
		final, err := sqldb.Substitute(statement, whereParams)
		require.NoError(t, err)
		parses(t, final)
	})

	t.Run("delete", func(t *testing.T) {
		statement, whereParams, err := r.buildDelete(&Where{Conditions: []Condition{Equal("Age", 41)}}, nil)
		require.NoError(t, err)
		final, err := sqldb.Substitute(statement, whereParams)
		require.NoError(t, err)
		parses(t, final)
	})

	t.Run("null heavy insert", func(t *testing.T) {
		empty := New("widgets", NewIdentity(), NewString("Name"), NewTime("Seen"))
		statement, err := empty.buildInsert(nil)
		require.NoError(t, err)
		final, err := sqldb.Substitute(statement, []sqldb.Parameter{
			{Type: sqlval.TypeString, Value: nil},
			{Type: sqlval.TypeTimestamp, Value: time.Unix(0, 0)},
		})
		require.NoError(t, err)
		assert.Contains(t, final, "NULL")
		parses(t, final)
	})
}
