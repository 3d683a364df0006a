package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/bookworm/ids"
	"github.com/Konsultn-Engineering/bookworm/schema"
)

type Author struct {
	ID   int64  `db:"primary;auto"`
	Ref  string `db:"generator:testref"`
	Name string
	Bio  *string
}

type Shelf struct {
	Code  string `db:"primary"`
	Label string `db:"column:title"`
	Notes string `db:"-"`
}

func init() {
	ids.Register("testref", fixed("refid"))
}

func TestInsertModel(t *testing.T) {
	bio := "writes"
	first := &Author{Name: "Ann"}
	second := &Author{Ref: "keep", Name: "Bob", Bio: &bio}

	b := newTestBuilder().InsertModel(first, second)
	sql, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO `authors` (ref, name, bio) VALUES (:tokaa, :tokab, :tokac), (:tokad, :tokae, :tokaf);",
		sql)
	assert.Equal(t, "refid", first.Ref)
	assert.Equal(t, "keep", second.Ref)
	assert.Equal(t, "refid", b.BindingMap()[":tokaa"])
	assert.Equal(t, "Bob", b.BindingMap()[":tokae"])
	assert.Equal(t, &bio, b.BindingMap()[":tokaf"])
}

func TestInsertModelByValue(t *testing.T) {
	a := Author{Name: "Cy"}
	b := newTestBuilder().InsertModel(a)
	_, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, a.Ref, "values are not written back")
	assert.Equal(t, "refid", b.BindingMap()[":tokaa"])
}

func TestInsertModelErrors(t *testing.T) {
	_, err := newTestBuilder().InsertModel(&Author{}, &Shelf{}).Build()
	assert.ErrorContains(t, err, "InsertModel mixes")

	_, err = newTestBuilder().InsertModel(42).Build()
	assert.ErrorIs(t, err, schema.ErrNotStruct)
}

func TestSetModel(t *testing.T) {
	b := newTestBuilder().SetModel(&Shelf{Code: "A1", Label: "Classics", Notes: "x"})
	sql, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `shelves` SET `title` = :tokaa WHERE `code` = :tokab;", sql)
	assert.Equal(t, map[string]any{":tokaa": "Classics", ":tokab": "A1"}, b.BindingMap())
}

func TestSetModelWithoutKey(t *testing.T) {
	sql, err := newTestBuilder().SetModel(Shelf{Label: "Loose"}).Build()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `shelves` SET `title` = :tokaa;", sql)
}
