package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
version: "1"
name: reseller-admin
screens:
  - kind: apis
    page_size: 5
    columns:
      - field: id
        kind: numeric
      - field: name
      - field: exchange_id
        kind: lookup
        title: Exchange
    searchable: [name]
    filters: [active]
  - kind: users
    columns:
      - field: id
        kind: numeric
      - field: username
    default_sort:
      field: id
      direction: asc
`

func TestDecodeScreenManifest(t *testing.T) {
	doc, err := DecodeScreenManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, ManifestVersion, doc.Version)
	assert.Equal(t, "reseller-admin", doc.Name)
	require.Len(t, doc.Screens, 2)

	apis := doc.Screens[0]
	assert.Equal(t, EntityKind("apis"), apis.Kind)
	assert.Equal(t, 5, apis.PageSize)
	assert.Equal(t, []string{"name"}, apis.Searchable)

	users := doc.Screens[1]
	assert.Equal(t, DefaultPageSize, users.PageSize)
	assert.Equal(t, "id", users.DefaultSort.Field)
}

func TestDecodeScreenManifestRejectsEmpty(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest is empty")
}

func TestDecodeScreenManifestRejectsUnknownField(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
widgets: []
screens:
  - kind: apis
    columns:
      - field: id
`))
	require.Error(t, err)
}

func TestManifestSchemaRejectsUnknownKind(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
screens:
  - kind: invoices
    columns:
      - field: id
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

func TestManifestSchemaRejectsUnknownComparator(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
screens:
  - kind: apis
    columns:
      - field: id
        kind: fuzzy
`))
	require.Error(t, err)
}

func TestManifestRejectsDuplicateKinds(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
screens:
  - kind: apis
    columns:
      - field: id
  - kind: apis
    columns:
      - field: id
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates screen kind apis")
}

func TestManifestRejectsDanglingDefaultSort(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
screens:
  - kind: apis
    columns:
      - field: id
    default_sort:
      field: created_at
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `default sort references unknown column "created_at"`)
}

func TestManifestRejectsDanglingSearchable(t *testing.T) {
	_, err := DecodeScreenManifest(strings.NewReader(`
version: "1"
screens:
  - kind: apis
    columns:
      - field: id
    searchable: [name]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `searchable field "name" is not a column`)
}

func TestColumnTitle(t *testing.T) {
	assert.Equal(t, "Exchange Id", ColumnTitle("exchange_id"))
	assert.Equal(t, "Name", ColumnTitle("name"))
}

func TestDisplayTitlePrefersDeclared(t *testing.T) {
	assert.Equal(t, "Exchange", ColumnDefinition{Field: "exchange_id", Title: "Exchange"}.DisplayTitle())
	assert.Equal(t, "Price Usd", ColumnDefinition{Field: "price_usd"}.DisplayTitle())
}

func TestCompareKind(t *testing.T) {
	kind, err := ColumnDefinition{Field: "id", Kind: "numeric"}.CompareKind()
	require.NoError(t, err)
	assert.Equal(t, CompareNumeric, kind)

	kind, err = ColumnDefinition{Field: "name"}.CompareKind()
	require.NoError(t, err)
	assert.Equal(t, CompareLexical, kind)

	_, err = ColumnDefinition{Field: "name", Kind: "fuzzy"}.CompareKind()
	require.Error(t, err)
}

func TestDefaultScreenManifestValidates(t *testing.T) {
	doc := DefaultScreenManifest()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Screens, 7)
}
