package complexmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Lookup(t *testing.T) {
	table := Builtin()
	assert.Equal(t, 6, table.Len())

	meta, ok := table.Lookup("가람마을9단지 힐스테이트운정")
	require.True(t, ok)
	assert.Equal(t, 930, meta.Households)
	assert.Equal(t, 2019, meta.BuildYear)
	assert.Equal(t, []string{"84"}, meta.AreaTags)

	meta, ok = table.Lookup("한빛마을12단지 E편한세상 운정어반프라임")
	require.True(t, ok)
	assert.Equal(t, 1224, meta.Households)

	_, ok = table.Lookup("")
	assert.False(t, ok)
	_, ok = table.Lookup("타워팰리스")
	assert.False(t, ok)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	table := Builtin()

	meta, ok := table.Lookup("세양에이리")
	require.True(t, ok)
	meta.AreaTags[0] = "84"

	again, _ := table.Lookup("세양에이리")
	assert.Equal(t, []string{"59"}, again.AreaTags)
}

func TestLoad_EmptyPathIsBuiltin(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Builtin().Len(), table.Len())
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complexes.yaml")
	yml := `
complexes:
  - name: 세양 에이리
    households: 720
    station_distance: 야당역 도보 20분
    build_year: 2017
    total_floors: 25
    area_tags: ["59", "84"]
  - name: 운정 신도시 아이파크
    households: 3042
    area_tags: ["84"]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())

	meta, ok := table.Lookup("세양에이리")
	require.True(t, ok)
	assert.Equal(t, 720, meta.Households)
	assert.Equal(t, []string{"59", "84"}, meta.AreaTags)

	meta, ok = table.Lookup("운정신도시아이파크")
	require.True(t, ok)
	assert.Equal(t, 3042, meta.Households)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"unknown field", "complexes:\n  - name: a\n    househods: 1\n"},
		{"missing name", "complexes:\n  - households: 1\n"},
		{"bad tag", "complexes:\n  - name: a\n    area_tags: [\"102\"]\n"},
		{"negative", "complexes:\n  - name: a\n    households: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
