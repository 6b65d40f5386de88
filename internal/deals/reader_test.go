package deals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

func TestPickValue(t *testing.T) {
	tests := []struct {
		name   string
		record contracts.RawRecord
		keys   []string
		want   any
		found  bool
	}{
		{"first alias wins", contracts.RawRecord{"a": "1", "b": "2"}, []string{"a", "b"}, "1", true},
		{"falls through missing", contracts.RawRecord{"b": "2"}, []string{"a", "b"}, "2", true},
		{"skips nil", contracts.RawRecord{"a": nil, "b": 3.0}, []string{"a", "b"}, 3.0, true},
		{"skips blank string", contracts.RawRecord{"a": "   ", "b": "x"}, []string{"a", "b"}, "x", true},
		{"zero number is a value", contracts.RawRecord{"a": 0.0}, []string{"a"}, 0.0, true},
		{"absent", contracts.RawRecord{"c": "1"}, []string{"a", "b"}, nil, false},
		{"nil record", nil, []string{"a"}, nil, false},
		{"no keys", contracts.RawRecord{"a": "1"}, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := PickValue(tt.record, tt.keys)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickString(t *testing.T) {
	record := contracts.RawRecord{
		"아파트":      "  운정힐스테이트 ",
		"dealAmount": json.Number("82500"),
		"floor":      12.0,
	}

	s, ok := PickString(record, Aliases[FieldComplexName])
	assert.True(t, ok)
	assert.Equal(t, "운정힐스테이트", s)

	s, ok = PickString(record, Aliases[FieldPrice])
	assert.True(t, ok)
	assert.Equal(t, "82500", s)

	s, ok = PickField(record, FieldFloor)
	assert.True(t, ok)
	assert.Equal(t, "12", s)

	_, ok = PickField(record, FieldRoadName)
	assert.False(t, ok)
}

func TestPickNumber(t *testing.T) {
	record := contracts.RawRecord{"거래금액": "82,500", "excluUseAr": json.Number("84.97")}

	assert.Equal(t, 82500.0, PickNumber(record, Aliases[FieldPrice]))
	assert.Equal(t, 84.97, PickNumber(record, Aliases[FieldArea]))
	assert.Equal(t, 0.0, PickNumber(record, Aliases[FieldDay]))
}

func TestAliasesCoverEveryField(t *testing.T) {
	fields := []Field{
		FieldArea, FieldPrice, FieldLawdCode, FieldYear, FieldMonth, FieldDay,
		FieldComplexName, FieldRegionName, FieldNeighborhood, FieldFloor,
		FieldTotalFloors, FieldSerial, FieldRoadName, FieldBuildYear,
		FieldSggCode, FieldUmdCode, FieldBonbun, FieldBubun,
	}
	for _, f := range fields {
		assert.NotEmpty(t, Aliases[f], "field %s has no aliases", f)
	}
}
