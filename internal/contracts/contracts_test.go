package contracts

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyType(t *testing.T) {
	pt, err := ParsePropertyType(" Officetel ")
	require.NoError(t, err)
	assert.Equal(t, PropertyOfficetel, pt)

	_, err = ParsePropertyType("villa")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDealQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   DealQuery
		wantErr bool
	}{
		{"valid", DealQuery{"41480", "202501", PropertyApartment}, false},
		{"short region", DealQuery{"4148", "202501", PropertyApartment}, true},
		{"month 13", DealQuery{"41480", "202513", PropertyApartment}, true},
		{"dashed month", DealQuery{"41480", "2025-01", PropertyApartment}, true},
		{"unknown type", DealQuery{"41480", "202501", "villa"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2025, 1, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"01/05/2025"`), &back))
}

func TestDeal_YearMonthAndLocation(t *testing.T) {
	d := Deal{Year: 2025, Month: 3, RegionName: "목동동", ComplexName: "운정힐스테이트", RoadName: "해올2로"}
	assert.Equal(t, "2025-03", d.YearMonth())
	assert.Equal(t, "목동동운정힐스테이트해올2로", d.Location())
}

func TestUpstreamError_Unwrap(t *testing.T) {
	err := NewUpstreamError("molit", ErrUnparsablePayload, "content-type %s", "text/html")

	assert.True(t, errors.Is(err, ErrUnparsablePayload))
	assert.False(t, errors.Is(err, ErrNoUpstreamRows))
	assert.Equal(t, "molit: upstream payload unparsable: content-type text/html", err.Error())

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "molit", upstream.Source)
}

func TestLookupRegion(t *testing.T) {
	r, ok := LookupRegion("41480")
	require.True(t, ok)
	assert.Equal(t, "파주시", r.ShortLabel)

	_, ok = LookupRegion("99999")
	assert.False(t, ok)
}
