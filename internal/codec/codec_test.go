package codec

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjh/bidwatch/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &t
}

func TestEncodeOmitsDefaults(t *testing.T) {
	assert.Empty(t, EncodeQuery(model.DefaultCriteria()))

	params := Encode(model.Criteria{NAICS: "541512"})
	assert.Equal(t, "541512", params.Get("naics"))
	assert.Len(t, params, 1, "only non-default fields should be encoded")
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		criteria model.Criteria
	}{
		{"defaults", model.DefaultCriteria()},
		{"single category", model.Criteria{NAICS: "541512"}},
		{"multi-valued fields", model.Criteria{
			SetAsides: []string{"8(a)", "WOSB"},
			Agencies:  []string{"GSA", "VA"},
			Keywords:  []string{"cloud", "zero trust"},
		}},
		{"relative window", model.Criteria{Due: model.RelativeWindow(30)}},
		{"relative window zero days", model.Criteria{Due: model.RelativeWindow(0)}},
		{"absolute range both bounds", model.Criteria{
			Due: model.AbsoluteRange(datePtr(2026, 9, 1), datePtr(2026, 9, 30)),
		}},
		{"absolute range start only", model.Criteria{
			Due: model.AbsoluteRange(datePtr(2026, 9, 1), nil),
		}},
		{"ceiling bounds", model.Criteria{
			CeilingMin: floatPtr(50000),
			CeilingMax: floatPtr(250000),
		}},
		{"everything", model.Criteria{
			NAICS:      "541512",
			Vehicle:    "GSA MAS",
			SetAsides:  []string{"SDVOSB"},
			Agencies:   []string{"DOD"},
			Due:        model.RelativeWindow(60),
			CeilingMin: floatPtr(100000),
			Keywords:   []string{"modernization"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := DecodeQuery(EncodeQuery(tt.criteria))
			assert.True(t, tt.criteria.Normalize().Equal(decoded),
				"round trip changed criteria: %q -> %+v", EncodeQuery(tt.criteria), decoded)
		})
	}
}

func TestDecodeDefaultsForAbsentKeys(t *testing.T) {
	criteria := DecodeQuery("")
	assert.True(t, criteria.IsZero())
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	criteria := DecodeQuery("naics=541512&utm_source=email&bogus=1")
	assert.Equal(t, "541512", criteria.NAICS)
	assert.Empty(t, criteria.Agencies)
}

func TestDecodeMalformedValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, c model.Criteria)
	}{
		{"bad relative days", "periodQuick=soon", func(t *testing.T, c model.Criteria) {
			assert.True(t, c.Due.IsZero())
		}},
		{"negative relative days", "periodQuick=-3", func(t *testing.T, c model.Criteria) {
			assert.True(t, c.Due.IsZero())
		}},
		{"bad start date keeps end", "periodStart=spring&periodEnd=2026-09-30", func(t *testing.T, c model.Criteria) {
			require.Equal(t, model.DueAbsolute, c.Due.Mode)
			assert.Nil(t, c.Due.Start)
			require.NotNil(t, c.Due.End)
		}},
		{"bad ceiling min keeps max", "ceilingMin=lots&ceilingMax=90000", func(t *testing.T, c model.Criteria) {
			assert.Nil(t, c.CeilingMin)
			require.NotNil(t, c.CeilingMax)
			assert.Equal(t, 90000.0, *c.CeilingMax)
		}},
		{"negative ceiling dropped", "ceilingMin=-100", func(t *testing.T, c model.Criteria) {
			assert.Nil(t, c.CeilingMin)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DecodeQuery(tt.query))
		})
	}
}

func TestDecodeDiscardsEmptyTokens(t *testing.T) {
	criteria := DecodeQuery("agency=GSA%2C%2CVA%2C&keywords=%2C")
	assert.Equal(t, []string{"GSA", "VA"}, criteria.Agencies)
	assert.Empty(t, criteria.Keywords)
}

func TestDecodeRelativeWinsOverAbsolute(t *testing.T) {
	criteria := DecodeQuery("periodQuick=14&periodStart=2026-09-01")
	assert.Equal(t, model.DueRelative, criteria.Due.Mode)
	assert.Equal(t, 14, criteria.Due.Days)
	assert.Nil(t, criteria.Due.Start)
}

func TestDecodeAcceptsLeadingQuestionMark(t *testing.T) {
	criteria := DecodeQuery("?vehicle=SEWP")
	assert.Equal(t, "SEWP", criteria.Vehicle)
}

func TestDecodeValues(t *testing.T) {
	params := url.Values{}
	params.Set("setAside", "8(a),HUBZone")
	criteria := Decode(params)
	assert.Equal(t, []string{"8(a)", "HUBZone"}, criteria.SetAsides)
}
