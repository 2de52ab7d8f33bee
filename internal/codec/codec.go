// Package codec maps filter criteria to and from a flat query-string
// encoding, the representation used for shareable URLs.
//
// Encoding omits every field still at its "any" default, so an empty
// criteria value encodes to an empty string. Decoding is forgiving: unknown
// keys are ignored and malformed values fall back to that field's default,
// never to an error.
package codec

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mattjh/bidwatch/internal/model"
)

// Query parameter names. These match the web tool this replaces so existing
// share links keep their meaning.
const (
	keyNAICS       = "naics"
	keySetAside    = "setAside"
	keyVehicle     = "vehicle"
	keyAgency      = "agency"
	keyPeriodQuick = "periodQuick"
	keyPeriodStart = "periodStart"
	keyPeriodEnd   = "periodEnd"
	keyCeilingMin  = "ceilingMin"
	keyCeilingMax  = "ceilingMax"
	keyKeywords    = "keywords"
)

const dateLayout = "2006-01-02"

// Encode converts criteria into query parameters, omitting defaults.
func Encode(criteria model.Criteria) url.Values {
	params := url.Values{}

	if criteria.NAICS != "" {
		params.Set(keyNAICS, criteria.NAICS)
	}
	if len(criteria.SetAsides) > 0 {
		params.Set(keySetAside, strings.Join(criteria.SetAsides, ","))
	}
	if criteria.Vehicle != "" {
		params.Set(keyVehicle, criteria.Vehicle)
	}
	if len(criteria.Agencies) > 0 {
		params.Set(keyAgency, strings.Join(criteria.Agencies, ","))
	}

	switch criteria.Due.Mode {
	case model.DueRelative:
		params.Set(keyPeriodQuick, strconv.Itoa(criteria.Due.Days))
	case model.DueAbsolute:
		if criteria.Due.Start != nil {
			params.Set(keyPeriodStart, criteria.Due.Start.Format(dateLayout))
		}
		if criteria.Due.End != nil {
			params.Set(keyPeriodEnd, criteria.Due.End.Format(dateLayout))
		}
	case model.DueAny:
	}

	if criteria.CeilingMin != nil {
		params.Set(keyCeilingMin, formatAmount(*criteria.CeilingMin))
	}
	if criteria.CeilingMax != nil {
		params.Set(keyCeilingMax, formatAmount(*criteria.CeilingMax))
	}
	if len(criteria.Keywords) > 0 {
		params.Set(keyKeywords, strings.Join(criteria.Keywords, ","))
	}

	return params
}

// EncodeQuery renders criteria as a URL query string without the leading "?".
func EncodeQuery(criteria model.Criteria) string {
	return Encode(criteria).Encode()
}

// Decode converts query parameters back into criteria. Absent keys resolve
// to their defaults. When both relative and absolute period keys are present
// the relative window wins, matching the predicate's precedence.
func Decode(params url.Values) model.Criteria {
	criteria := model.Criteria{
		NAICS:     params.Get(keyNAICS),
		Vehicle:   params.Get(keyVehicle),
		SetAsides: splitList(params.Get(keySetAside)),
		Agencies:  splitList(params.Get(keyAgency)),
		Keywords:  splitList(params.Get(keyKeywords)),
	}

	if days, ok := parseDays(params.Get(keyPeriodQuick)); ok {
		criteria.Due = model.RelativeWindow(days)
	} else {
		start := parseDate(params.Get(keyPeriodStart))
		end := parseDate(params.Get(keyPeriodEnd))
		criteria.Due = model.AbsoluteRange(start, end)
	}

	criteria.CeilingMin = parseAmount(params.Get(keyCeilingMin))
	criteria.CeilingMax = parseAmount(params.Get(keyCeilingMax))

	return criteria.Normalize()
}

// DecodeQuery parses a raw query string (with or without a leading "?").
// Unparseable input yields the default criteria.
func DecodeQuery(query string) model.Criteria {
	query = strings.TrimPrefix(query, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		return model.DefaultCriteria()
	}
	return Decode(params)
}

// splitList splits a comma-joined value, discarding empty tokens. An empty
// input is indistinguishable from an absent field.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func parseDays(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 0 {
		return 0, false
	}
	return days, true
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func parseAmount(value string) *float64 {
	if value == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || amount < 0 {
		return nil
	}
	return &amount
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
