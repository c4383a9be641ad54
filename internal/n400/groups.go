package n400

import (
	"fmt"
	"strings"

	"github.com/zed-charania/Meridian/internal/intake"
)

// column is one field of a repeated-group row. pattern takes the row's
// ordinal (plus the group offset). first, when set, replaces the pattern for
// ordinal 1; skipFirst leaves ordinal 1 without a field at all.
type column struct {
	attrs     []string // first non-empty wins; joined is used instead when set
	joined    []string // attributes joined with a space
	pattern   string
	first     string
	skipFirst bool
	date      bool

	// fallback is a top-level scalar used for ordinal 1, fallbackEach a
	// top-level scalar pattern used for every ordinal. Either wins over the
	// list element when non-empty.
	fallback     string
	fallbackEach string
}

func (c column) field(ordinal, offset int) string {
	if ordinal == 1 && c.first != "" {
		return c.first
	}
	return fmt.Sprintf(c.pattern, ordinal+offset)
}

func (c column) value(rec, row intake.Record, ordinal int) string {
	var v string
	switch {
	case c.fallbackEach != "":
		v = rec.String(fmt.Sprintf(c.fallbackEach, ordinal))
	case c.fallback != "" && ordinal == 1:
		v = rec.String(c.fallback)
	}
	if v != "" {
		return v
	}

	if len(c.joined) > 0 {
		parts := make([]string, 0, len(c.joined))
		for _, attr := range c.joined {
			parts = append(parts, row.String(attr))
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	}
	for _, attr := range c.attrs {
		if v := row.String(attr); v != "" {
			return v
		}
	}
	return ""
}

// group is a repeated section of the form. Rows past limit are dropped.
// minRows rows are always evaluated so scalar fallbacks apply even when the
// list itself is absent.
type group struct {
	key     string
	limit   int
	minRows int
	offset  int
	columns []column
}

func (g group) rows(rec intake.Record) []intake.Record {
	list := rec.List(g.key)
	if len(list) > g.limit {
		list = list[:g.limit]
	}
	for len(list) < g.minRows {
		list = append(list, intake.Record{})
	}
	return list
}

func (g group) apply(rec intake.Record, out Fields) {
	for i, row := range g.rows(rec) {
		ordinal := i + 1
		for _, c := range g.columns {
			if ordinal == 1 && c.skipFirst {
				continue
			}
			v := c.value(rec, row, ordinal)
			if v == "" {
				continue
			}
			if c.date {
				v = FormatDate(v)
			}
			out.setText(c.field(ordinal, g.offset), v)
		}
	}
}

var otherNamesGroup = group{
	key:     "other_names",
	limit:   2,
	minRows: 2,
	columns: []column{
		{attrs: []string{"family_name"}, fallbackEach: "other_last_name_%d", pattern: page1 + "Line2_FamilyName%d[0]"},
		{attrs: []string{"given_name"}, fallbackEach: "other_first_name_%d", pattern: page1 + "Line3_GivenName%d[0]"},
		{attrs: []string{"middle_name"}, fallbackEach: "other_middle_name_%d", pattern: page1 + "Line3_MiddleName%d[0]"},
	},
}

var priorAddressGroup = group{
	key:   "residence_addresses",
	limit: 3,
	columns: []column{
		{attrs: []string{"street_address"}, pattern: page3 + "P4_Line3_PhysicalAddress%d[0]"},
		{attrs: []string{"city"}, pattern: page3 + "P4_Line3_CityTown%d[0]"},
		{attrs: []string{"state", "province"}, pattern: page3 + "P4_Line3_State%d[0]"},
		{attrs: []string{"zip_code", "postal_code"}, pattern: page3 + "P4_Line3_ZipCode%d[0]"},
		{attrs: []string{"country"}, pattern: page3 + "P4_Line3_Country%d[0]"},
		{attrs: []string{"dates_from"}, pattern: page3 + "P4_Line3_From%d[0]", date: true},
		{attrs: []string{"dates_to"}, pattern: page3 + "P4_Line3_To%d[0]", first: page3 + "P4_Line3_From1[1]", date: true},
	},
}

// The employment table reuses P7_ names from an older form revision; only
// the employer column is P5_. The first row has no "to" box.
var employmentGroup = group{
	key:     "employment_history",
	limit:   3,
	minRows: 1,
	columns: []column{
		{attrs: []string{"employer_or_school"}, fallback: "current_employer", pattern: page5 + "P5_EmployerName%d[0]"},
		{attrs: []string{"occupation_or_field"}, fallback: "current_occupation", pattern: page5 + "P7_OccupationFieldStudy%d[2]"},
		{attrs: []string{"city"}, fallback: "employer_city", pattern: page5 + "P7_City%d[0]"},
		{attrs: []string{"state"}, fallback: "employer_state", pattern: page5 + "P7_State%d[0]"},
		{attrs: []string{"zip_code"}, pattern: page5 + "P7_ZipCode%d[0]"},
		{attrs: []string{"country"}, pattern: page5 + "P7_Country%d[0]"},
		{attrs: []string{"dates_from"}, fallback: "employment_from", pattern: page5 + "P7_From%d[1]", date: true},
		{attrs: []string{"dates_to"}, pattern: page5 + "P7_To%d[0]", skipFirst: true, date: true},
	},
}

var childrenGroup = group{
	key:   "children",
	limit: 3,
	columns: []column{
		{joined: []string{"first_name", "last_name"}, pattern: page5 + "P7_EmployerName%d[0]"},
		{attrs: []string{"date_of_birth"}, pattern: page5 + "P7_From%d[0]", date: true},
		{attrs: []string{"residence"}, pattern: page5 + "P7_OccupationFieldStudy%d[0]"},
		{attrs: []string{"relationship"}, pattern: page5 + "P7_OccupationFieldStudy%d[1]"},
	},
}

var tripsGroup = group{
	key:   "trips",
	limit: 6,
	columns: []column{
		{attrs: []string{"date_left_us"}, pattern: page6 + "P8_Line1_DateLeft%d[0]", date: true},
		{attrs: []string{"date_returned_us"}, pattern: page6 + "P8_Line1_DateReturn%d[0]", date: true},
		{attrs: []string{"countries_traveled"}, pattern: page6 + "P8_Line1_Countries%d[0]", first: page6 + "P9_Line1_Countries1[0]"},
	},
}

// Additional-information rows start at line 3 of Part 14.
var additionalInformationGroup = group{
	key:    "additional_information",
	limit:  4,
	offset: 2,
	columns: []column{
		{attrs: []string{"page_number"}, pattern: page13 + "P11_Line%dA[0]"},
		{attrs: []string{"part_number"}, pattern: page13 + "P11_Line%dB[0]"},
		{attrs: []string{"item_number"}, pattern: page13 + "P11_Line%dC[0]"},
		{attrs: []string{"explanation"}, pattern: page13 + "P11_Line%dD[0]"},
	},
}
