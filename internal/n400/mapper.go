package n400

import (
	"strconv"

	"github.com/zed-charania/Meridian/internal/intake"
)

// Map translates an intake record into template field values. It is pure:
// the same record always yields the same Fields, and a key that is absent or
// empty never produces a field.
func Map(rec intake.Record) Fields {
	out := make(Fields)
	if rec == nil {
		return out
	}

	mapAlienNumber(rec, out)
	mapEligibility(rec, out)
	mapNames(rec, out)
	mapPersonal(rec, out)
	mapResidence(rec, out)
	mapMailing(rec, out)
	priorAddressGroup.apply(rec, out)
	mapBiographic(rec, out)
	mapMarital(rec, out)
	mapChildren(rec, out)
	employmentGroup.apply(rec, out)
	tripsGroup.apply(rec, out)
	for _, q := range backgroundQuestions {
		q.apply(rec, out)
	}
	mapContact(rec, out)
	mapInterpreter(rec, out)
	mapPreparer(rec, out)
	additionalInformationGroup.apply(rec, out)

	return out
}

func (c choice) apply(rec intake.Record, out Fields) (string, bool) {
	v := rec.Lower(c.key)
	opt, ok := c.options[v]
	if !ok {
		return v, false
	}
	out.setOn(opt.field, opt.token)
	return v, true
}

func (q question) apply(rec intake.Record, out Fields) string {
	return q.set(rec.String(q.key), out)
}

func (q question) set(value string, out Fields) string {
	yesIdx, noIdx := q.positions()
	yes, no := q.tokens()
	a := answer(value)
	switch a {
	case "yes":
		out.setOn(indexed(q.base, yesIdx), yes)
	case "no":
		out.setOn(indexed(q.base, noIdx), no)
	}
	return a
}

func (t text) apply(rec intake.Record, out Fields) {
	v := rec.String(t.key)
	if t.date {
		v = FormatDate(v)
	}
	out.setText(t.field, v)
}

func applyTexts(rec intake.Record, out Fields, texts []text) {
	for _, t := range texts {
		t.apply(rec, out)
	}
}

func indexed(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

func mapAlienNumber(rec intake.Record, out Fields) {
	a := CleanIdentifier(rec.String("a_number"))
	if a == "" {
		return
	}
	for _, field := range AlienNumberFields {
		out.setText(field, a)
	}
}

func mapEligibility(rec intake.Record, out Fields) {
	basis, _ := eligibilityChoice.apply(rec, out)
	if EligibilityBasis(basis) == EligibilityOther {
		out.setText(otherBasisReasonField, rec.String("other_basis_reason"))
	}
}

func mapNames(rec intake.Record, out Fields) {
	applyTexts(rec, out, nameFields)
	if answer(rec.String("has_used_other_names")) == "yes" {
		otherNamesGroup.apply(rec, out)
	}
	if nameChangeQuestion.apply(rec, out) == "yes" {
		applyTexts(rec, out, newNameFields)
	}
}

func mapPersonal(rec intake.Record, out Fields) {
	applyTexts(rec, out, personalFields)
	genderChoice.apply(rec, out)
	for _, q := range personalQuestions {
		q.apply(rec, out)
	}
	out.setText(ssnField, CleanIdentifier(rec.String("ssn")))
}

func mapResidence(rec intake.Record, out Fields) {
	applyTexts(rec, out, residenceFields)
	unitChoice.apply(rec, out)

	if state := rec.String("state"); state != "" {
		out.setText(residenceStateField, residenceState(state))
	}
	out.setText(residenceFromField, FormatDate(rec.String("residence_from")))
	if to := rec.String("residence_to"); !meansPresent(to) {
		out.setText(residenceToField, FormatDate(to))
	}

	for _, key := range residenceKeys {
		if rec.Has(key) {
			out.setText(residenceCountryField, ResidenceCountry)
			break
		}
	}
}

func mapMailing(rec intake.Record, out Fields) {
	if answer(rec.String("mailing_same_as_residence")) != "no" {
		return
	}
	mailingUnitChoice.apply(rec, out)
	applyTexts(rec, out, mailingFields)
}

func mapBiographic(rec intake.Record, out Fields) {
	ethnicityChoice.apply(rec, out)
	raceChoice.apply(rec, out)
	applyTexts(rec, out, heightFields)
	if w := rec.String("weight"); w != "" {
		for i, digit := range SplitWeight(w) {
			out.setText(weightFields[i], digit)
		}
	}
	eyeChoice.apply(rec, out)
	hairChoice.apply(rec, out)
}

func mapMarital(rec intake.Record, out Fields) {
	status, _ := maritalChoice.apply(rec, out)
	spouseMilitaryQuestion.apply(rec, out)
	timesMarriedField.apply(rec, out)

	if MaritalStatus(status) != Married {
		return
	}
	applyTexts(rec, out, spouseFields)
	spouseAddressQuestion.apply(rec, out)
	if spouseCitizenByBirthQuestion.apply(rec, out) == "no" {
		out.setText(spouseBecameCitizen, FormatDate(rec.String("spouse_date_became_citizen")))
	}
	applyTexts(rec, out, spouseContinuedFields)
}

func mapChildren(rec intake.Record, out Fields) {
	totalChildrenField.apply(rec, out)
	childrenGroup.apply(rec, out)

	fallback := rec.String("providing_support_for_children")
	for i, child := range childrenGroup.rows(rec) {
		v := fallback
		if v == "" {
			v = child.String("support")
		}
		childSupportQuestions[i].set(v, out)
	}
}

func mapContact(rec intake.Record, out Fields) {
	applyTexts(rec, out, contactFields)
	feeReductionQuestion.apply(rec, out)
	headOfHouseholdQuestion.apply(rec, out)
	applyTexts(rec, out, householdFields)
}

func mapInterpreter(rec intake.Record, out Fields) {
	if answer(rec.String("used_interpreter")) == "yes" {
		applyTexts(rec, out, interpreterFields)
	}
}

func mapPreparer(rec intake.Record, out Fields) {
	if answer(rec.String("used_preparer")) == "yes" {
		applyTexts(rec, out, preparerFields)
	}
}
