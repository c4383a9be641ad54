package n400

// Template subform prefixes, one per printed page.
const (
	page1  = "form1[0].#subform[0]."
	page2  = "form1[0].#subform[1]."
	page3  = "form1[0].#subform[2]."
	page4  = "form1[0].#subform[3]."
	page5  = "form1[0].#subform[4]."
	page6  = "form1[0].#subform[5]."
	page7  = "form1[0].#subform[6]."
	page8  = "form1[0].#subform[7]."
	page9  = "form1[0].#subform[8]."
	page10 = "form1[0].#subform[9]."
	page11 = "form1[0].#subform[10]."
	page12 = "form1[0].#subform[11]."
	page13 = "form1[0].#subform[12]."
)

// ResidenceCountry is written to the current-residence country box whenever
// any residence data is supplied.
const ResidenceCountry = "United States"

// AlienNumberFields are the fourteen page-header boxes that all carry the
// same cleaned A-number. The #area numbering skips 5 on the sixth page.
var AlienNumberFields = [14]string{
	"form1[0].#subform[0].#area[0].Line1_AlienNumber[0]",
	"form1[0].#subform[1].#area[1].Line1_AlienNumber[1]",
	"form1[0].#subform[2].#area[2].Line1_AlienNumber[2]",
	"form1[0].#subform[3].#area[3].Line1_AlienNumber[3]",
	"form1[0].#subform[4].#area[4].Line1_AlienNumber[4]",
	"form1[0].#subform[5].#area[6].Line1_AlienNumber[5]",
	"form1[0].#subform[6].#area[7].Line1_AlienNumber[6]",
	"form1[0].#subform[7].#area[8].Line1_AlienNumber[7]",
	"form1[0].#subform[8].#area[9].Line1_AlienNumber[8]",
	"form1[0].#subform[9].#area[10].Line1_AlienNumber[9]",
	"form1[0].#subform[10].#area[11].Line1_AlienNumber[10]",
	"form1[0].#subform[11].#area[12].Line1_AlienNumber[11]",
	"form1[0].#subform[12].#area[13].Line1_AlienNumber[12]",
	"form1[0].#subform[13].#area[14].Line1_AlienNumber[13]",
}

// option is one variant of a closed single-choice question.
type option struct {
	field string
	token string
}

// choice is a closed single-choice question keyed by the lower-cased answer.
// Unknown answers select nothing.
type choice struct {
	key     string
	options map[string]option
}

// EligibilityBasis is the Part 1 answer.
type EligibilityBasis string

const (
	EligibilityFiveYear                  EligibilityBasis = "5year"
	EligibilityThreeYearMarriage         EligibilityBasis = "3year_marriage"
	EligibilityVAWA                      EligibilityBasis = "vawa"
	EligibilitySpouseQualifiedEmployment EligibilityBasis = "spouse_qualified_employment"
	EligibilityMilitaryCurrent           EligibilityBasis = "military_current"
	EligibilityMilitaryFormer            EligibilityBasis = "military_former"
	EligibilityOther                     EligibilityBasis = "other"
)

// MaritalStatus is the Part 9 answer; Married opens the spouse section.
type MaritalStatus string

const (
	Divorced  MaritalStatus = "divorced"
	Single    MaritalStatus = "single"
	Widowed   MaritalStatus = "widowed"
	Married   MaritalStatus = "married"
	Annulled  MaritalStatus = "annulled"
	Separated MaritalStatus = "separated"
)

var eligibilityChoice = choice{key: "eligibility_basis", options: map[string]option{
	string(EligibilityFiveYear):                  {page1 + "Part1_Eligibility[2]", "A"},
	string(EligibilityThreeYearMarriage):         {page1 + "Part1_Eligibility[1]", "B"},
	string(EligibilityVAWA):                      {page1 + "Part1_Eligibility[0]", "C"},
	string(EligibilitySpouseQualifiedEmployment): {page1 + "Part1_Eligibility[6]", "D"},
	string(EligibilityMilitaryCurrent):           {page1 + "Part1_Eligibility[3]", "E"},
	string(EligibilityMilitaryFormer):            {page1 + "Part1_Eligibility[4]", "F"},
	string(EligibilityOther):                     {page1 + "Part1_Eligibility[5]", "G"},
}}

var maritalChoice = choice{key: "marital_status", options: map[string]option{
	string(Divorced):  {page4 + "P10_Line1_MaritalStatus[0]", "D"},
	string(Single):    {page4 + "P10_Line1_MaritalStatus[1]", "S"},
	string(Widowed):   {page4 + "P10_Line1_MaritalStatus[2]", "W"},
	string(Married):   {page4 + "P10_Line1_MaritalStatus[3]", "M"},
	string(Annulled):  {page4 + "P10_Line1_MaritalStatus[4]", "A"},
	string(Separated): {page4 + "P10_Line1_MaritalStatus[5]", "E"},
}}

var genderChoice = choice{key: "gender", options: map[string]option{
	"male":   {page2 + "P2_Line7_Gender[0]", "M"},
	"female": {page2 + "P2_Line7_Gender[1]", "F"},
}}

var unitChoice = choice{key: "apt_type", options: map[string]option{
	"apt": {page3 + "P4_Line1_Unit[2]", "APT"},
	"ste": {page3 + "P4_Line1_Unit[1]", "STE"},
	"flr": {page3 + "P4_Line1_Unit[0]", "FLR"},
}}

var mailingUnitChoice = choice{key: "mailing_apt_type", options: map[string]option{
	"apt": {page4 + "P5_Line1b_Unit[2]", "APT"},
	"ste": {page4 + "P5_Line1b_Unit[1]", "STE"},
	"flr": {page4 + "P5_Line1b_Unit[0]", "FLR"},
}}

var ethnicityChoice = choice{key: "ethnicity", options: map[string]option{
	"hispanic":     {page3 + "P7_Line1_Ethnicity[1]", "Y"},
	"not_hispanic": {page3 + "P7_Line1_Ethnicity[0]", "N"},
	"not hispanic": {page3 + "P7_Line1_Ethnicity[0]", "N"},
}}

// Pacific Islander shares the Asian token; the template defines it that way.
var raceChoice = choice{key: "race", options: map[string]option{
	"white":   {page3 + "P7_Line2_Race[4]", "W"},
	"asian":   {page3 + "P7_Line2_Race[1]", "A"},
	"black":   {page3 + "P7_Line2_Race[2]", "B"},
	"native":  {page3 + "P7_Line2_Race[0]", "I"},
	"pacific": {page3 + "P7_Line2_Race[3]", "A"},
}}

var eyeChoice = choice{key: "eye_color", options: map[string]option{
	"brown":   {page3 + "P7_Line5_Eye[0]", "BRO"},
	"blue":    {page3 + "P7_Line5_Eye[1]", "BLU"},
	"green":   {page3 + "P7_Line5_Eye[2]", "GRN"},
	"hazel":   {page3 + "P7_Line5_Eye[3]", "HAZ"},
	"gray":    {page3 + "P7_Line5_Eye[4]", "GRY"},
	"black":   {page3 + "P7_Line5_Eye[5]", "BLK"},
	"pink":    {page3 + "P7_Line5_Eye[6]", "PNK"},
	"maroon":  {page3 + "P7_Line5_Eye[7]", "MAR"},
	"unknown": {page3 + "P7_Line5_Eye[8]", "XXX"},
}}

var hairChoice = choice{key: "hair_color", options: map[string]option{
	"bald":    {page3 + "P7_Line6_Hair[0]", "BAL"},
	"sandy":   {page3 + "P7_Line6_Hair[1]", "SDY"},
	"red":     {page3 + "P7_Line6_Hair[2]", "RED"},
	"white":   {page3 + "P7_Line6_Hair[3]", "WHI"},
	"gray":    {page3 + "P7_Line6_Hair[4]", "GRY"},
	"blond":   {page3 + "P7_Line6_Hair[5]", "BLN"},
	"brown":   {page3 + "P7_Line6_Hair[6]", "BRO"},
	"black":   {page3 + "P7_Line6_Hair[7]", "BLK"},
	"unknown": {page3 + "P7_Line6_Hair[8]", "XXX"},
}}

// question is a yes/no pair of widgets sharing one base name. By default
// position 1 means yes and position 0 means no; reversed swaps them. Tokens
// default to Y and N.
type question struct {
	key      string
	base     string
	reversed bool
	yes, no  string
}

func (q question) positions() (yes, no int) {
	if q.reversed {
		return 0, 1
	}
	return 1, 0
}

func (q question) tokens() (yes, no string) {
	yes, no = q.yes, q.no
	if yes == "" {
		yes = "Y"
	}
	if no == "" {
		no = "N"
	}
	return yes, no
}

// Part 2 questions that are always asked.
var personalQuestions = []question{
	{key: "request_disability_accommodations", base: page2 + "P2_Line10_claimdisability"},
	{key: "disability_prevents_english", base: page2 + "P2_Line11_claimdisability"},
	{key: "ssa_wants_card", base: page2 + "Line12a_Checkbox"},
	{key: "ssa_consent_disclosure", base: page2 + "Line12\\.c_Checkbox"},
}

var nameChangeQuestion = question{key: "wants_name_change", base: page2 + "P2_Line34_NameChange"}

var spouseMilitaryQuestion = question{key: "spouse_is_military_member", base: page4 + "P7_Line2_Forces"}

var spouseAddressQuestion = question{key: "spouse_address_same_as_applicant", base: page4 + "P10_Line5_Citizen"}

var spouseCitizenByBirthQuestion = question{
	key:      "spouse_citizenship_by_birth",
	base:     page4 + "P10_Line5a_When",
	reversed: true,
	yes:      "B",
	no:       "O",
}

var feeReductionQuestion = question{key: "fee_reduction_requested", base: page11 + "P10_Line1_Citizen"}

var headOfHouseholdQuestion = question{key: "is_head_of_household", base: page11 + "P10_Line5a"}

// backgroundQuestions is Part 9 of the form. The reversed entries are
// properties of the template's widget order and are not derivable.
var backgroundQuestions = []question{
	{key: "q_claimed_us_citizen", base: page6 + "P9_Line1"},
	{key: "q_voted_in_us", base: page6 + "P9_Line2"},
	{key: "q_failed_to_file_taxes", base: page6 + "P9_Line3", reversed: true},
	{key: "q_owe_taxes", base: page6 + "P9_Line4", reversed: true},
	{key: "q_communist_party", base: page6 + "P9_5a", reversed: true},
	{key: "q_terrorist_org", base: page6 + "P9_5b", reversed: true},

	{key: "q_used_weapon_explosive", base: page7 + "P12_6a"},
	{key: "q_kidnapping_assassination_hijacking", base: page7 + "P12_6b", reversed: true},
	{key: "q_threatened_weapon_violence", base: page7 + "P12_6c"},
	{key: "q_torture", base: page7 + "P9_Line7a"},
	{key: "q_genocide", base: page7 + "P9_Line7\\.b\\."},
	{key: "q_killing_person", base: page7 + "P9_Line7\\.c"},
	{key: "q_severely_injuring", base: page7 + "P11_7d"},
	{key: "q_sexual_contact_nonconsent", base: page7 + "P9_Line7\\.e"},
	{key: "q_religious_persecution", base: page7 + "P9_Line7\\.f"},
	{key: "q_harm_race_religion", base: page7 + "P9_Line7\\.g"},
	{key: "q_military_police_service", base: page7 + "P9_Line8a"},
	{key: "q_armed_group", base: page7 + "P9_Line8b"},
	{key: "q_detention_facility", base: page7 + "P9_Line9"},
	{key: "q_group_used_weapons", base: page7 + "P9_Line10a"},
	{key: "q_used_weapon_against_person", base: page7 + "P9_Line10b"},
	{key: "q_threatened_weapon_use", base: page7 + "P9_Line10c", reversed: true},
	{key: "q_sold_provided_weapons", base: page7 + "P9_Line11"},
	{key: "q_weapons_training", base: page7 + "P9_Line12"},
	{key: "q_recruited_under_15", base: page7 + "P9_Line13"},
	{key: "q_used_under_15_hostilities", base: page7 + "P9_Line14"},

	{key: "q_male_18_26_lived_us", base: page8 + "P12_Line16"},

	{key: "q_committed_crime_not_arrested", base: page9 + "P12_Line20"},
	{key: "q_arrested", base: page9 + "P12_Line21"},
	{key: "q_false_info_us_government", base: page9 + "P12_Line23"},
	{key: "q_lied_us_government", base: page9 + "P12_Line24"},
	{key: "q_removed_deported", base: page9 + "P12_Line25"},

	{key: "q_served_us_military", base: page10 + "P12_Line33", reversed: true},
	{key: "q_court_martialed", base: page10 + "P12_Line27"},
	{key: "q_discharged_because_alien", base: page10 + "P12_Line28"},
	{key: "q_deserted_military", base: page10 + "P12_Line34"},
	{key: "q_prostitution", base: page10 + "P12_Line30a", reversed: true},
	{key: "q_controlled_substances", base: page10 + "P12_Line30b", reversed: true},
	{key: "q_illegal_gambling", base: page10 + "P12_Line31"},
	{key: "q_failed_child_support", base: page10 + "P12_Line32", reversed: true},
	{key: "q_support_constitution", base: page10 + "P12_Line35", reversed: true},
	{key: "q_willing_take_oath", base: page10 + "P12_Line36"},
	{key: "q_willing_bear_arms", base: page10 + "P12_Line37", reversed: true},
}

// childSupportQuestions is indexed by child ordinal - 1. The first child's
// pair is reversed.
var childSupportQuestions = [3]question{
	{key: "support", base: page5 + "P9_Line5a", reversed: true},
	{key: "support", base: page5 + "P6_ChildTwo"},
	{key: "support", base: page5 + "P6_ChildThree"},
}

// text is a plain scalar copied to one field, optionally date-normalised.
type text struct {
	key   string
	field string
	date  bool
}

var nameFields = []text{
	{key: "last_name", field: page1 + "P2_Line1_FamilyName[0]"},
	{key: "first_name", field: page1 + "P2_Line1_GivenName[0]"},
	{key: "middle_name", field: page1 + "P2_Line1_MiddleName[0]"},
}

var newNameFields = []text{
	{key: "new_name_last", field: page2 + "Part2Line3_FamilyName[0]"},
	{key: "new_name_first", field: page2 + "Part2Line4a_GivenName[0]"},
	{key: "new_name_middle", field: page2 + "Part2Line4a_MiddleName[0]"},
}

var personalFields = []text{
	{key: "uscis_account_number", field: page2 + "P2_Line6_USCISELISAcctNumber[0]"},
	{key: "date_of_birth", field: page2 + "P2_Line8_DateOfBirth[0]", date: true},
	{key: "date_became_permanent_resident", field: page2 + "P2_Line9_DateBecamePermanentResident[0]", date: true},
	{key: "country_of_birth", field: page2 + "P2_Line10_CountryOfBirth[0]"},
	{key: "country_of_citizenship", field: page2 + "P2_Line11_CountryOfNationality[0]"},
}

const (
	otherBasisReasonField = page1 + "Part1Line5_OtherExplain[0]"
	ssnField              = page2 + "Line12b_SSN[0]"
	residenceStateField   = page3 + "P4_Line1_State[0]"
	residenceCountryField = page3 + "P4_Line1_Country[0]"
	residenceFromField    = page3 + "P4_Line1_DatesofResidence[1]"
	residenceToField      = page3 + "P4_Line1_DatesofResidence[0]"
	spouseBecameCitizen   = page4 + "P10_Line5b_DateBecame[0]"
)

var residenceFields = []text{
	{key: "street_address", field: page3 + "P4_Line1_StreetName[0]"},
	{key: "apt_ste_flr", field: page3 + "P4_Line1_Number[0]"},
	{key: "city", field: page3 + "P4_Line1_City[0]"},
	{key: "zip_code", field: page3 + "P4_Line1_ZipCode[0]"},
	{key: "residence_province", field: page3 + "P4_Line1_Province[0]"},
	{key: "residence_postal_code", field: page3 + "P4_Line1_PostalCode[0]"},
}

// residenceKeys is any input that counts as residence data for the purpose
// of writing ResidenceCountry.
var residenceKeys = []string{
	"street_address", "apt_type", "apt_ste_flr", "city", "state", "zip_code",
	"residence_province", "residence_postal_code", "residence_from", "residence_to",
}

var mailingFields = []text{
	{key: "mailing_apt_ste_flr", field: page4 + "P5_Line1b_Number[0]"},
	{key: "mailing_in_care_of", field: page4 + "P5_Line1b_InCareOfName[0]"},
	{key: "mailing_street_address", field: page4 + "P5_Line1b_StreetName[0]"},
	{key: "mailing_city", field: page4 + "P5_Line1b_City[0]"},
	{key: "mailing_state", field: page4 + "P5_Line1b_State[0]"},
	{key: "mailing_zip_code", field: page4 + "P5_Line1b_ZipCode[0]"},
	{key: "mailing_province", field: page4 + "P5_Line1b_Province[0]"},
	{key: "mailing_postal_code", field: page4 + "P5_Line1b_PostalCode[0]"},
	{key: "mailing_country", field: page4 + "P5_Line1b_Country[0]"},
}

var heightFields = []text{
	{key: "height_feet", field: page3 + "P7_Line3_HeightFeet[0]"},
	{key: "height_inches", field: page3 + "P7_Line3_HeightInches[0]"},
}

var weightFields = [3]string{
	page3 + "P7_Line4_Pounds1[0]",
	page3 + "P7_Line4_Pounds2[0]",
	page3 + "P7_Line4_Pounds3[0]",
}

var timesMarriedField = text{key: "times_married", field: page4 + "Part9Line3_TimesMarried[0]"}

var spouseFields = []text{
	{key: "spouse_last_name", field: page4 + "P10_Line4a_FamilyName[0]"},
	{key: "spouse_first_name", field: page4 + "P10_Line4a_GivenName[0]"},
	{key: "spouse_middle_name", field: page4 + "P10_Line4a_MiddleName[0]"},
	{key: "spouse_date_of_birth", field: page4 + "P10_Line4d_DateofBirth[0]", date: true},
	{key: "spouse_date_of_marriage", field: page4 + "P10_Line4e_DateEnterMarriage[0]", date: true},
}

// Spouse fields that continue on page 5. The times-married and employer
// boxes carry template names unrelated to their meaning.
var spouseContinuedFields = []text{
	{key: "spouse_a_number", field: "form1[0].#subform[4].#area[5].P7_Line6_ANumber[0]"},
	{key: "spouse_times_married", field: page5 + "P10_Line4g_Employer[0]"},
	{key: "spouse_current_employer", field: page5 + "TextField1[0]"},
}

var totalChildrenField = text{key: "total_children", field: page5 + "P11_Line1_TotalChildren[0]"}

var contactFields = []text{
	{key: "daytime_phone", field: page11 + "P12_Line3_Telephone[0]"},
	{key: "mobile_phone", field: page11 + "P12_Line3_Mobile[0]"},
	{key: "email", field: page11 + "P12_Line5_Email[0]"},
	{key: "signature_date", field: page11 + "P13_DateofSignature[0]", date: true},
	{key: "applicant_signature", field: page11 + "P12_SignatureApplicant[0]"},
}

var householdFields = []text{
	{key: "household_income", field: page11 + "P10_Line2_TotalHouseholdIn[0]"},
	{key: "household_size", field: page11 + "P10_Line3_HouseHoldSize[0]"},
	{key: "head_of_household_name", field: page11 + "P10_Line5b_NameOfHousehold[0]"},
}

// The interpreter's given/family boxes are misspelt in the template.
var interpreterFields = []text{
	{key: "interpreter_last_name", field: page12 + "P14_Line1_nterpreterFamilyName[0]"},
	{key: "interpreter_first_name", field: page12 + "P14_Line1_nterpreterGivenName[0]"},
	{key: "interpreter_business_name", field: page12 + "P14_Line2_NameofBusinessorOrgName[0]"},
	{key: "interpreter_phone", field: page12 + "P14_Line4_Telephone[0]"},
	{key: "interpreter_mobile", field: page12 + "P14_Line5_Mobile[0]"},
	{key: "interpreter_email", field: page12 + "P14_Line5_EmailAddress[0]"},
	{key: "interpreter_language", field: page12 + "P14_NameOfLanguage[0]"},
	{key: "interpreter_signature_date", field: page12 + "P14_DateofSignature[0]", date: true},
}

var preparerFields = []text{
	{key: "preparer_last_name", field: page12 + "P15_Line1_PreparerFamilyName[0]"},
	{key: "preparer_first_name", field: page12 + "P15_Line1_PreparerGivenName[0]"},
	{key: "preparer_business_name", field: page12 + "P15_Line2_NameofBusinessorOrgName[0]"},
	{key: "preparer_phone", field: page12 + "P15_Line4_Telephone[0]"},
	{key: "preparer_mobile", field: page12 + "P15_Line5_Mobile[0]"},
	{key: "preparer_email", field: page12 + "P15_Line6_Email[0]"},
	{key: "preparer_signature_date", field: page12 + "P15_DateofSignature[0]", date: true},
}
