package schema

// allCategoryCodes returns every canonical category code, for questions that
// repeat across the full category set.
func allCategoryCodes() []CategoryCode {
	codes := make([]CategoryCode, len(Categories))
	for i, c := range Categories {
		codes[i] = c.Code
	}
	return codes
}

// Catalog is the full VCA survey question catalogue in evaluation order.
// Dependencies always point backwards in this list; NewRegistry enforces that.
var Catalog = []Question{
	// Section 1: identity and contact.
	{
		Key:     "q1_type_of_vca",
		Text:    "What is the type of the VCA?",
		Section: 1,
		Shape:   ScalarChoice,
		Choices: []string{"Individual", "Registered Company", "Cooperative"},
		RawKey:  "q_type_of_vca",
	},
	{
		Key:     "q2_vca_position",
		Text:    "What is the position of the respondent?",
		Section: 1,
		Shape:   ScalarChoice,
		Choices: []string{"Owner", "Manager"},
		RawKey:  "q_vca_position",
	},
	{
		Key:     "q3_full_name",
		Text:    "Full name of the respondent",
		Section: 1,
		Shape:   FreeText,
		RawKey:  "fr_name",
	},
	{
		Key:          "q4_age",
		Text:         "Age of the respondent",
		Section:      1,
		Shape:        Numeric,
		Bounds:       &Bounds{Min: 18, Max: 99},
		AllowUnknown: true,
		RawKey:       "fr_age",
	},
	{
		Key:     "q5_gender",
		Text:    "Gender of the respondent",
		Section: 1,
		Shape:   ScalarChoice,
		Choices: []string{"Male", "Female"},
		RawKey:  "fr_gender",
	},
	{
		Key:     "q6_phone_number",
		Text:    "Phone number of the respondent",
		Section: 1,
		Shape:   FreeText,
		Format:  PhoneFormat,
		RawKey:  "fr_phone_number",
	},
	{
		Key:     "q7_email",
		Text:    "Email address of the VCA",
		Section: 1,
		Shape:   FreeText,
		Format:  EmailFormat,
		RawKey:  "q_vca_email_address",
	},
	{
		Key:     "q8_has_national_id",
		Text:    "Does the respondent have a national ID?",
		Section: 1,
		Shape:   Boolean,
		Choices: []string{"Yes", "No"},
		RawKey:  "q_vca_id_number_available",
	},
	{
		Key:       "q9_national_id_number",
		Text:      "National ID number",
		Section:   1,
		Shape:     FreeText,
		DependsOn: &Dependency{Key: "q8_has_national_id", Values: []string{"Yes"}},
		RawKey:    "q_vca_id_number",
	},
	{
		Key:     "q11_is_legally_registered",
		Text:    "Is the business legally registered?",
		Section: 1,
		Shape:   Boolean,
		Choices: []string{"Yes", "No"},
		RawKey:  "q_legally_registered",
	},
	{
		Key:       "q12_tin_number",
		Text:      "TIN number",
		Section:   1,
		Shape:     FreeText,
		DependsOn: &Dependency{Key: "q11_is_legally_registered", Values: []string{"Yes"}},
		RawKey:    "q_tin_number",
	},

	// Section 2: business profile.
	{
		Key:     "q13_business_category",
		Text:    "Which business categories does the VCA operate in?",
		Section: 2,
		Shape:   MultiChoice,
		Choices: CategoryLabels(),
		RawKey:  "q_business_category",
	},
	{
		Key:        "q14_other_category",
		Text:       "If Other, specify the business category",
		Section:    2,
		Shape:      FreeText,
		Vocabulary: true,
		DependsOn:  &Dependency{Key: "q13_business_category", Values: []string{"Other"}},
		RawKey:     "q_other_business_category",
	},
	{
		Key:     "q15_business_name",
		Text:    "Name of the business",
		Section: 2,
		Shape:   FreeText,
		Scope:   allCategoryCodes(),
		RawKey:  "q_business_name",
	},
	{
		Key:     "q16_business_address",
		Text:    "Address of the business",
		Section: 2,
		Shape:   FreeText,
		Scope:   allCategoryCodes(),
		RawKey:  "q_business_address",
	},

	// Section 3: operations.
	{
		Key:     "q18_max_operating_capacity",
		Text:    "Maximum operating capacity (kgs)",
		Section: 3,
		Shape:   Numeric,
		Bounds:  &Bounds{Min: 0, Max: maxQuantity},
		Scope:   allCategoryCodes(),
		RawKey:  "q_max_operating_capacity",
	},
	{
		Key:     "q19_max_storage",
		Text:    "Maximum storage capacity (kgs)",
		Section: 3,
		Shape:   Numeric,
		Bounds:  &Bounds{Min: 0, Max: maxQuantity},
		Scope:   allCategoryCodes(),
		RawKey:  "q_max_storage",
	},
	{
		Key:     "q20_hullers_operated",
		Text:    "Number of hullers operated",
		Section: 3,
		Shape:   Numeric,
		Bounds:  &Bounds{Min: 0, Max: maxQuantity},
		RawKey:  "q_huller_operated",
	},
	{
		Key:     "q21_total_processing_per_year",
		Text:    "Total processing per year (kgs)",
		Section: 3,
		Shape:   Numeric,
		Bounds:  &Bounds{Min: 0, Max: maxQuantity},
		Scope:   []CategoryCode{"HS"},
		RawKey:  "q_total_processing_per_year",
	},
	{
		Key:     "q22_type_of_coffee",
		Text:    "Type of coffee sourced",
		Section: 3,
		Shape:   MultiChoice,
		Choices: []string{"Arabica", "Robusta", "Both", "Does not apply"},
		Scope:   allCategoryCodes(),
		RawKey:  "q_type_coffee_sourced",
	},
	{
		Key:     "q23_coffee_form",
		Text:    "Form of coffee handled",
		Section: 3,
		Shape:   MultiChoice,
		Choices: []string{"Red Cherries", "Kiboko", "Parchment", "DRUGAR", "FAQ (clean)", "Graded", "Roasted", "Does not apply"},
		Scope:   allCategoryCodes(),
		RawKey:  "q_coffee_form",
	},
	{
		Key:     "q24_districts_received_from",
		Text:    "Districts coffee is received from",
		Section: 3,
		Shape:   FreeText,
		Scope:   allCategoryCodes(),
		RawKey:  "q_district_coffee_received",
	},
	{
		Key:     "q25_annual_kgs_received",
		Text:    "Coffee received in a year (kgs)",
		Section: 3,
		Shape:   Numeric,
		Bounds:  &Bounds{Min: 0, Max: maxQuantity},
		Scope:   allCategoryCodes(),
		RawKey:  "q_coffee_received_in_a_year_kgs",
	},
	{
		Key:     "q26_receive_coffee_from",
		Text:    "Who is coffee received from?",
		Section: 3,
		Shape:   MultiChoice,
		Choices: []string{"Farmers", "Trader", "Cooperative", "Exporter", "Other", "Does not apply"},
		Scope:   allCategoryCodes(),
		RawKey:  "q_receive_coffee_from",
	},

	// Section 4: location and run metadata.
	{
		Key:     "q27_candidate_name",
		Text:    "Name of the enumeration candidate",
		Section: 4,
		Shape:   FreeText,
		RawKey:  "q_candidate_name",
	},
	{
		Key:     "q28_vca_gps",
		Text:    "GPS location of the VCA",
		Section: 4,
		Shape:   GPS,
		RawKey:  "q_vca_gps",
	},
	{
		Key:     "q29_row_reference",
		Text:    "Source row reference",
		Section: 4,
		Shape:   Auto,
		RawKey:  "",
	},
}

// maxQuantity caps open-ended quantity fields. Large enough for any real
// annual volume, small enough to catch unit-entry mistakes.
const maxQuantity = 1e9
