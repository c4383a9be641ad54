package descriptions

// Tool descriptions shown to MCP clients

const (
	N400MapFieldsDescription = `Translate N-400 intake data into the PDF form field values it would produce, without touching the template.

**When to use:** Checking how an applicant's answers land on the form before generating it, or debugging a field that came out blank.

**Input:** ` + "`intake`" + ` is a JSON object using the intake keys (first_name, last_name, a_number, eligibility_basis, marital_status, residence_addresses, employment_history, children, trips, ...).

**Examples:**
• Preview a draft: "Show which N-400 fields Maria's intake fills"
• Debug a checkbox: "Why is the Part 9 genocide answer not checked?"

**Output:** A JSON object mapping fully qualified field names to values. Checkbox and radio selections appear as PDF names such as "/Y"; dates are MM/DD/YYYY.`

	N400GeneratePDFDescription = `Fill the N-400 template from intake data and save the completed PDF.

**When to use:** Producing the filled application for review or filing.

**Input:** ` + "`intake`" + ` as for n400_map_fields. ` + "`filename`" + ` is optional; it defaults to N-400_<last>_<first>.pdf and is always written inside the configured output directory.

**Output:** The saved path, how many fields were mapped and filled, and any mapped field the template does not define.

**Best practices:** Run n400_health first to confirm the template is loaded. Viewers regenerate field appearances on open, so the form should be checked in a full PDF viewer.`

	N400ListTemplateFieldsDescription = `List the fillable fields defined by the loaded N-400 template.

**When to use:** Verifying that a new template revision still carries the field names the mapping writes to.

**Input:** ` + "`limit`" + ` caps how many names are returned; 0 lists all of them.`

	N400HealthDescription = `Report whether the N-400 template is loaded, where it came from and how many fields it defines.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"n400_map_fields":           N400MapFieldsDescription,
	"n400_generate_pdf":         N400GeneratePDFDescription,
	"n400_list_template_fields": N400ListTemplateFieldsDescription,
	"n400_health":               N400HealthDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all described tools
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
