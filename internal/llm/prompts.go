package llm

import (
	"fmt"
	"strings"

	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

// FragmentPrompt builds the per-chunk extraction prompt asking for a single
// JSON object that follows the dataset schema.
func FragmentPrompt(chunk string, index, total int, schemaJSON string, req types.ConvertRequest) string {
	var sb strings.Builder
	writeExamples(&sb, req.Examples)
	sb.WriteString("You are a data extraction expert. Convert the following text extracted from a PDF into a single, well-structured JSON object.\n")
	sb.WriteString("The JSON output must strictly follow the given schema:\n")
	fmt.Fprintf(&sb, "```json\n%s\n```\n", schemaJSON)
	sb.WriteString("All required fields must be present. If a required field is missing or null, double-check the input and do not omit the field.\n")
	sb.WriteString("Optional fields can be omitted if no data, but include a \"missing\": true flag within the field object to indicate it is missing.\n")
	writeContext(&sb, req)
	sb.WriteString("Ensure the JSON is valid and accurately captures all tables and hierarchical relationships.\n")
	fmt.Fprintf(&sb, "PDF TEXT CHUNK %d/%d:\n```text\n%s\n```", index, total, chunk)
	return sb.String()
}

// TablesPrompt builds the prompt that turns the merged JSON document into
// multiple marker-delimited CSV tables.
func TablesPrompt(jsonText string, req types.ConvertRequest) string {
	csvExamples := "No CSV examples provided."
	if len(req.CSVExamples) > 0 {
		csvExamples = "CSV EXAMPLES:\n" + strings.Join(req.CSVExamples, "\n")
	}

	var sb strings.Builder
	sb.WriteString("You are a data transformation expert. Your task is to convert the provided JSON data into multiple, distinct, relational CSV tables as specified.\n")
	fmt.Fprintf(&sb, "You must generate exactly %d CSV table(s).\n", len(req.TableNames))
	fmt.Fprintf(&sb, "The required table names are: %s.\n", strings.Join(req.TableNames, ", "))
	sb.WriteString("Use the provided context, relationships, and CSV examples to determine the correct columns and data for each table.\n")
	writeContext(&sb, req)
	sb.WriteString(csvExamples + "\n")
	sb.WriteString("Follow these output instructions precisely:\n")
	sb.WriteString("1. For each table, start with a header line: `=== START OF TABLE: [TableName] ===`\n")
	sb.WriteString("2. Then, provide the CSV data for that table, with a header row and comma-separated values.\n")
	sb.WriteString("3. End each table's data with a footer line: `=== END OF TABLE: [TableName] ===`\n")
	sb.WriteString("4. Ensure the data is properly normalized across the tables as per the relational schema description.\n")
	fmt.Fprintf(&sb, "JSON DATA TO TRANSFORM:\n```json\n%s\n```", jsonText)
	return sb.String()
}

// RepairPrompt asks the model to fix a document that failed schema validation
// without inventing or dropping facts.
func RepairPrompt(badJSON, validationErr, schemaJSON string) string {
	var sb strings.Builder
	sb.WriteString("You returned JSON that failed schema validation.\n")
	sb.WriteString("Repair it so it satisfies this schema exactly:\n")
	fmt.Fprintf(&sb, "```json\n%s\n```\n", schemaJSON)
	sb.WriteString("- Keep all facts you already produced.\n")
	sb.WriteString("- Fix only structure/types to satisfy the schema.\n")
	sb.WriteString("- Return ONLY valid JSON.\n")
	fmt.Fprintf(&sb, "VALIDATION ERRORS:\n%s\n", validationErr)
	fmt.Fprintf(&sb, "JSON TO REPAIR:\n```json\n%s\n```", badJSON)
	return sb.String()
}

// ContextPrompt asks for a short instructional description of the data,
// usable as context in later extraction calls.
func ContextPrompt(sample string) string {
	return "You write concise instructional prompts for downstream data-extraction models.\n" +
		"Based on the following extracted table data, write a short instructional prompt " +
		"that describes the overall context of the data so another model can use it:\n\n" +
		sample
}

// RelationshipsPrompt asks for plausible relational structure between the
// tables in the sample.
func RelationshipsPrompt(sample string) string {
	return "You infer relational structure between tables.\n" +
		"Using the same extracted table data, describe plausible relationships (e.g., primary/foreign " +
		"keys, hierarchical links) between tables that would help build a relational dataset:\n\n" +
		sample
}

func writeContext(sb *strings.Builder, req types.ConvertRequest) {
	fmt.Fprintf(sb, "CONTEXT:\n%s\n\nRELATIONSHIPS:\n%s\n\nADDITIONAL CONTEXT:\n%s\n\nMANUAL CONTEXT:\n%s\n",
		req.Context, req.Relationships, req.AdditionalContext, req.ManualContext)
}

func writeExamples(sb *strings.Builder, examples []types.Example) {
	if len(examples) == 0 {
		return
	}
	for i, ex := range examples {
		fmt.Fprintf(sb, "--- START OF EXAMPLE %d ---\n", i+1)
		fmt.Fprintf(sb, "**EXAMPLE INPUT (TEXT FROM A PDF PAGE):**\n```text\n%s\n```\n", ex.Input)
		fmt.Fprintf(sb, "**EXAMPLE OUTPUT (THE DESIRED JSON):**\n%s\n", ex.Output)
		fmt.Fprintf(sb, "--- END OF EXAMPLE %d ---\n", i+1)
	}
	sb.WriteString("Now, apply the same logic and structure from these example(s) to the real input below.\n")
}
