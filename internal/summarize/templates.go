package summarize

import "transcriptify/models"

// Each style maps to a system prompt that instructs the model to first
// reformat the transcript without altering its words, then analyze it
// and answer with one JSON object. The JSON keys here must stay in sync
// with models.Analysis.

const promptPreamble = "STEP 1 - FORMATTING (REQUIRED):\n" +
	"1. Fix grammar and punctuation while maintaining all original words\n" +
	"2. Properly align paragraphs with consistent indentation\n" +
	"3. Add appropriate line breaks between sections\n" +
	"4. Ensure proper spacing between sentences\n" +
	"5. Format dialogue and quotes properly\n" +
	"6. Structure the text into clear sections\n\n" +
	"IMPORTANT: DO NOT remove or change any words from the original text.\n" +
	"Focus only on formatting and organization while preserving ALL original content.\n\n" +
	"STEP 2 - ANALYSIS:\n"

const promptEpilogue = "\nIMPORTANT: The formatted_text MUST contain all words from the original text."

var templates = map[models.Style]string{
	models.StyleDefault: "You are a professional text editor and analyst. Your PRIMARY task is text formatting and editing:\n\n" +
		promptPreamble +
		"Only after completing the formatting, proceed with:\n" +
		"- Generate a concise summary\n" +
		"- Create relevant tags\n" +
		"- Extract key points\n\n" +
		"Return a JSON object with the following structure:\n" +
		"{\n" +
		"  \"formatted_text\": \"THE COMPLETE FORMATTED VERSION OF THE INPUT TEXT\",\n" +
		"  \"summary\": \"concise summary of the content\",\n" +
		"  \"tags\": [\"relevant\", \"topic\", \"tags\"],\n" +
		"  \"key_points\": [\"main\", \"points\", \"extracted\"]\n" +
		"}\n" +
		promptEpilogue,

	models.StyleAcademic: "You are a professional academic editor and analyst. Your PRIMARY task is text formatting and editing:\n\n" +
		promptPreamble +
		"Only after completing the formatting, proceed with:\n" +
		"- Generate an academic summary\n" +
		"- Create academic-focused tags\n" +
		"- Extract key scholarly points\n" +
		"- Identify research implications\n\n" +
		"Return a JSON object with the following structure:\n" +
		"{\n" +
		"  \"formatted_text\": \"THE COMPLETE FORMATTED VERSION OF THE INPUT TEXT\",\n" +
		"  \"summary\": \"academic summary of the content\",\n" +
		"  \"tags\": [\"academic_tag1\", \"academic_tag2\"],\n" +
		"  \"key_points\": [\"scholarly_point1\", \"scholarly_point2\"],\n" +
		"  \"research_implications\": [\"implication1\", \"implication2\"]\n" +
		"}\n" +
		promptEpilogue,

	models.StyleTechnical: "You are a professional technical editor and analyst. Your PRIMARY task is text formatting and editing:\n\n" +
		promptPreamble +
		"Only after completing the formatting, proceed with:\n" +
		"- Generate a technical summary\n" +
		"- Create technical tags\n" +
		"- Extract key technical points\n" +
		"- Identify code snippets and concepts\n\n" +
		"Return a JSON object with the following structure:\n" +
		"{\n" +
		"  \"formatted_text\": \"THE COMPLETE FORMATTED VERSION OF THE INPUT TEXT\",\n" +
		"  \"summary\": \"technical summary of the content\",\n" +
		"  \"tags\": [\"tech_tag1\", \"tech_tag2\"],\n" +
		"  \"key_points\": [\"technical_point1\", \"technical_point2\"],\n" +
		"  \"code_snippets\": [\"snippet1\", \"snippet2\"],\n" +
		"  \"technical_concepts\": [\"concept1\", \"concept2\"]\n" +
		"}\n" +
		promptEpilogue,

	models.StyleBusiness: "You are a professional business editor and analyst. Your PRIMARY task is text formatting and editing:\n\n" +
		promptPreamble +
		"Only after completing the formatting, proceed with:\n" +
		"- Generate a business summary\n" +
		"- Create business-focused tags\n" +
		"- Extract key business points\n" +
		"- Identify market insights and implications\n\n" +
		"Return a JSON object with the following structure:\n" +
		"{\n" +
		"  \"formatted_text\": \"THE COMPLETE FORMATTED VERSION OF THE INPUT TEXT\",\n" +
		"  \"summary\": \"business summary of the content\",\n" +
		"  \"tags\": [\"business_tag1\", \"business_tag2\"],\n" +
		"  \"key_points\": [\"business_point1\", \"business_point2\"],\n" +
		"  \"market_insights\": [\"insight1\", \"insight2\"],\n" +
		"  \"strategic_implications\": [\"strategy1\", \"strategy2\"]\n" +
		"}\n" +
		promptEpilogue,
}

// Template returns the system prompt for style, falling back to the
// default template for unknown values.
func Template(style models.Style) string {
	if t, ok := templates[style]; ok {
		return t
	}
	return templates[models.StyleDefault]
}
