package constant

// Default sampling temperatures per pipeline stage.
const (
	SummaryTemperature    = 0.7
	ChatTemperature       = 0.7
	FormattingTemperature = 0.7
	MemoTemperature       = 0.9
)

const SummaryPrompt = `Fill in the following template with the information in the provided document. Be detailed.
The output should have detailed metrics and statistics extracted from the document when appropriate.
If the information cannot be concluded from the provided sample, label the field as "Not Available".
Include page numbers for references for each section.`

const MarkdownFormatPrompt = `Format the following summary into multiple markdown tables.
The output should be in markdown format.
Nest information in a table or create multiple columns if appropriate.
It should be neat, readable, and not verbose.
Include page numbers where info was found as another column.`

const MemoPrompt = `Fill out the Memo Template using the provided documents and knowledge of industry.
Be detailed and thorough with the information. Include page numbers for references.

If you cannot find the information in the documents, leave that field blank. Do not fill in with "Not Available" or "N/A" or "Unknown" or similar text.
Follow the template format and structure exactly. Do not add any additional comments.

Return as normal text.`

// SecureGPTPlaceholderResponse is returned whenever the Secure GPT model option is
// selected. The upstream integration is not wired in yet.
const SecureGPTPlaceholderResponse = "Secure GPT not implemented yet."
