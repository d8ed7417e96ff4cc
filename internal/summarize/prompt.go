package summarize

import "fmt"

const instruction = `You are reviewing an official document on behalf of an administrator.
Summarize it concisely, in a structured form, covering:
- issue date
- issuer
- addressee
- key details
- key names mentioned
- any critical information a reviewer must not miss
Keep the summary short and factual. Do not invent information that is not in the document.`

// BuildPrompt combines the fixed review instruction with the document text.
func BuildPrompt(text string) string {
	return instruction + "\n\nDocument content:\n" + text
}

// FallbackDescription synthesizes input for the summarizer when text
// extraction produced nothing, so it still has something to reason about.
func FallbackDescription(title, fileURL string) string {
	return fmt.Sprintf("No text could be extracted from the uploaded document titled %q. The original file is stored at %s. Summarize what can be inferred from the title and note that the content was not machine-readable.", title, fileURL)
}
