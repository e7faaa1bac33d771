package llm

import _ "embed"

//go:embed prompts/resume_gen_v1.txt
var resumeGenV1 string

// PromptTemplate returns the system prompt text and whether the version was
// recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "resume_gen_v1", "v1", "":
		return resumeGenV1, version != ""
	default:
		return resumeGenV1, false
	}
}
