package prompts

const (
	careerPathFile = "career_path.json"
	resumeFile     = "resume.json"
)

// Conversation is the system persona plus the rendered user prompt.
type Conversation struct {
	System string
	User   string
}

// CareerPath renders the roadmap prompt for a profession.
func CareerPath(profession string) Conversation {
	return Conversation{
		System: MustGet(careerPathFile, "system"),
		User: Format(MustGet(careerPathFile, "user"), map[string]string{
			"Profession": profession,
		}),
	}
}

// ParseResume renders the extraction prompt, embedding the output schema and the raw text.
func ParseResume(text string) Conversation {
	return Conversation{
		System: MustGet(resumeFile, "system"),
		User: Format(MustGet(resumeFile, "user"), map[string]string{
			"Schema":     MustGet(resumeFile, "schema"),
			"ResumeText": text,
		}),
	}
}
