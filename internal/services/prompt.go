package services

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"smartbot/career-matcher/internal/models"
)

type PromptBuilder struct {
	maxDocumentChars int
}

func NewPromptBuilder(maxDocumentChars int) *PromptBuilder {
	return &PromptBuilder{maxDocumentChars: maxDocumentChars}
}

// BuildAnalysisSystemPrompt embeds the expert persona, the active role,
// the serialized answers, and the refinement context gathered from the
// chat (empty for the recruiter path).
func (pb *PromptBuilder) BuildAnalysisSystemPrompt(role models.Role, answers models.AnswerSet, chatContext string) string {
	common := `You are SmartBot, a professional career analysis expert. Your task is to analyze the provided text content (a resume or a job description) against the user's preferences, which are provided below. Based on this analysis, generate a structured JSON response following the provided schema. All text in the response, including recommendation points and match descriptions, MUST be in Russian.`

	preferences, _ := json.Marshal(answers)

	contextString := ""
	if chatContext != "" {
		contextString = fmt.Sprintf("\n\nADDITIONAL CONTEXT FROM USER CHAT FOR REFINEMENT: %s", chatContext)
	}

	if role == models.RoleJobSeeker {
		return fmt.Sprintf(`%s
USER ROLE: Job Seeker.
TASK: Evaluate the uploaded Resume/CV and the user's stated preferences. Use the additional context from the chat to refine the job matches (e.g., location, industry, specific skills).
PREFERENCES: %s%s
Instructions:
1. Calculate a general match percentage based on the CV's content matching current job market trends and the user's desires.
2. Generate 3 example Job Matches (titles, companies, salaries, locations, match scores) that suit the CV and refined preferences.
3. Provide 3-5 concrete recommendations for improving the RESUME/CV.`, common, preferences, contextString)
	}

	return fmt.Sprintf(`%s
USER ROLE: HR/Recruiter.
TASK: Evaluate the uploaded Job Description and the company's stated preferences.
PREFERENCES: %s
Instructions:
1. Calculate a general match percentage based on the Job Description's competitiveness and clarity.
2. Generate 3 example Candidate Matches (names, positions, experience, locations, match scores) that suit the vacancy.
3. Provide 3-5 concrete recommendations for improving the VACANCY DESCRIPTION.`, common, preferences)
}

// BuildAnalysisUserPrompt embeds the answers and the document text.
// The document is cut at maxDocumentChars runes with no signal to the
// user that truncation occurred.
func (pb *PromptBuilder) BuildAnalysisUserPrompt(answers models.AnswerSet, documentText string) string {
	preferences, _ := json.MarshalIndent(answers, "", "  ")

	return fmt.Sprintf(`Analyze the document content provided below, keeping the user's preferences in mind.
Preferences: %s

Document Content:
--- START OF DOCUMENT ---
%s
--- END OF DOCUMENT ---

Generate the structured JSON response as instructed by the system prompt.`, preferences, truncateRunes(documentText, pb.maxDocumentChars))
}

// BuildChatSystemPrompt fixes the refinement persona: gather detail,
// never analyze.
func (pb *PromptBuilder) BuildChatSystemPrompt() string {
	return `You are SmartBot, a helpful and engaging career refinement assistant. Your goal is to gather additional, specific requirements from the user (Job Seeker) to improve job vacancy matching. Do not perform the final analysis yet. Ask clarifying questions about industry, preferred company size, specific tech stacks, or cultural fit. Keep responses concise and encouraging. The user has already uploaded their CV and answered initial questions about salary and work format.`
}

// AnalysisSchema is the structured-output contract for the analysis
// call. Field names and requirements mirror models.AnalysisResult.
func (pb *PromptBuilder) AnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matchPercentage": {
				Type:        genai.TypeInteger,
				Description: "Overall match score (0-100).",
			},
			"matchText": {
				Type:        genai.TypeString,
				Description: "A brief summary of the match, e.g., 'Высокое совпадение с вашими навыками'.",
			},
			"recommendations": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of concrete, actionable recommendations for improvement, based on the uploaded content and questionnaire.",
			},
			"matches": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString, Description: "Job title or Candidate name."},
						"secondary":   {Type: genai.TypeString, Description: "Company or Position."},
						"location":    {Type: genai.TypeString, Description: "City or region."},
						"salary":      {Type: genai.TypeString, Description: "Salary range or current experience level."},
						"match":       {Type: genai.TypeInteger, Description: "Specific match score for this item (0-100)."},
						"description": {Type: genai.TypeString, Description: "Brief description/summary from the source file."},
					},
					Required: []string{"title", "secondary", "location", "match", "description"},
				},
			},
		},
		Required: []string{"matchPercentage", "matchText", "recommendations", "matches"},
	}
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
