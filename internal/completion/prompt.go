package completion

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Prompt limits used by the two assisted-search variants
const (
	TitleLimit     = 4
	RecommendLimit = 6
)

const titleSystemPrompt = `You are a movie search assistant that answers only with movie titles in JSON.
Strip years, subtitles and any extra text so that only the clean main title remains.
Do not add descriptions or metadata.
Return a JSON array of distinct movie titles that best match the user's description.

Example:
Input: "funny animated movies about animals"
Output: ["Zootopia", "Madagascar", "The Secret Life of Pets", "Sing", "Kung Fu Panda"]`

const recommendSystemPrompt = `You are an enthusiastic movie recommendation assistant.
Your job is to convince the user to watch each movie you pick, not to describe it.
For every pick write one short, engaging reason that ties back to what the user asked for.

Return a JSON array in exactly this format:
[
  { "title": "Movie Title", "explanation": "A short persuasive reason this movie fits the request." }
]

Keep the reasons conversational and specific, for example:
"If emotionally rich sci-fi like Interstellar is your thing, this hits the same notes."
Do not summarize the plot. Focus on why the user would enjoy it.`

// TitlePrompt builds the title-list prompt: the model answers with a JSON array of strings
func TitlePrompt(query string, limit int) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: titleSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(
			"List up to %d movies that match this description: %q.\nReturn a JSON array of clean titles only, like:\n[\"Title 1\", \"Title 2\", \"Title 3\"]",
			limit, query)},
	}
}

// RecommendPrompt builds the recommendation prompt: the model answers with
// a JSON array of {title, explanation} objects
func RecommendPrompt(query string, limit int) []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: recommendSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(
			"List up to %d movies that match this description: %q.", limit, query)},
	}
}
