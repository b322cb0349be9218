// Package gemini implements [tutor.ChatModel] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating the caller-owned
// conversation history into Gemini contents. A genai client is built per
// call because the API key is resolved fresh from the settings store on
// every request.
package gemini

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 8192
)
