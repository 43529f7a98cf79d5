package assistant

import "strings"

var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"contact", "email", "reach"},
		reply:    "You can reach out through the contact form on this site and I'll get back to you as soon as I can.",
	},
	{
		keywords: []string{"project", "work", "portfolio", "built"},
		reply:    "Have a look at the posts section for a tour of recent projects and what went into building them.",
	},
	{
		keywords: []string{"resume", "cv", "experience", "career"},
		reply:    "The journey section walks through my experience year by year, and the documents section has downloadable copies.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hi there! Feel free to ask about my projects, experience, or how to get in touch.",
	},
}

const defaultReply = "Thanks for asking! Browse the posts and journey sections to learn more, or use the contact form to send a message directly."

// CannedReply matches the prompt against a small keyword table. It always
// returns something, so a dead upstream never leaves the visitor hanging.
func CannedReply(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, c := range cannedReplies {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.reply
			}
		}
	}
	return defaultReply
}
