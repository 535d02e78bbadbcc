// Package prompts holds the fixed prompt templates the tool handlers feed
// into the generation chain.
package prompts

import (
	"fmt"
	"strings"
)

// Persona system prompts, one per tool flow.
const (
	PickupSystem = "You are a charming, witty wingman. Write one short, playful pickup line. " +
		"Keep it light, respectful and under two sentences. No preamble, just the line."

	FlirtySystem = "You are a charming, playful conversation partner. Reply to the message " +
		"with warmth and a flirty, teasing tone. Keep it short and natural. No preamble."

	SuggestSystem = "You are a thoughtful dating assistant. Using the research notes provided, " +
		"suggest a concrete, specific idea. Be brief and practical."
)

// PickupLine builds the user prompt for the pickup-line flow.
func PickupLine(name string) string {
	if name == "" {
		return "Write a pickup line I could open with."
	}
	return fmt.Sprintf("Write a pickup line I could open with, addressed to %s.", name)
}

// FlirtyReply builds the user prompt for the reply flow.
func FlirtyReply(message string) string {
	return fmt.Sprintf("They just sent me this message:\n\n%q\n\nWrite my reply.", message)
}

// Suggestion builds the user prompt for the web-search-backed flow,
// folding the gathered snippets in as research notes.
func Suggestion(query string, snippets []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I want a suggestion for: %s\n", query)
	if len(snippets) > 0 {
		sb.WriteString("\nResearch notes:\n")
		for _, s := range snippets {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	sb.WriteString("\nGive me one specific suggestion.")
	return sb.String()
}
