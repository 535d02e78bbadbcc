// Package fallback produces canned responses when no remote provider
// yields usable text. Output is always non-empty; callers tag it with the
// "fallback" provider marker.
package fallback

import (
	"math/rand"
	"strings"
	"unicode"
)

// Options selects the template family and fills its placeholders.
type Options struct {
	// Kind picks the template family ("pickup_line", "flirty_reply").
	// Unrecognized kinds get the generic assistant line.
	Kind string
	// Name is the addressee, substituted for {name} in templates.
	Name string
}

// KindPickupLine and KindFlirtyReply are the recognized template families.
const (
	KindPickupLine  = "pickup_line"
	KindFlirtyReply = "flirty_reply"
)

// genericReply is returned for unrecognized kinds.
const genericReply = "I'm here to help! Tell me a bit more about what you're looking for."

var pickupLines = []string{
	"Are you a magician, {name}? Because whenever I look at you, everyone else disappears.",
	"Do you have a map, {name}? I keep getting lost in your eyes.",
	"If being gorgeous were a crime, {name}, you'd be in serious trouble.",
	"Are you French? Because Eiffel for you, {name}.",
	"I must be a snowflake, {name}, because I've fallen for you.",
	"Is your name Google, {name}? Because you're everything I've been searching for.",
}

var flirtyReplies = []string{
	"You always know just what to say, don't you? 😏",
	"Careful, keep talking like that and I might start to like you.",
	"Smooth. Very smooth. I'm impressed.",
	"You're trouble, aren't you? I like trouble.",
	"Flattery will get you everywhere with me.",
}

var (
	greetingWords  = []string{"hi", "hey", "hello", "good morning", "good evening"}
	gratitudeWords = []string{"thank", "thanks", "thx", "appreciate"}
	apologyWords   = []string{"sorry", "apolog", "my bad", "forgive"}
)

const (
	greetingReply  = "Well hello there! I was hoping you'd say hi first. 😊"
	gratitudeReply = "Anything for you! That smile of yours is thanks enough."
	apologyReply   = "Already forgiven. I can't stay mad at someone this charming."
)

// Render returns a canned response for the message. The result is drawn
// from a fixed candidate family chosen by opts.Kind; within a family,
// simple keyword matches on the lowercased message pick a more specific
// line before falling back to a uniform random member.
func Render(message string, opts Options) string {
	switch opts.Kind {
	case KindPickupLine:
		return fillName(pick(pickupLines), opts.Name)
	case KindFlirtyReply:
		lower := strings.ToLower(message)
		switch {
		case containsAny(lower, greetingWords):
			return greetingReply
		case containsAny(lower, gratitudeWords):
			return gratitudeReply
		case containsAny(lower, apologyWords):
			return apologyReply
		default:
			return pick(flirtyReplies)
		}
	default:
		return genericReply
	}
}

// Candidates returns the full candidate set for a kind, placeholders
// unfilled. Unrecognized kinds yield the single generic line.
func Candidates(kind string) []string {
	switch kind {
	case KindPickupLine:
		return append([]string(nil), pickupLines...)
	case KindFlirtyReply:
		all := append([]string(nil), flirtyReplies...)
		return append(all, greetingReply, gratitudeReply, apologyReply)
	default:
		return []string{genericReply}
	}
}

func pick(candidates []string) string {
	return candidates[rand.Intn(len(candidates))]
}

func fillName(template, name string) string {
	if name == "" {
		name = pick([]string{"beautiful", "gorgeous"})
	}
	return strings.ReplaceAll(template, "{name}", name)
}

// containsAny matches keywords against the message. Single short words
// must match a whole token (so "hi" does not fire on "this"); longer words
// match as token prefixes ("thank" fires on "thanks"); phrases match as
// substrings.
func containsAny(s string, words []string) bool {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(s, w) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == w || (len(w) > 4 && strings.HasPrefix(tok, w)) {
				return true
			}
		}
	}
	return false
}
