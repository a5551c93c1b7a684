// Package mood holds the fixed mood set and the per-mood content tables
// shown after a journal entry.
package mood

import "math/rand"

// Option is one selectable mood.
type Option struct {
	Name  string
	Emoji string
}

// Options in display order.
func Options() []Option {
	return []Option{
		{Name: "happy", Emoji: "😊"},
		{Name: "sad", Emoji: "😢"},
		{Name: "anxious", Emoji: "😰"},
		{Name: "tired", Emoji: "😴"},
		{Name: "motivated", Emoji: "💪"},
		{Name: "excited", Emoji: "🤩"},
	}
}

// Valid reports whether name is one of the fixed moods.
func Valid(name string) bool {
	for _, opt := range Options() {
		if opt.Name == name {
			return true
		}
	}
	return false
}

// Emoji returns the emoji for a mood, empty for unknown moods.
func Emoji(name string) string {
	for _, opt := range Options() {
		if opt.Name == name {
			return opt.Emoji
		}
	}
	return ""
}

var phrases = map[string][]string{
	"happy": {
		"So good to see you glowing like this! Keep spreading that light! ✨",
		"Your happiness is contagious! Enjoy every moment! 🌟",
		"Days like this deserve celebrating! You are shining! 💫",
	},
	"sad": {
		"It's okay to feel this way sometimes. You are stronger than you think 💙",
		"Remember: after the rain there is always a rainbow 🌈",
		"Your feelings are valid. Tomorrow can be a fresh start 🌱",
	},
	"anxious": {
		"Breathe deep. You have survived 100% of your hard days so far 🌸",
		"Anxiety does not define you. You are capable and brave 💪",
		"One step at a time. You don't have to solve everything today 🦋",
	},
	"tired": {
		"Resting is not laziness, it's self-care. Be gentle with yourself 🌙",
		"You've been doing your best. Allow yourself a well-earned pause ☁️",
		"Energy comes back with rest. Take good care of yourself 💤",
	},
	"motivated": {
		"That energy is amazing! Channel it into your dreams! 🚀",
		"When you're motivated, the whole world conspires in your favor! ⭐",
		"Your determination is inspiring! Go for it! 🔥",
	},
	"excited": {
		"What wonderful energy! The world needs your vibe! ✨",
		"Your excitement is contagious! Spread that joy around! 🎉",
		"Days like this are life's gifts! Enjoy every second! 🌈",
	},
}

var music = map[string][]string{
	"happy":     {"Upbeat pop", "Brazilian music", "Dance music"},
	"sad":       {"Lo-fi", "Classical", "Melancholic indie"},
	"anxious":   {"Relaxing music", "Nature sounds", "Meditation"},
	"tired":     {"Ambient", "Smooth jazz", "Bossa nova"},
	"motivated": {"Rock", "Electronic", "Hip hop"},
	"excited":   {"Funk", "Dance pop", "Reggaeton"},
}

// Phrase picks one of the mood's motivational phrases at random. Unknown
// moods get an empty string.
func Phrase(name string) string {
	pool := phrases[name]
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}

// Music returns the suggested genres for a mood.
func Music(name string) []string {
	return music[name]
}
