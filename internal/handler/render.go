package handler

import (
	"fmt"
	"strings"

	"flashcarder/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const progressWidth = 10

var difficultyLabels = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "😌 Easy",
	domain.DifficultyMedium: "🤔 Medium",
	domain.DifficultyHard:   "😵 Hard",
}

// cardText renders the current card, front or back
func cardText(v domain.CardView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📚 Flashcard: %s\n", v.Topic)
	fmt.Fprintf(&b, "Card %d of %d · remembered %d/%d\n", v.Position(), v.Total, v.Remembered, v.Total)
	b.WriteString(progressBar(v.Progress(), progressWidth))
	b.WriteString("\n\n")

	if v.Flipped {
		fmt.Fprintf(&b, "%s\n👉 %s\n", v.Entry.Word, v.Entry.Translation)
	} else {
		fmt.Fprintf(&b, "%s\n(tap 🔄 Flip to see the translation)\n", v.Entry.Word)
	}

	b.WriteString("\n")
	if v.Entry.Remembered {
		b.WriteString("✅ Remembered")
	} else {
		b.WriteString("⬜ Not remembered yet")
	}
	fmt.Fprintf(&b, " · difficulty: %s", v.Entry.Difficulty)

	return b.String()
}

// progressBar draws ratio in [0, 1] as a fixed-width bar
func progressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// cardMarkup builds the card controls. Prev/next are left out for a single-card deck.
func cardMarkup(v domain.CardView) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	flipText := "🔄 Flip"
	if v.Flipped {
		flipText = "🔄 Show word"
	}
	flip := markup.Data(flipText, btnFlip.Unique)

	if v.CanNavigate {
		rows = append(rows, markup.Row(
			markup.Data("◀️", btnPrev.Unique),
			flip,
			markup.Data("▶️", btnNext.Unique),
		))
	} else {
		rows = append(rows, markup.Row(flip))
	}

	rememberText := "☑️ Mark remembered"
	if v.Entry.Remembered {
		rememberText = "↩️ Not remembered"
	}
	rows = append(rows, markup.Row(markup.Data(rememberText, btnRemembered.Unique)))

	levels := tele.Row{}
	for _, level := range domain.Difficulties {
		label := difficultyLabels[level]
		if level == v.Entry.Difficulty {
			label = "• " + label
		}
		levels = append(levels, markup.Data(label, btnDifficulty.Unique, string(level)))
	}
	rows = append(rows, levels)

	rows = append(rows, markup.Row(btnNewDeck, btnMainMenu))

	markup.Inline(rows...)
	return markup
}
