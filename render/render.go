// Package render formats users, anime and reviews for the terminal.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/animecritique/critique/color"
	"github.com/animecritique/critique/icon"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/style"
	"github.com/animecritique/critique/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Unknown stands in for absent optional values.
const Unknown = "?"

// Stars draws round(rating) filled stars out of 5, followed by "n/5".
func Stars(rating float64) string {
	n := util.Clamp(int(math.Round(rating)), 0, 5)

	return fmt.Sprintf("%s%s %d/5",
		style.Fg(color.Star)(strings.Repeat(icon.Get(icon.Star), n)),
		style.Fg(color.Faint)(strings.Repeat(icon.Get(icon.StarEmpty), 5-n)),
		n,
	)
}

// Average renders a mean rating, or a note that nothing was rated yet.
func Average(avg mo.Option[float64], count int) string {
	if avg.IsAbsent() {
		return style.Faint("no reviews yet")
	}
	return fmt.Sprintf("%s %s (%s)",
		style.Fg(color.Score)(strconv.FormatFloat(avg.MustGet(), 'f', 1, 64)),
		Stars(avg.MustGet()),
		util.Quantify(count, "review", "reviews"),
	)
}

func orUnknown[T any](v *T, format func(T) string) string {
	if v == nil {
		return Unknown
	}
	return format(*v)
}

func itoa(n int) string { return strconv.Itoa(n) }

func id[T any](v T) T { return v }

// User is a short profile card.
func User(u model.User) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		icon.Get(icon.User),
		style.Bold(style.Fg(color.Username)(u.Username)),
		style.Faint("#"+itoa(u.ID)),
	)
	fmt.Fprintln(&b, u.Email)

	if u.CreatedAt != nil {
		fmt.Fprintln(&b, style.Faint("member since "+*u.CreatedAt))
	}

	if s := u.Stats; s != nil {
		avg, err := s.AverageRating.Float()
		rating := Unknown
		if err == nil {
			rating = strconv.FormatFloat(avg, 'f', 2, 64)
		}

		fmt.Fprintf(&b, "%s · %s · %s · average %s\n",
			util.Quantify(s.TotalReviews, "review", "reviews"),
			util.Quantify(s.TotalWatched, "watched", "watched"),
			util.Quantify(s.TotalWatchlist, "on watchlist", "on watchlist"),
			style.Fg(color.Score)(rating),
		)
	}

	return strings.TrimRight(b.String(), "\n")
}

// AnimeLine is a one-line summary for lists.
func AnimeLine(a model.Anime, width int) string {
	meta := []string{
		orUnknown(a.Type, id[string]),
		orUnknown(a.Year, itoa),
	}

	line := fmt.Sprintf("%s %s %s %s",
		style.Faint(fmt.Sprintf("%6d", a.MalID)),
		style.Fg(color.Score)(orUnknown(a.Score, formatScore)),
		a.Name(),
		style.Faint("("+strings.Join(meta, ", ")+")"),
	)

	if width > 0 {
		return truncate.StringWithTail(line, uint(width), "…")
	}
	return line
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

// Anime is a full card: titles, facts, cover and synopsis wrapped to width.
func Anime(a model.Anime, width int) string {
	var b strings.Builder

	fmt.Fprintln(&b, style.Title(a.Title))
	if a.TitleEnglish != nil && *a.TitleEnglish != a.Title {
		fmt.Fprintln(&b, style.Italic(*a.TitleEnglish))
	}
	fmt.Fprintln(&b)

	facts := [][2]string{
		{"MAL id", itoa(a.MalID)},
		{"Score", orUnknown(a.Score, formatScore)},
		{"Type", orUnknown(a.Type, id[string])},
		{"Year", orUnknown(a.Year, itoa)},
		{"Episodes", orUnknown(a.Episodes, itoa)},
		{"Status", orUnknown(a.Status, id[string])},
		{"Cover", lo.Ternary(a.Cover() == "", Unknown, a.Cover())},
	}
	for _, f := range facts {
		fmt.Fprintf(&b, "%s %s\n", style.Fg(color.Accent)(fmt.Sprintf("%-9s", f[0])), f[1])
	}

	if a.Synopsis != nil && strings.TrimSpace(*a.Synopsis) != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, wrap(*a.Synopsis, width))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Review is a review card; the anime title and author are shown when the backend sent them.
func Review(r model.Review, width int) string {
	var b strings.Builder

	header := []string{Stars(r.Rating)}
	if r.AnimeTitle != nil {
		header = append(header, style.Bold(*r.AnimeTitle))
	}
	if r.Username != nil {
		header = append(header, style.Fg(color.Username)("@"+*r.Username))
	}
	fmt.Fprintln(&b, strings.Join(header, "  "))

	date := r.CreatedAt
	if r.UpdatedAt != nil {
		date += ", edited " + *r.UpdatedAt
	}
	fmt.Fprintln(&b, style.Faint(fmt.Sprintf("#%d · %s", r.ID, date)))
	fmt.Fprint(&b, wrap(r.Text, width))

	return b.String()
}

// Decline shows what the backend refused, one line per field error.
func Decline(d *outcome.Decline) string {
	return fmt.Sprintf("%s %s", icon.Get(icon.Decline), style.Fg(color.Decline)(d.Display()))
}

// Failure shows a request that did not complete.
func Failure(t *outcome.TransportError) string {
	return fmt.Sprintf("%s %s", icon.Get(icon.Fail), style.Fg(color.Failure)(t.Error()))
}

// Success is a transient confirmation.
func Success(msg string) string {
	return fmt.Sprintf("%s %s", icon.Get(icon.Success), msg)
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(strings.TrimSpace(s), width)
}
