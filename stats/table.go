package stats

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// PrintSummary renders a Summary as an aligned key/value box, matching the
// CLI's table style for every other report it prints.
func PrintSummary(title string, s Summary) string {
	p := message.NewPrinter(lang)
	keys := []string{"Rounds Played", "EV/100", "EV/100 95% CI", "SD/100", "DI", "Score", "N0", "Avg Bet"}
	vals := map[string]string{
		"Rounds Played":  p.Sprintf("%d", s.RoundsPlayed),
		"EV/100":         p.Sprintf("%.4f", s.EVPer100),
		"EV/100 95% CI":  p.Sprintf("[%.4f, %.4f]", s.EVPer100CI.Lo, s.EVPer100CI.Hi),
		"SD/100":         p.Sprintf("%.4f", s.SDPer100),
		"DI":             p.Sprintf("%.4f", s.DI),
		"Score":          p.Sprintf("%.2f", s.Score),
		"Avg Bet":        p.Sprintf("%.3f", s.AvgInitialBet),
	}
	if s.N0Valid {
		vals["N0"] = p.Sprintf("%.0f", s.N0)
	} else {
		vals["N0"] = "n/a"
	}
	return fmtTable(title, keys, vals)
}

// FormatDuration renders elapsed wall time alongside a rounds/sec rate,
// switching from seconds to h/m/s once the run crosses a minute.
func FormatDuration(d time.Duration, rounds int64) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	rps := int64(float64(rounds) / sec)
	if sec < 60 {
		return p.Sprintf("used: %.2f seconds\nrounds/sec: %d\n", sec, rps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nrounds/sec: %d\n", m, s, rps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nrounds/sec: %d\n", h, m, s, rps)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen, maxValLen := 0, 0
	for k, v := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(v); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	out := top
	out += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	out += divider
	for _, k := range keys {
		out += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	out += divider
	return out
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
