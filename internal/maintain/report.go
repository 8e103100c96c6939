package maintain

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dsmmcken/osh/internal/history"
)

// Report is the set of aggregate statistics computed over the full
// merged event stream.
type Report struct {
	Empty            bool
	Start            time.Time
	End              time.Time
	ActiveDays       int
	TotalDays        int
	EventCount       int
	SuccessCount     int
	FailureCount     int
	SuccessRate      float64
	ActiveDayAverage int
}

// BuildReport summarizes events, which must be newest-first (the
// order the merge reader produces).
func BuildReport(events []history.Event) Report {
	if len(events) == 0 {
		return Report{Empty: true}
	}

	last := events[0]
	first := events[len(events)-1]
	start, end := first.Timestamp, last.Timestamp
	totalDays := int(end.Sub(start).Hours() / 24)

	days := make(map[string]bool)
	success := 0
	for _, e := range events {
		days[e.Timestamp.Format("2006-01-02")] = true
		if e.ExitCode == nil || *e.ExitCode == 0 {
			success++
		}
	}
	activeDays := len(days)
	failure := len(events) - success
	avg := 0
	if activeDays > 0 {
		avg = len(events) / activeDays
	}

	return Report{
		Start:            start,
		End:              end,
		ActiveDays:       activeDays,
		TotalDays:        totalDays,
		EventCount:       len(events),
		SuccessCount:     success,
		FailureCount:     failure,
		SuccessRate:      float64(success) / float64(len(events)),
		ActiveDayAverage: avg,
	}
}

// epithets is the pool of adjectives the Commander's situation report
// picks from to describe the user's daily command volume.
var epithets = []string{
	"amazing", "excellent", "exceptional", "eximious", "extraordinary",
	"fantastic", "inconceivable", "incredible", "legendary", "marvelous",
	"mind-blowing", "outlandish", "outrageous", "phenomenal", "preposterous",
	"radical", "remarkable", "shocking", "striking", "stupendous",
	"superb", "surprising", "terrific", "unbelievable", "unheard-of",
	"unimaginable", "wicked",
}

// FlavorText renders r as the "Commander's situation report" the CLI
// prints for `report`.
func FlavorText(r Report) string {
	var b strings.Builder
	b.WriteString("\nHello Commander, your situation report:\n\n")

	if r.Empty {
		b.WriteString("  No data as of yet.\n")
		b.WriteString("\n-- Good day, Commander.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  Our classified documents cover your history from %s to %s.\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "  You have been on active duty for %s days out of a total %s days in the service.\n\n",
		groupThousands(r.ActiveDays), groupThousands(r.TotalDays))
	fmt.Fprintf(&b, "  Throughout your service you made %s decisions.\n", groupThousands(r.EventCount))

	epic := epithets[rand.Intn(len(epithets))]
	article := "a"
	if strings.ContainsRune("aeiouAEIOU", rune(epic[0])) {
		article = "an"
	}
	fmt.Fprintf(&b, "  Sir, that's %s \x1b[3m%s\x1b[0m %s decisions per day when on active duty.\n\n",
		article, epic, groupThousands(r.ActiveDayAverage))

	fmt.Fprintf(&b, "  Only %s of your efforts have met with failure.\n", groupThousands(r.FailureCount))
	fmt.Fprintf(&b, "  Your success rate is confirmed at %d over one hundred.\n", round(r.SuccessRate*100))
	b.WriteString("\n-- Good day, Commander.\n")
	return b.String()
}

func round(v float64) int {
	return int(math.Round(v))
}

// groupThousands formats n with a ' every three digits, matching the
// original report's digit grouping.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, "'")
	if neg {
		out = "-" + out
	}
	return out
}
