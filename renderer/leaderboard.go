package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/simtrade"
	md "github.com/nao1215/markdown"
)

// LeaderboardMarkdown renders ranked entries. ranked must come from
// simtrade.Rank.
func LeaderboardMarkdown(ranked []simtrade.LeaderboardEntry, period simtrade.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Leaderboard (%s)", period))
	if len(ranked) == 0 {
		doc.PlainText("No score submitted yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"#", "Player", "Game", "ROI", "Profit", "Trades", "Days"},
	}
	for _, e := range ranked {
		table.Rows = append(table.Rows, []string{
			itoa(e.Rank), e.Username, e.GameName, e.ROI.SignedString(), e.Profit.SignedString(), itoa(e.Trades), itoa(e.DaysPlayed),
		})
	}
	doc.Table(table)

	s := simtrade.LeaderboardSummary(ranked)
	doc.PlainText(fmt.Sprintf("%d scores, average ROI %s, best %s.", s.Entries, s.AverageROI.SignedString(), s.HighestROI.SignedString()))
	return doc.String()
}

// AchievementsMarkdown renders every achievement, unlocked ones with their
// unlock date, others with their progress in c.
func AchievementsMarkdown(unlocked map[string]time.Time, c simtrade.AchievementContext) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	points, total := 0, 0
	for _, a := range simtrade.Achievements {
		total += a.Points
		if _, ok := unlocked[a.ID]; ok {
			points += a.Points
		}
	}
	doc.H1(fmt.Sprintf("Achievements (%d/%d points)", points, total))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Achievement", "Description", "Category", "Points", "Status"},
	}
	for _, a := range simtrade.Achievements {
		status := ""
		switch at, ok := unlocked[a.ID]; {
		case ok:
			status = "unlocked " + at.Format("2006-01-02")
		case a.Target > 0:
			status = fmt.Sprintf("%d/%d", a.Progress(c), a.Target)
		}
		name := a.Name
		if _, ok := unlocked[a.ID]; ok {
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{name, a.Description, string(a.Category), itoa(a.Points), status})
	}
	doc.Table(table)
	return doc.String()
}
