package scoring

import "sort"

// PlayoffCutoffRank is the standings rank that marks the playoff line.
const PlayoffCutoffRank = 4

// LongestStreak returns the longest run of consecutive wins when the
// profile's decided picks are ordered by week then slot. A loss or tie resets
// the run; weeks with no decided pick are simply absent and do not reset.
func LongestStreak(results []PickResult) int {
	ordered := make([]PickResult, 0, len(results))
	for _, r := range results {
		if r.Decided {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Week != ordered[j].Week {
			return ordered[i].Week < ordered[j].Week
		}
		return ordered[i].Slot < ordered[j].Slot
	})

	var longest, current int
	for _, r := range ordered {
		if r.Correct {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	return longest
}

// BuildSeasonLines folds per-pick results into one line per profile.
// displayNames maps profile id to the name shown on leaderboards; a missing
// entry falls back to the profile id so ordering stays deterministic.
func BuildSeasonLines(results []PickResult, displayNames map[string]string) []SeasonLine {
	byProfile := make(map[string][]PickResult)
	for _, r := range results {
		byProfile[r.ProfileID] = append(byProfile[r.ProfileID], r)
	}

	lines := make([]SeasonLine, 0, len(byProfile))
	for profileID, rs := range byProfile {
		line := SeasonLine{ProfileID: profileID, DisplayName: displayNames[profileID]}
		if line.DisplayName == "" {
			line.DisplayName = profileID
		}
		for _, r := range rs {
			if !r.Decided {
				continue
			}
			line.Points += r.Points
			line.DecidedPicks++
			if r.Correct {
				line.CorrectPicks++
			}
		}
		line.LongestStreak = LongestStreak(rs)
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].ProfileID < lines[j].ProfileID
	})

	return lines
}

func (l SeasonLine) avgPoints() float64 {
	if l.DecidedPicks == 0 {
		return 0
	}
	return l.Points / float64(l.DecidedPicks)
}

func (l SeasonLine) accuracy() float64 {
	if l.DecidedPicks == 0 {
		return 0
	}
	return float64(l.CorrectPicks) / float64(l.DecidedPicks)
}

// ComputeLeaderboards produces the three orderings. Every ordering breaks
// ties by season points total descending, then display name ascending.
func ComputeLeaderboards(lines []SeasonLine) Leaderboards {
	return Leaderboards{
		ByAvgPoints: rankBy(lines, func(l SeasonLine) float64 { return l.avgPoints() }),
		ByAccuracy:  rankBy(lines, func(l SeasonLine) float64 { return l.accuracy() }),
		ByLongestStreak: rankBy(lines, func(l SeasonLine) float64 {
			return float64(l.LongestStreak)
		}),
	}
}

func rankBy(lines []SeasonLine, metric func(SeasonLine) float64) []LeaderboardEntry {
	sorted := make([]SeasonLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		mi, mj := metric(sorted[i]), metric(sorted[j])
		if mi != mj {
			return mi > mj
		}
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	rank := 0
	var prev float64
	for i, l := range sorted {
		m := metric(l)
		if i == 0 || m != prev {
			rank++
			prev = m
		}
		entries = append(entries, LeaderboardEntry{
			Rank:          rank,
			ProfileID:     l.ProfileID,
			DisplayName:   l.DisplayName,
			Points:        l.Points,
			AvgPoints:     l.avgPoints(),
			Accuracy:      l.accuracy(),
			LongestStreak: l.LongestStreak,
		})
	}

	return entries
}

// ComputeStandings orders lines by season points descending and annotates
// each row with its margin behind the leader and behind the playoff cutoff.
// Ranks are dense: equal point totals share a rank.
func ComputeStandings(lines []SeasonLine) []StandingRow {
	sorted := make([]SeasonLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].DisplayName < sorted[j].DisplayName
	})

	var cutoff float64
	if len(sorted) >= PlayoffCutoffRank {
		cutoff = sorted[PlayoffCutoffRank-1].Points
	}

	rows := make([]StandingRow, 0, len(sorted))
	rank := 0
	var prev float64
	for i, l := range sorted {
		if i == 0 || l.Points != prev {
			rank++
			prev = l.Points
		}
		row := StandingRow{
			Rank:        rank,
			ProfileID:   l.ProfileID,
			DisplayName: l.DisplayName,
			Points:      l.Points,
		}
		if len(sorted) > 0 {
			row.BackFromFirst = sorted[0].Points - l.Points
		}
		if len(sorted) >= PlayoffCutoffRank {
			row.BackToPlayoffs = cutoff - l.Points
		}
		rows = append(rows, row)
	}

	return rows
}
