package gcal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samborkent/uuidv7"
)

var (
	fixtureRegex = regexp.MustCompile(`(?i)^(.*?)(\s+(?:vs\.?|v)\s+|\s+[-–—]\s+)(.*)$`)
	scoreRegex   = regexp.MustCompile(`\b(\d+)\s*[-–—]\s*(\d+)\b`)
	qfRegex      = regexp.MustCompile(`(?i)\bqf\b`)
	sfRegex      = regexp.MustCompile(`(?i)\bsf\b`)
)

// icsUnescaper undoes the feed's text escaping. Escaped newlines become
// spaces so summaries stay single-line.
var icsUnescaper = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, " ", `\N`, " ")

func isClubSide(side string) bool {
	lower := strings.ToLower(side)
	for _, team := range ClubTeams {
		if strings.Contains(lower, strings.ToLower(team)) {
			return true
		}
	}
	return strings.Contains(lower, "titans")
}

// MapEventToFixture turns one raw calendar event plus its decoded date into a
// fully populated Fixture. The rules run in a fixed order and later rules may
// overwrite earlier ones; see the stage handling below.
func MapEventToFixture(event RawEvent, date time.Time, now time.Time) Fixture {
	summary := event["SUMMARY"]
	if summary == "" {
		summary = "Match"
	}
	summary = strings.TrimSpace(icsUnescaper.Replace(summary))
	description := icsUnescaper.Replace(event["DESCRIPTION"])
	location := event["LOCATION"]
	if location == "" {
		location = "TBC"
	}
	location = icsUnescaper.Replace(location)

	isHome := true
	opponent := ""
	competition := "Social"
	competitionTag := ""
	teamName := "Titans"
	status := StatusUpcoming
	if date.Before(now) {
		status = StatusCompleted
	}

	context := strings.ToLower(summary + " " + description)

	// 1. Match detection: "<A> vs <B>", "<A> v <B>" or "<A> - <B>".
	if m := fixtureRegex.FindStringSubmatch(summary); m != nil {
		competition = "Fixture"
		sideA := strings.TrimSpace(m[1])
		sideB := strings.TrimSpace(m[3])

		switch {
		case isClubSide(sideA) && isClubSide(sideB):
			// Internal derby. Orientation is not encoded, so stay home.
			teamName = sideA
			opponent = sideB
		case isClubSide(sideB):
			isHome = false
			teamName = sideB
			opponent = sideA
		default:
			teamName = sideA
			opponent = sideB
		}
	} else if strings.Contains(context, "training") {
		competition = "Training"
		teamName = summary
	} else if strings.Contains(context, "tournament") {
		competition = "Tournament"
		teamName = summary
	} else if strings.Contains(context, "club event") {
		competition = "Club Event"
		teamName = summary
	} else {
		competition = "Social"
		teamName = summary
	}

	// 2. League labels, first hit wins.
	switch {
	case strings.Contains(context, "gfsn shield"):
		competitionTag = "GFSN SHIELD"
		competition = "GFSN Shield"
	case strings.Contains(context, "gfsn"):
		competitionTag = "GFSN"
		competition = "GFSN League"
	case strings.Contains(context, "london unity league"), strings.Contains(context, "lul"):
		competitionTag = "LUL"
		competition = "London Unity League"
	case strings.Contains(context, "london dev league"), strings.Contains(context, "ldl"):
		competitionTag = "LDL"
		competition = "London Dev League"
	}

	// 3. A tournament mention always wins over a league label.
	if strings.Contains(context, "tournament") {
		competition = "Tournament"
	}

	// 4. Knockout stages. The stage name replaces the competition unless the
	// label already names the matching trophy tier.
	if strings.Contains(context, "quarter final") || qfRegex.MatchString(context) {
		if competitionTag == "" {
			competitionTag = "QF"
		}
		if !strings.Contains(strings.ToLower(competition), "shield") {
			competition = "Quarter Final"
		}
	} else if strings.Contains(context, "semi final") || sfRegex.MatchString(context) {
		if competitionTag == "" {
			competitionTag = "SF"
		}
		if !strings.Contains(strings.ToLower(competition), "plate") {
			competition = "Semi Final"
		}
	} else if strings.Contains(context, "final") && !strings.Contains(context, "semi") && !strings.Contains(context, "quarter") {
		if competitionTag == "" {
			competitionTag = "FINAL"
		}
		if !strings.Contains(strings.ToLower(competition), "cup") {
			competition = "Final"
		}
	}

	// 5. Score extraction: description first, then summary. The first number
	// belongs to side A regardless of who is at home.
	score := ""
	var result Result
	scoreMatch := scoreRegex.FindStringSubmatch(description)
	if scoreMatch == nil {
		scoreMatch = scoreRegex.FindStringSubmatch(summary)
	}
	if scoreMatch != nil {
		status = StatusCompleted
		score = scoreMatch[1] + "-" + scoreMatch[2]
		s1, _ := strconv.Atoi(scoreMatch[1])
		s2, _ := strconv.Atoi(scoreMatch[2])
		ours, theirs := s1, s2
		if !isHome {
			ours, theirs = s2, s1
		}
		switch {
		case ours > theirs:
			result = ResultWin
		case ours < theirs:
			result = ResultLoss
		default:
			result = ResultDraw
		}
	}

	id := event["UID"]
	if id == "" {
		id = uuidv7.New().String()
	}

	return Fixture{
		ID:             id,
		TeamName:       teamName,
		Opponent:       opponent,
		IsHome:         isHome,
		Date:           date,
		Location:       location,
		Competition:    competition,
		CompetitionTag: competitionTag,
		Status:         status,
		Score:          score,
		Result:         result,
	}
}
