package storage

// Keys shared with the browser build of the portfolio. The literal strings
// are part of the persisted contract and must never change.
const (
	KeyUnlocked        = "unlockedTrophies"
	KeyVisitedSections = "visitedSections"
	KeyVisitedProjects = "visitedProjects"
	KeySocialClicks    = "socialClicks"
	KeySpeedNavigation = "speedNavigation"
	KeyScrolledBottom  = "scrolledToBottomHome"
	KeyCompletionShown = "completion100Shown"
	KeyVisitStartTime  = "visitStartTime"

	// Action markers set by page collaborators the moment the user acts.
	KeyCVDownloaded       = "cvDownloaded"
	KeySkillModalOpened   = "skillModalOpened"
	KeyDiscordModalOpened = "discordModalOpened"
)

// UnlockDateKey returns the per-trophy key holding the unlock date.
func UnlockDateKey(id string) string {
	return "trophy_" + id + "_date"
}
