package catalog

import "encoding/json"

// ConditionType discriminates which predicate unlocks a trophy.
type ConditionType string

const (
	ConditionPageVisit           ConditionType = "page_visit"
	ConditionVisitedCount        ConditionType = "visited_count"
	ConditionTimeSpent           ConditionType = "time_spent"
	ConditionActionPerformed     ConditionType = "action_performed"
	ConditionSectionViewed       ConditionType = "section_viewed"
	ConditionAllSectionsVisited  ConditionType = "all_sections_visited"
	ConditionAllTrophiesUnlocked ConditionType = "all_trophies_unlocked"
	ConditionSpeedNavigation     ConditionType = "speed_navigation"
	ConditionScrolledToBottom    ConditionType = "scrolled_to_bottom"
	ConditionSkillModalOpened    ConditionType = "skill_modal_opened"
)

// Condition is the unlock predicate of a trophy, one variant per
// condition_type. Catalog entries with a condition_type this build does
// not know decode to Unknown rather than failing the whole catalog.
type Condition interface {
	Type() ConditionType
}

// PageVisit is satisfied when the current path matches one of Paths and
// none of ExcludePaths.
type PageVisit struct {
	Paths        []string `json:"paths"`
	ExcludePaths []string `json:"exclude_paths,omitempty"`
}

func (PageVisit) Type() ConditionType { return ConditionPageVisit }

// VisitedCount is satisfied when the deduplicated set at StorageKey has at
// least MinCount members.
type VisitedCount struct {
	StorageKey string `json:"storage_key"`
	MinCount   int    `json:"min_count"`
}

func (VisitedCount) Type() ConditionType { return ConditionVisitedCount }

// TimeSpent is satisfied once MinMinutes have elapsed since the first visit.
type TimeSpent struct {
	MinMinutes int `json:"min_minutes"`
}

func (TimeSpent) Type() ConditionType { return ConditionTimeSpent }

// ActionPerformed is satisfied when the boolean marker at Action is set.
type ActionPerformed struct {
	Action string `json:"action"`
}

func (ActionPerformed) Type() ConditionType { return ConditionActionPerformed }

// SectionViewed is satisfied when Section has been visited.
type SectionViewed struct {
	Section string `json:"section"`
}

func (SectionViewed) Type() ConditionType { return ConditionSectionViewed }

// AllSectionsVisited is satisfied when every required section has been visited.
type AllSectionsVisited struct {
	RequiredSections []string `json:"required_sections"`
}

func (AllSectionsVisited) Type() ConditionType { return ConditionAllSectionsVisited }

// AllTrophiesUnlocked is satisfied when every other enabled trophy is unlocked.
type AllTrophiesUnlocked struct{}

func (AllTrophiesUnlocked) Type() ConditionType { return ConditionAllTrophiesUnlocked }

// SpeedNavigation is satisfied when at least MinPages page loads happened
// within MaxMinutes of the first one.
type SpeedNavigation struct {
	MinPages   int `json:"min_pages"`
	MaxMinutes int `json:"max_minutes"`
}

func (SpeedNavigation) Type() ConditionType { return ConditionSpeedNavigation }

// ScrolledToBottom is satisfied once the visitor scrolled to the bottom of
// the home page.
type ScrolledToBottom struct{}

func (ScrolledToBottom) Type() ConditionType { return ConditionScrolledToBottom }

// SkillModalOpened is satisfied once any skill detail modal was opened.
type SkillModalOpened struct{}

func (SkillModalOpened) Type() ConditionType { return ConditionSkillModalOpened }

// Unknown is the forward-compatibility catch-all for condition types newer
// than this build. It always evaluates to false.
type Unknown struct {
	Tag string
}

func (u Unknown) Type() ConditionType { return ConditionType(u.Tag) }

func decodeCondition(tag string, data json.RawMessage) (Condition, error) {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	switch ConditionType(tag) {
	case ConditionPageVisit:
		var c PageVisit
		return c, json.Unmarshal(data, &c)
	case ConditionVisitedCount:
		var c VisitedCount
		return c, json.Unmarshal(data, &c)
	case ConditionTimeSpent:
		var c TimeSpent
		return c, json.Unmarshal(data, &c)
	case ConditionActionPerformed:
		var c ActionPerformed
		return c, json.Unmarshal(data, &c)
	case ConditionSectionViewed:
		var c SectionViewed
		return c, json.Unmarshal(data, &c)
	case ConditionAllSectionsVisited:
		var c AllSectionsVisited
		return c, json.Unmarshal(data, &c)
	case ConditionAllTrophiesUnlocked:
		return AllTrophiesUnlocked{}, nil
	case ConditionSpeedNavigation:
		var c SpeedNavigation
		return c, json.Unmarshal(data, &c)
	case ConditionScrolledToBottom:
		return ScrolledToBottom{}, nil
	case ConditionSkillModalOpened:
		return SkillModalOpened{}, nil
	default:
		return Unknown{Tag: tag}, nil
	}
}
