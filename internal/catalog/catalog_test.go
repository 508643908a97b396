package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersDisabledAndSorts(t *testing.T) {
	doc := `[
		{"id":"b","name":"B","order":20,"enabled":true,"condition_type":"scrolled_to_bottom"},
		{"id":"off","name":"Off","order":5,"enabled":false,"condition_type":"scrolled_to_bottom"},
		{"id":"a","name":"A","order":10,"enabled":true,"condition_type":"skill_modal_opened"}
	]`

	defs, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, IDs(defs), "Expected disabled entries dropped and remainder ordered")
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := Parse([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestDefinitionUnmarshalDispatchesConditions(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, c Condition)
	}{
		{
			name: "page visit with excludes",
			doc:  `{"id":"x","enabled":true,"condition_type":"page_visit","condition_data":{"paths":["/posts/"],"exclude_paths":["/posts/page/"]}}`,
			check: func(t *testing.T, c Condition) {
				pv, ok := c.(PageVisit)
				require.True(t, ok)
				assert.Equal(t, []string{"/posts/"}, pv.Paths)
				assert.Equal(t, []string{"/posts/page/"}, pv.ExcludePaths)
			},
		},
		{
			name: "visited count",
			doc:  `{"id":"x","enabled":true,"condition_type":"visited_count","condition_data":{"storage_key":"visitedProjects","min_count":3}}`,
			check: func(t *testing.T, c Condition) {
				vc, ok := c.(VisitedCount)
				require.True(t, ok)
				assert.Equal(t, "visitedProjects", vc.StorageKey)
				assert.Equal(t, 3, vc.MinCount)
			},
		},
		{
			name: "speed navigation",
			doc:  `{"id":"x","enabled":true,"condition_type":"speed_navigation","condition_data":{"min_pages":5,"max_minutes":3}}`,
			check: func(t *testing.T, c Condition) {
				sn, ok := c.(SpeedNavigation)
				require.True(t, ok)
				assert.Equal(t, 5, sn.MinPages)
				assert.Equal(t, 3, sn.MaxMinutes)
			},
		},
		{
			name: "missing condition data decodes to zero value",
			doc:  `{"id":"x","enabled":true,"condition_type":"time_spent"}`,
			check: func(t *testing.T, c Condition) {
				ts, ok := c.(TimeSpent)
				require.True(t, ok)
				assert.Equal(t, 0, ts.MinMinutes)
			},
		},
		{
			name: "unknown tag decodes to Unknown",
			doc:  `{"id":"x","enabled":true,"condition_type":"konami_code","condition_data":{"sequence":["up","up"]}}`,
			check: func(t *testing.T, c Condition) {
				u, ok := c.(Unknown)
				require.True(t, ok, "Expected forward-incompatible tags to decode to Unknown")
				assert.Equal(t, "konami_code", u.Tag)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var def Definition
			require.NoError(t, def.UnmarshalJSON([]byte(tt.doc)))
			tt.check(t, def.Condition)
		})
	}
}

func TestFallbackCatalogs(t *testing.T) {
	for _, locale := range []string{"en", "fr", "de", ""} {
		t.Run("locale "+locale, func(t *testing.T) {
			defs := Fallback(locale)
			require.NotEmpty(t, defs, "Fallback catalog must keep the engine operational offline")

			seen := map[ConditionType]bool{}
			for _, def := range defs {
				assert.True(t, def.Enabled)
				seen[def.Condition.Type()] = true
			}

			// The fallback covers the full condition-type variety
			for _, ct := range []ConditionType{
				ConditionPageVisit, ConditionVisitedCount, ConditionTimeSpent,
				ConditionActionPerformed, ConditionSectionViewed,
				ConditionAllSectionsVisited, ConditionAllTrophiesUnlocked,
				ConditionSpeedNavigation, ConditionScrolledToBottom,
				ConditionSkillModalOpened,
			} {
				assert.True(t, seen[ct], "fallback is missing condition type %s", ct)
			}
		})
	}
}

func TestFallbackLocalesStayInSync(t *testing.T) {
	assert.Equal(t, IDs(Fallback("en")), IDs(Fallback("fr")),
		"Expected every locale variant to define the same trophies")
}
