package engine

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/clixmods/trophies/internal/catalog"
	"github.com/clixmods/trophies/internal/storage"
)

// Satisfied reports whether a trophy's condition holds under the given
// context. A panicking evaluator never takes the pass down: it is logged and
// treated as not satisfied.
func Satisfied(def catalog.Definition, ctx EvalContext, logger *zap.Logger) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error(
					"trophy condition panicked",
					zap.String("trophy", def.ID),
					zap.Any("panic", r),
				)
			}
			ok = false
		}
	}()

	switch c := def.Condition.(type) {
	case catalog.PageVisit:
		return pathMatches(ctx.Path, c)
	case catalog.VisitedCount:
		return len(ctx.Counters.Sets[c.StorageKey]) >= c.MinCount
	case catalog.TimeSpent:
		if ctx.Counters.VisitStartMillis == 0 {
			return false
		}
		elapsed := ctx.Now.Sub(time.UnixMilli(ctx.Counters.VisitStartMillis))
		return elapsed >= time.Duration(c.MinMinutes)*time.Minute
	case catalog.ActionPerformed:
		return ctx.Counters.Actions[c.Action]
	case catalog.SectionViewed:
		return lo.Contains(ctx.Counters.Sets[storage.KeyVisitedSections], c.Section)
	case catalog.AllSectionsVisited:
		return lo.Every(ctx.Counters.Sets[storage.KeyVisitedSections], c.RequiredSections)
	case catalog.AllTrophiesUnlocked:
		others := lo.Filter(ctx.Counters.EnabledIDs, func(id string, _ int) bool {
			return id != def.ID
		})
		return len(others) > 0 && lo.Every(ctx.Counters.Unlocked, others)
	case catalog.SpeedNavigation:
		nav := ctx.Counters.SpeedNav
		if nav.StartTime == 0 || nav.Pages < c.MinPages {
			return false
		}
		elapsed := ctx.Now.Sub(time.UnixMilli(nav.StartTime))
		return elapsed <= time.Duration(c.MaxMinutes)*time.Minute
	case catalog.ScrolledToBottom:
		return ctx.Counters.Actions[storage.KeyScrolledBottom]
	case catalog.SkillModalOpened:
		return ctx.Counters.Actions[storage.KeySkillModalOpened]
	default:
		if logger != nil {
			logger.Warn(
				"unsupported trophy condition",
				zap.String("trophy", def.ID),
				zap.String("type", string(def.Condition.Type())),
			)
		}
		return false
	}
}

// pathMatches implements the page_visit rules. Exclusions win over matches.
// A pattern ending in "/" names a listing page: it only matches paths that go
// deeper than the listing itself, so "/projects/" is satisfied by an actual
// project page and not by the index. "/" matches the home page exactly.
func pathMatches(path string, c catalog.PageVisit) bool {
	for _, ex := range c.ExcludePaths {
		if ex != "" && strings.Contains(path, ex) {
			return false
		}
	}
	for _, p := range c.Paths {
		switch {
		case p == "":
			continue
		case p == "/":
			if path == "/" {
				return true
			}
		case strings.HasSuffix(p, "/"):
			if path != p && strings.Contains(path, p) {
				return true
			}
		default:
			if strings.Contains(path, p) {
				return true
			}
		}
	}
	return false
}
