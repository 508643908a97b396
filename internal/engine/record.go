package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/clixmods/trophies/internal/storage"
	"github.com/clixmods/trophies/pkg/debounce"
)

// bottomThreshold is how close to the end of the page, in pixels, a scroll
// sample must land to count as reaching the bottom.
const bottomThreshold = 100

var sectionPrefixes = []struct {
	prefix  string
	section string
}{
	{"/skills", "skills"},
	{"/projects", "projects"},
	{"/posts", "posts"},
	{"/educations", "educations"},
	{"/experiences", "experiences"},
}

// RecordVisit registers navigation to a page. It stamps the first-visit time,
// folds the page into the visited-section and visited-project sets, and
// advances the speed-navigation window. It does not run an evaluation pass;
// call Evaluate after a batch of recordings, or let the background pass pick
// them up.
func (e *Engine) RecordVisit(path string) {
	now := e.opts.Clock()

	e.mu.Lock()
	e.currentPath = path
	e.mu.Unlock()

	if _, ok := e.kv.Millis(storage.KeyVisitStartTime); !ok {
		e.kv.SetMillis(storage.KeyVisitStartTime, now.UnixMilli())
	}
	if section, ok := sectionForPath(path); ok {
		e.kv.AppendString(storage.KeyVisitedSections, section)
	}
	if slug, ok := projectSlug(path); ok {
		e.kv.AppendString(storage.KeyVisitedProjects, slug)
	}

	nav := e.kv.SpeedNav()
	nav.Pages++
	if nav.StartTime == 0 {
		nav.StartTime = now.UnixMilli()
	}
	e.kv.SetSpeedNav(nav)
}

// RecordSocialClick registers a click on a social link. When platform is
// empty it is sniffed from the link target; unrecognized targets are ignored.
func (e *Engine) RecordSocialClick(platform, href string) {
	if platform == "" {
		var ok bool
		if platform, ok = sniffPlatform(href); !ok {
			return
		}
	}
	e.kv.AppendString(storage.KeySocialClicks, platform)
}

// RecordScroll feeds one scroll sample. Only samples taken on the home page
// count, and only once: the persisted marker makes the trophy one-shot.
// Returns true once the marker is set, so callers can stop sampling.
func (e *Engine) RecordScroll(scrollTop, viewportHeight, documentHeight float64) bool {
	if e.kv.Bool(storage.KeyScrolledBottom) {
		return true
	}
	e.mu.Lock()
	path := e.currentPath
	e.mu.Unlock()
	if path != e.opts.HomePath {
		return false
	}
	if scrollTop+viewportHeight < documentHeight-bottomThreshold {
		return false
	}
	e.kv.MarkTrue(storage.KeyScrolledBottom)
	return true
}

// NewScrollSampler returns a handler suited to a raw scroll event stream: it
// debounces the burst and feeds only the settled position to RecordScroll,
// running an evaluation pass when the bottom marker flips.
func (e *Engine) NewScrollSampler(settle time.Duration) func(scrollTop, viewportHeight, documentHeight float64) {
	var mu sync.Mutex
	var top, viewport, document float64

	flush := debounce.Debounce(settle, func() {
		mu.Lock()
		t, v, d := top, viewport, document
		mu.Unlock()
		if e.RecordScroll(t, v, d) {
			e.Evaluate()
		}
	})

	return func(scrollTop, viewportHeight, documentHeight float64) {
		mu.Lock()
		top, viewport, document = scrollTop, viewportHeight, documentHeight
		mu.Unlock()
		flush()
	}
}

// RecordAction sets the boolean marker for a one-shot visitor action, such
// as downloading the CV or opening a modal.
func (e *Engine) RecordAction(key string) {
	e.kv.MarkTrue(key)
}

func sectionForPath(path string) (string, bool) {
	if path == "/" || strings.HasPrefix(path, "/#") {
		return "home", true
	}
	for _, p := range sectionPrefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.section, true
		}
	}
	return "", false
}

// projectSlug extracts the project identifier from /projects/<slug>/ paths.
// The listing page and pagination pages are not projects.
func projectSlug(path string) (string, bool) {
	const prefix = "/projects/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return "", false
	}
	slug := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		slug = rest[:i]
	}
	if slug == "page" {
		return "", false
	}
	return slug, true
}
