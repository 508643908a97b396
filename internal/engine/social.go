package engine

import "strings"

// socialHosts maps URL fragments to platform names. Ordered so x.com and
// twitter.com both land on "twitter".
var socialHosts = []struct {
	fragment string
	platform string
}{
	{"github.com", "github"},
	{"gitlab.com", "gitlab"},
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"youtube.com", "youtube"},
	{"twitch.tv", "twitch"},
	{"instagram.com", "instagram"},
	{"artstation.com", "artstation"},
	{"discord", "discord"},
}

// sniffPlatform recovers a platform name from a link target when the caller
// did not label the click.
func sniffPlatform(href string) (string, bool) {
	href = strings.ToLower(href)
	for _, h := range socialHosts {
		if strings.Contains(href, h.fragment) {
			return h.platform, true
		}
	}
	return "", false
}
