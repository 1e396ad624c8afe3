// Package classify assigns topic categories to items and decides video
// relevance against per-channel policies.
package classify

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// rule maps a keyword pattern to a category; rules are evaluated in order
// so specific vocabulary must come before generic vocabulary
type rule struct {
	category domain.Category
	re       *regexp.Regexp
}

var categoryRules = []rule{
	{domain.CategoryHVDC, regexp.MustCompile(`\bhvdc\b|converter station|\bvsc\b|\blcc\b`)},
	{domain.CategoryLeadTimes, regexp.MustCompile(`lead.?times?\b|order book|\bbacklog\b|supply chain|\bshortage\b`)},
	{domain.CategorySubstations, regexp.MustCompile(`\bsubstations?\b|\bswitchgear\b|gas.insulated|\bgis\b`)},
	{domain.CategoryProtection, regexp.MustCompile(`protection relay|\brelays?\b|\bscada\b|iec ?61850|\bpmu\b|grid protection`)},
	{domain.CategoryCables, regexp.MustCompile(`\bcables?\b|\bconductors?\b|overhead line|\bohl\b|undergrounding`)},
	{domain.CategoryDataCenters, regexp.MustCompile(`data.?cent(er|re)s?\b|\bhyperscalers?\b|\bcolocation\b`)},
	{domain.CategoryAI, regexp.MustCompile(`artificial intelligence|\bai\b|\bgenai\b|\bchips?\b|semiconductors?\b|\bnvidia\b|\btsmc\b`)},
	{domain.CategoryEquipment, regexp.MustCompile(`\btransformers?\b|\bstatcom\b|synchronous condensers?|series capacitors?|\bfacts\b|circuit breakers?|\breactors?\b`)},
	{domain.CategoryRenewables, regexp.MustCompile(`\bsolar\b|\bwind\b|renewables?\b|\bbattery\b|energy storage|\bbess\b|\bnuclear\b|\bsmr\b|\bhydrogen\b|geothermal`)},
	{domain.CategoryTransport, regexp.MustCompile(`electric vehicles?|\bevs?\b|\bcharging\b|\brail\b|electrification of transport`)},
	{domain.CategoryPolicy, regexp.MustCompile(`\bferc\b|\bregulators?\b|\bpolicy\b|\btariffs?\b|\bpermitting\b|legislation|\bdoe\b|\bofgem\b`)},
	{domain.CategoryGrid, regexp.MustCompile(`\bgrid\b|\btransmission\b|\bdistribution\b|\butilit(y|ies)\b|\binterconnection\b|\bblackout\b|\bcurtailment\b`)},
}

// Category returns the first matching category for the lowercased
// title+url text, or the per-type default when nothing matches.
// Evaluation order is fixed, so repeated calls are deterministic.
func Category(title, url string, typ domain.ItemType) domain.Category {
	text := strings.ToLower(title + " " + url)
	for _, r := range categoryRules {
		if r.re.MatchString(text) {
			return r.category
		}
	}
	if typ == domain.TypeVideo {
		return domain.CategoryVideo
	}
	return domain.CategoryGrid
}

// stripPolicy removes all HTML, leaving plain text
var stripPolicy = bluemonday.StrictPolicy()

// Blob builds the lowercase match text for relevance filtering from a
// title and an HTML-bearing description
func Blob(title, description string) string {
	text := title + " " + stripPolicy.Sanitize(description)
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
