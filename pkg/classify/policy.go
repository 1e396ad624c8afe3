package classify

import (
	"regexp"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// The relevance engine evaluates four tiers in a fixed order over the
// lowercased title+description blob of a candidate video:
//
//	exclude     - politics / general news / shorts, rejects unconditionally
//	smart-allow - narrow cross-topic phrases (AI compute meets power demand)
//	strict      - curated precise domain vocabulary
//	soft        - loose energy vocabulary, consulted only when the channel
//	              policy allows it
//
// Exclusion always wins. Once a tier matches it makes the final decision:
// an accept from smart/strict/soft is still rejected when the policy
// requires a core term and the blob has none.

var excludeRe = regexp.MustCompile(
	`\belections?\b|\bpresident\b|prime minister|\bparliament\b|\bsenate\b|\bcongress\b` +
		`|\btrump\b|\bbiden\b|\bmayor\b|\bgubernatorial\b` +
		`|\bwar\b|\bukraine\b|\bgaza\b|\bisrael\b|\bhamas\b` +
		`|\bmurder\b|\bshooting\b|\btrial\b|\bcourtroom\b` +
		`|\bcelebrity\b|\boscars?\b|\bmovie\b|\bfootball\b|\bsoccer\b|\bnba\b|\bnfl\b` +
		`|#shorts\b`)

var smartRe = regexp.MustCompile(
	`\b(nvidia|amd|tsmc|openai|microsoft|google|amazon|meta)\b.{0,80}\bdata.?cent(er|re)` +
		`|\bdata.?cent(er|re)s?\b.{0,80}\b(power demand|electricity|gigawatts?|grid)\b` +
		`|\bai\b.{0,40}\b(power demand|electricity demand|energy demand)\b` +
		`|\bchip(s| ?maker)?\b.{0,60}\b(power|electricity|energy) (use|demand|consumption)\b`)

var strictRe = regexp.MustCompile(
	`\bhvdc\b|high.?voltage|\bsubstations?\b|\btransmission\b|\bswitchgear\b` +
		`|\btransformers?\b|gas.insulated|\bstatcom\b|\bsvc\b|\bfacts\b` +
		`|synchronous condensers?|series capacitors?|\bfsc\b` +
		`|\bpower grid\b|\belectric grid\b|\bgrid\b|\bmicrogrid\b` +
		`|renewables?\b|clean energy|energy transition` +
		`|\bsolar\b|photovoltaics?\b|\bwind\b|offshore wind` +
		`|\bbattery\b|energy storage|\bbess\b` +
		`|\bnuclear\b|\bsmr\b|small modular reactors?` +
		`|data.?cent(er|re)s?\b|\bhyperscalers?\b` +
		`|semiconductors?\b|\bnvidia\b|\btsmc\b` +
		`|rare earths?\b|critical minerals?\b|\blithium\b|\bcobalt\b|\bgraphite\b` +
		`|\blng\b|\bpipelines?\b|\brefiner(y|ies)\b` +
		`|\butilit(y|ies)\b|independent system operator|\brto\b|\btso\b` +
		`|iec ?61850|\bscada\b|\bpmu\b` +
		`|\bcables?\b|\bconductors?\b|overhead line|\binterconnectors?\b` +
		`|\bcurtailment\b|\binterconnection\b|capacity market|\bppa\b` +
		`|lead.?times?\b|order book|supply chain|electrification`)

var softRe = regexp.MustCompile(
	`\bpower\b|\benergy\b|\belectricity\b|\bcarbon\b|\bemissions\b|\bco2\b` +
		`|\bmarkets?\b|\btariffs?\b|electric vehicles?|\bevs?\b|\bchargers?\b`)

var coreRe = regexp.MustCompile(
	`\bgrid\b|\btransmission\b|\bsubstations?\b|\bhvdc\b|high.?voltage` +
		`|\btransformers?\b|\bswitchgear\b|\binterconnectors?\b|\butilit(y|ies)\b` +
		`|\belectricity\b|energy storage|\brenewables?\b|power (grid|demand|system)`)

// Relevant decides inclusion of a video blob under the channel policy.
// The blob must already be lowercased (see Blob).
func Relevant(blob string, policy domain.Policy) bool {
	if excludeRe.MatchString(blob) {
		return false
	}
	if smartRe.MatchString(blob) {
		return coreSatisfied(blob, policy)
	}
	if strictRe.MatchString(blob) {
		return coreSatisfied(blob, policy)
	}
	if policy.AllowSoftMatch && softRe.MatchString(blob) {
		return coreSatisfied(blob, policy)
	}
	return false
}

func coreSatisfied(blob string, policy domain.Policy) bool {
	return !policy.RequireCoreTerm || coreRe.MatchString(blob)
}
