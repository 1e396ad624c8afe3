package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

var (
	permissive = domain.Policy{AllowSoftMatch: false, RequireCoreTerm: false}
	newsDesk   = domain.Policy{AllowSoftMatch: true, RequireCoreTerm: true}
)

func TestRelevant_StrictTier(t *testing.T) {
	blob := Blob("ABB unveils new HVDC converter station", "")
	assert.True(t, Relevant(blob, permissive), "strict-tier match with no core gate")
}

func TestRelevant_ExcludeWins(t *testing.T) {
	// exclusion fires even when a strict-tier term is present
	blob := Blob("Election results shake up the power grid", "")
	assert.False(t, Relevant(blob, permissive))
	assert.False(t, Relevant(blob, newsDesk))

	blob = Blob("Markets rally as election looms", "")
	assert.False(t, Relevant(blob, newsDesk))
}

func TestRelevant_ShortsExcluded(t *testing.T) {
	blob := Blob("Grid tour #shorts", "")
	assert.False(t, Relevant(blob, permissive))
}

func TestRelevant_SmartAllow(t *testing.T) {
	blob := Blob("Nvidia strikes massive data center deal", "")

	// no core gate: smart-allow accepts on its own
	assert.True(t, Relevant(blob, permissive))

	// core gate set and no core term present: still rejected
	assert.False(t, Relevant(blob, newsDesk))

	// same phrase plus a core term passes the gate
	withCore := Blob("Nvidia strikes massive data center deal straining the power grid", "")
	assert.True(t, Relevant(withCore, newsDesk))
}

func TestRelevant_SoftTier(t *testing.T) {
	blob := Blob("Energy prices climb again", "")

	// soft vocabulary alone is not enough without AllowSoftMatch
	assert.False(t, Relevant(blob, permissive))

	// news desk allows soft matches but requires a core term
	assert.False(t, Relevant(blob, newsDesk))

	withCore := Blob("Electricity prices climb again", "")
	assert.True(t, Relevant(withCore, newsDesk), "electricity is both soft and core vocabulary")

	softOnly := domain.Policy{AllowSoftMatch: true, RequireCoreTerm: false}
	assert.True(t, Relevant(blob, softOnly))
}

func TestRelevant_NoMatch(t *testing.T) {
	blob := Blob("Celebrity chef opens new restaurant", "")
	assert.False(t, Relevant(blob, permissive))
	assert.False(t, Relevant(blob, domain.Policy{AllowSoftMatch: true}))
}

func TestRelevant_DescriptionCounts(t *testing.T) {
	blob := Blob("Morning briefing", "Today we visit a substation out west")
	assert.True(t, Relevant(blob, permissive))
}
