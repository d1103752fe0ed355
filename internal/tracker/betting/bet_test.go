package betting

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/betledger/internal/shared/config"
)

func TestMain(m *testing.M) {
	config.UsePlainDecimals()
	os.Exit(m.Run())
}

func twoLegDrafts() []SelectionDraft {
	return []SelectionDraft{
		{Event: "Betis vs Sevilla", Market: "Resultado Final", Pick: "1", Odds: dec("1.5"), Sport: SportFootball},
		{Event: "Real Madrid vs Getafe", Market: "Total Goles", Pick: "Más de 2.5", Odds: dec("2.0"), Sport: SportFootball},
	}
}

func TestNewBet(t *testing.T) {
	b := NewBet(twoLegDrafts(), dec("20"), BetMeta{Date: "2024-05-01", Bookmaker: "Bet365"})

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Betis vs Sevilla", b.Name, "name defaults to first event")
	assert.True(t, dec("3").Equal(b.TotalOdds))
	assert.True(t, dec("60").Equal(b.PotentialReturn))
	assert.Equal(t, BetPending, b.Status())
	assert.True(t, b.Profit().IsZero())
	require.Len(t, b.Selections, 2)
	for _, s := range b.Selections {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, SelectionPending, s.Status)
	}
	assert.NotEqual(t, b.Selections[0].ID, b.Selections[1].ID)
}

func TestWithSelectionStatus(t *testing.T) {
	b := NewBet(twoLegDrafts(), dec("20"), BetMeta{Name: "Finde"})

	first, ok := b.WithSelectionStatus(b.Selections[0].ID, SelectionWon)
	require.True(t, ok)
	assert.Equal(t, BetPending, first.Status())
	assert.Equal(t, SelectionPending, b.Selections[0].Status, "original must not change")

	both, ok := first.WithSelectionStatus(first.Selections[1].ID, SelectionWon)
	require.True(t, ok)
	assert.Equal(t, BetWon, both.Status())
	assert.True(t, dec("40").Equal(both.Profit()))
	assert.True(t, dec("3").Equal(both.TotalOdds), "total odds fixed at creation")

	corrected, ok := both.WithSelectionStatus(both.Selections[1].ID, SelectionVoid)
	require.True(t, ok)
	assert.Equal(t, BetWon, corrected.Status())
	assert.True(t, dec("10").Equal(corrected.Profit()))

	_, ok = b.WithSelectionStatus("missing", SelectionWon)
	assert.False(t, ok)
}

func TestBetJSON(t *testing.T) {
	b := NewBet(twoLegDrafts(), dec("20"), BetMeta{Date: "2024-05-01", Time: "18:00"})
	b, _ = b.WithSelectionStatus(b.Selections[0].ID, SelectionLost)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"LOST"`)
	assert.Contains(t, string(raw), `"profit":-20`)
	assert.Contains(t, string(raw), `"stake":20`)

	var back Bet
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, BetLost, back.Status())
	assert.True(t, dec("-20").Equal(back.Profit()))
	require.Len(t, back.Selections, 2)
	for i := range b.Selections {
		assert.Equal(t, b.Selections[i].ID, back.Selections[i].ID)
		assert.Equal(t, b.Selections[i].Status, back.Selections[i].Status)
		assert.True(t, b.Selections[i].Odds.Equal(back.Selections[i].Odds))
	}
}

func TestBetJSON_KeepsStoredDerivedFields(t *testing.T) {
	raw := `{"id":"b1","name":"x","stake":10,"totalOdds":2,"potentialReturn":20,"status":"WON","date":"2024-01-01","profit":10,
		"selections":[{"id":"s1","event":"A vs B","market":"1X2","pick":"1","odds":2,"status":"WON","sport":"FOOTBALL"}]}`
	var b Bet
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, BetWon, b.Status())
	assert.True(t, dec("10").Equal(b.Profit()))
}
