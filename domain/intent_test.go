package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup_FirstMatchWins(t *testing.T) {
	req := require.New(t)
	catalog := NewCatalog([]IntentDefinition{
		{Tag: IntentGreeting, Patterns: []string{"oi"}, Responses: []string{"Olá!"}},
		{Tag: IntentOrder, Patterns: []string{"quero pizza"}, Responses: []string{"Qual sabor?"}},
		{Tag: IntentGreeting, Patterns: []string{"bom dia"}, Responses: []string{"Bom dia!"}},
	})

	intent, ok := catalog.Lookup(IntentGreeting)
	req.True(ok)
	req.Equal([]string{"Olá!"}, intent.Responses)

	_, ok = catalog.Lookup("inexistente")
	req.False(ok)
	req.Nil(catalog.Responses("inexistente"))
	req.Equal(3, catalog.Len())
}

func TestCatalog_IsImmutable(t *testing.T) {
	req := require.New(t)
	source := []IntentDefinition{{Tag: IntentMenu, Responses: []string{"Temos calabresa."}}}
	catalog := NewCatalog(source)

	// Mutating the source slice after construction has no effect
	source[0].Responses[0] = "changed"
	req.Equal([]string{"Temos calabresa."}, catalog.Responses(IntentMenu))

	// Neither does mutating what the accessors return
	intents := catalog.Intents()
	intents[0].Tag = "changed"
	intent, _ := catalog.Lookup(IntentMenu)
	intent.Responses[0] = "changed"
	req.Equal(IntentMenu, catalog.Intents()[0].Tag)
	req.Equal([]string{"Temos calabresa."}, catalog.Responses(IntentMenu))
}

func TestCatalog_MarshalJSON(t *testing.T) {
	req := require.New(t)
	catalog := NewCatalog([]IntentDefinition{
		{Tag: IntentThanks, Patterns: []string{"obrigado"}, Responses: []string{"Por nada!"}},
	})

	data, err := json.Marshal(catalog)
	req.NoError(err)
	req.JSONEq(`{"intents":[{"tag":"agradecimento","patterns":["obrigado"],"responses":["Por nada!"]}]}`, string(data))

	data, err = json.Marshal(NewCatalog(nil))
	req.NoError(err)
	req.JSONEq(`{"intents":[]}`, string(data))
}

func TestTurn_Probability(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected float64
	}{
		{name: "keyword score", score: 0.6, expected: 60},
		{name: "two thirds", score: 2.0 / 3.0, expected: 66.67},
		{name: "one third", score: 1.0 / 3.0, expected: 33.33},
		{name: "zero", score: 0, expected: 0},
		{name: "full", score: 1, expected: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn := Turn{Intent: IntentPrices, Score: tt.score, Reply: "ok"}
			require.InDelta(t, tt.expected, turn.Probability(), 1e-9)
			reply := turn.ToReply()
			require.Equal(t, IntentPrices, reply.Intent)
			require.Equal(t, "ok", reply.Response)
		})
	}
}
