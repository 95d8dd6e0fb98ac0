package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*Router, *store.Memory) {
	t.Helper()
	s := store.NewMemory()
	return NewRouter(s, func() time.Time { return fixedNow }), s
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"How can I save money?", IntentCost},
		{"OPTIMIZE my bill", IntentCost},
		{"Any open incidents?", IntentIncident},
		{"we have a problem", IntentIncident},
		{"Show the carbon report", IntentSustainability},
		{"ESG status", IntentSustainability},
		{"Can you predict load?", IntentAutomation},
		{"automation rules", IntentAutomation},
		{"he said hello", IntentAutomation}, // substring match
		{"hello there", IntentDefault},
		{"", IntentDefault},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_CostBeatsIncidentInAnyOrder(t *testing.T) {
	assert.Equal(t, IntentCost, Classify("incident cost"))
	assert.Equal(t, IntentCost, Classify("cost of the incident"))
	assert.Equal(t, IntentCost, Classify("alert: we need to save"))
	assert.Equal(t, IntentIncident, Classify("carbon alert"))
}

func TestRespond_FourSuggestionsEach(t *testing.T) {
	for _, text := range []string{"cost", "alert", "carbon", "predict", "hello"} {
		r := Respond(text)
		assert.Len(t, r.Suggestions, 4, text)
		assert.NotEmpty(t, r.Body, text)
	}
}

func TestRespond_DefaultEchoesMessage(t *testing.T) {
	r := Respond("Where is the roadmap?")
	assert.Equal(t, IntentDefault, r.Intent)
	assert.True(t, strings.HasPrefix(r.Body, `I understand you're asking about "Where is the roadmap?".`))
}

func TestRespond_SuggestionsAreCopies(t *testing.T) {
	r := Respond("cost")
	r.Suggestions[0] = "changed"
	assert.Equal(t, "Create implementation roadmap", Respond("cost").Suggestions[0])
}

func TestHandle_PersistsExchange(t *testing.T) {
	r, s := newTestRouter(t)
	ctx := context.Background()

	before := testutil.ToFloat64(intents.WithLabelValues(string(IntentCost)))

	resp, err := r.Handle(ctx, Message{UserID: "u1", Message: "How can I save money?", Context: "finops"})
	require.NoError(t, err)
	assert.Equal(t, IntentCost, resp.Intent)
	assert.Len(t, resp.Suggestions, 4)
	assert.Contains(t, resp.Response, "Cost Optimization Analysis")
	assert.Equal(t, before+1, testutil.ToFloat64(intents.WithLabelValues(string(IntentCost))))

	entries, err := s.List(ctx, "chat:u1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ms := fixedNow.UnixMilli()
	assert.Equal(t, recordKey("u1", ms), entries[0].Key)
	assert.Equal(t, recordKey("u1", ms+1), entries[1].Key)

	user, err := store.GetJSON[model.ChatRecord](ctx, s, entries[0].Key)
	require.NoError(t, err)
	bot, err := store.GetJSON[model.ChatRecord](ctx, s, entries[1].Key)
	require.NoError(t, err)

	assert.Equal(t, "user", user.Type)
	assert.Equal(t, "How can I save money?", user.Message)
	assert.Equal(t, "finops", user.Context)
	assert.Empty(t, user.Suggestions)
	assert.Equal(t, "bot", bot.Type)
	assert.Equal(t, resp.Suggestions, bot.Suggestions)
	assert.True(t, bot.Timestamp.After(user.Timestamp))
	assert.Equal(t, bot.Timestamp, resp.Timestamp)
}

func TestHandle_KeysNeverCollide(t *testing.T) {
	r, s := newTestRouter(t)
	ctx := context.Background()
	ms := fixedNow.UnixMilli()

	// Same clock reading for every call.
	for range 3 {
		_, err := r.Handle(ctx, Message{UserID: "u1", Message: "hello there"})
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, "chat:u1:")
	require.NoError(t, err)
	require.Len(t, entries, 6)
	for i, e := range entries {
		assert.Equal(t, recordKey("u1", ms+int64(i)), e.Key)
	}
}

func TestHandle_Invalid(t *testing.T) {
	r, s := newTestRouter(t)
	ctx := context.Background()

	tests := []struct {
		name string
		msg  Message
	}{
		{"missing user", Message{Message: "hi"}},
		{"missing message", Message{UserID: "u1"}},
		{"colon in user", Message{UserID: "a:b", Message: "hi"}},
		{"too large", Message{UserID: "u1", Message: strings.Repeat("x", MaxMessageBytes+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Handle(ctx, tt.msg)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}

	entries, err := s.List(ctx, keyPrefix)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMessage_MaxBytesBoundary(t *testing.T) {
	at := Message{UserID: "u1", Message: strings.Repeat("é", MaxMessageBytes/2)}
	assert.NoError(t, at.Validate())

	over := Message{UserID: "u1", Message: strings.Repeat("é", MaxMessageBytes/2) + "x"}
	assert.ErrorIs(t, over.Validate(), apperr.ErrInvalidInput)
}

func TestHistory(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx := context.Background()

	_, err := r.Handle(ctx, Message{UserID: "u1", Message: "carbon?"})
	require.NoError(t, err)
	_, err = r.Handle(ctx, Message{UserID: "u1", Message: "incident?"})
	require.NoError(t, err)
	_, err = r.Handle(ctx, Message{UserID: "u2", Message: "cost?"})
	require.NoError(t, err)

	all, err := r.History(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"user", "bot", "user", "bot"},
		[]string{all[0].Type, all[1].Type, all[2].Type, all[3].Type})
	assert.Equal(t, "carbon?", all[0].Message)

	last, err := r.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "incident?", last[0].Message)

	_, err = r.History(ctx, "", 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
