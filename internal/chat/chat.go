// Package chat implements the rule-based chat assistant.
//
// A message is classified by the first rule whose keywords appear in it,
// answered with that rule's canned reply, and persisted together with the
// reply as two records under chat:<user>:<epoch-ms>.
package chat

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	keyPrefix = "chat:"

	// MaxMessageBytes bounds the size of an inbound message.
	MaxMessageBytes = 32 << 10

	DefaultHistoryLimit = 50
)

var intents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "organizeit_chat_intents_total",
	Help: "Chat messages handled by classified intent",
}, []string{"intent"})

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	err := validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxMessageBytes
	})
	if err != nil {
		panic(err)
	}
}

// Message is an inbound chat message.
type Message struct {
	UserID  string `json:"userId" validate:"required,max=128,excludes=:"`
	Message string `json:"message" validate:"required,maxbytes"`
	Context string `json:"context" validate:"max=256"`
}

// Validate checks the message fields.
func (m Message) Validate() error {
	if err := validate.Struct(m); err != nil {
		return apperr.Invalid(err)
	}
	return nil
}

// Reply is the canned answer for a message.
type Reply struct {
	Intent      Intent
	Body        string
	Suggestions []string
}

// Classify returns the intent of the first rule matching text,
// case-insensitively.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.intent
		}
	}
	return IntentDefault
}

// Respond returns the canned reply for text.
func Respond(text string) Reply {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return Reply{Intent: r.intent, Body: r.body, Suggestions: slices.Clone(r.suggestions)}
		}
	}
	return Reply{
		Intent:      IntentDefault,
		Body:        fmt.Sprintf(defaultBody, text),
		Suggestions: slices.Clone(defaultSuggestions),
	}
}

// Response is returned to the caller of Handle.
type Response struct {
	Response    string    `json:"response"`
	Suggestions []string  `json:"suggestions"`
	Intent      Intent    `json:"intent"`
	Timestamp   time.Time `json:"timestamp"`
}

// Router answers chat messages and keeps their history.
type Router struct {
	store  store.Store
	locker *collection.Locker
	now    func() time.Time
}

// NewRouter returns a Router persisting to s. now may be nil.
func NewRouter(s store.Store, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{store: s, locker: &collection.Locker{}, now: now}
}

// Handle classifies msg, stores the message and the reply, and returns the
// reply. The reply record's key is always strictly later than the message's.
func (r *Router) Handle(ctx context.Context, msg Message) (Response, error) {
	if err := msg.Validate(); err != nil {
		return Response{}, err
	}
	reply := Respond(msg.Message)
	intents.WithLabelValues(string(reply.Intent)).Inc()

	unlock := r.locker.Lock(msg.UserID)
	defer unlock()

	userMs, err := r.freeSlot(ctx, msg.UserID, r.now().UnixMilli())
	if err != nil {
		return Response{}, err
	}
	if err := r.put(ctx, msg.UserID, userMs, model.ChatRecord{
		UserID:  msg.UserID,
		Message: msg.Message,
		Context: msg.Context,
		Type:    "user",
	}); err != nil {
		return Response{}, err
	}

	botMs, err := r.freeSlot(ctx, msg.UserID, userMs+1)
	if err != nil {
		return Response{}, err
	}
	bot := model.ChatRecord{
		UserID:      msg.UserID,
		Message:     reply.Body,
		Context:     msg.Context,
		Type:        "bot",
		Suggestions: reply.Suggestions,
	}
	if err := r.put(ctx, msg.UserID, botMs, bot); err != nil {
		return Response{}, err
	}

	return Response{
		Response:    reply.Body,
		Suggestions: reply.Suggestions,
		Intent:      reply.Intent,
		Timestamp:   time.UnixMilli(botMs).UTC(),
	}, nil
}

// History returns up to limit of the user's most recent records, oldest
// first. limit <= 0 means DefaultHistoryLimit.
func (r *Router) History(ctx context.Context, userID string, limit int) ([]model.ChatRecord, error) {
	if userID == "" || strings.Contains(userID, ":") {
		return nil, apperr.Invalid(errors.New("invalid user id"))
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	entries, err := r.store.List(ctx, userPrefix(userID))
	if err != nil {
		return nil, apperr.Store(fmt.Errorf("listing chat history: %w", err))
	}

	type stamped struct {
		ms     int64
		record model.ChatRecord
	}
	records := make([]stamped, 0, len(entries))
	for _, e := range entries {
		ms, err := strconv.ParseInt(strings.TrimPrefix(e.Key, userPrefix(userID)), 10, 64)
		if err != nil {
			continue
		}
		rec, err := store.DecodeJSON[model.ChatRecord](e.Value)
		if err != nil {
			return nil, apperr.Store(fmt.Errorf("decoding %s: %w", e.Key, err))
		}
		records = append(records, stamped{ms: ms, record: rec})
	}
	slices.SortFunc(records, func(a, b stamped) int { return cmp.Compare(a.ms, b.ms) })

	if len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]model.ChatRecord, len(records))
	for i, s := range records {
		out[i] = s.record
	}
	return out, nil
}

func userPrefix(userID string) string { return keyPrefix + userID + ":" }

func recordKey(userID string, ms int64) string {
	return userPrefix(userID) + strconv.FormatInt(ms, 10)
}

// freeSlot returns the first millisecond at or after ms with no record for
// the user.
func (r *Router) freeSlot(ctx context.Context, userID string, ms int64) (int64, error) {
	for {
		_, err := r.store.Get(ctx, recordKey(userID, ms))
		if errors.Is(err, store.ErrNotFound) {
			return ms, nil
		}
		if err != nil {
			return 0, apperr.Store(fmt.Errorf("probing chat key: %w", err))
		}
		ms++
	}
}

func (r *Router) put(ctx context.Context, userID string, ms int64, rec model.ChatRecord) error {
	rec.Timestamp = time.UnixMilli(ms).UTC()
	if err := store.SetJSON(ctx, r.store, recordKey(userID, ms), rec); err != nil {
		return apperr.Store(fmt.Errorf("writing chat record: %w", err))
	}
	return nil
}
