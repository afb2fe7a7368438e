package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/panel"
)

// maxMessageBytes bounds a message body; selections beyond this are not translated.
const maxMessageBytes = 64 << 10

// Message names understood by the background side.
const (
	MessageTranslate      = "translate"
	MessageGetWordDetails = "getWordDetails"
	MessageResolveAudio   = "resolveAudio"
)

type lookupService interface {
	Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error)
	WordDetails(ctx context.Context, word string) (*domain.DictionaryEntry, error)
}

type audioResolver interface {
	Resolve(ctx context.Context, entry *domain.DictionaryEntry) panel.AudioOutcome
}

type targetLangSource interface {
	TargetLang() string
}

// MessageRequest is the body of POST /api/message.
type MessageRequest struct {
	Message      string `json:"message"`
	Text         string `json:"text"`
	SourceLang   string `json:"sourceLang"`
	TargetLang   string `json:"targetLang"`
	NeedPhonetic bool   `json:"needPhonetic"`
	PhoneticOnly bool   `json:"phoneticOnly"`
	Word         string `json:"word"`
}

func (m MessageRequest) lookupRequest() domain.LookupRequest {
	return domain.LookupRequest{
		Text:         m.Text,
		SourceLang:   m.SourceLang,
		TargetLang:   m.TargetLang,
		NeedPhonetic: m.NeedPhonetic,
		PhoneticOnly: m.PhoneticOnly,
	}
}

// MessageHandler serves the runtime message contract between the content and
// background sides.
type MessageHandler struct {
	lookups  lookupService
	audio    audioResolver
	settings targetLangSource
	log      *slog.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(lookups lookupService, audio audioResolver, settings targetLangSource, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		lookups:  lookups,
		audio:    audio,
		settings: settings,
		log:      logger.With("handler", "message"),
	}
}

// Handle dispatches one message. Unknown messages answer null.
func (h *MessageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var msg MessageRequest
	body := http.MaxBytesReader(w, r.Body, maxMessageBytes)
	if err := json.NewDecoder(body).Decode(&msg); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "message too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "empty request body")
		default:
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return
	}

	switch msg.Message {
	case MessageTranslate:
		h.translate(w, r, msg)
	case MessageGetWordDetails:
		h.wordDetails(w, r, msg)
	case MessageResolveAudio:
		h.resolveAudio(w, r, msg)
	default:
		h.log.DebugContext(r.Context(), "unhandled message", slog.String("message", msg.Message))
		writeJSON(w, http.StatusOK, nil)
	}
}

func (h *MessageHandler) translate(w http.ResponseWriter, r *http.Request, msg MessageRequest) {
	req := msg.lookupRequest()
	if req.TargetLang == "" {
		req.TargetLang = h.settings.TargetLang()
	}

	res, err := h.lookups.Lookup(r.Context(), req)
	if err != nil {
		// Only a gone caller reaches here.
		h.log.InfoContext(r.Context(), "translate abandoned", slog.String("error", err.Error()))
		writeJSON(w, http.StatusOK, domain.NewErrorResult(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *MessageHandler) wordDetails(w http.ResponseWriter, r *http.Request, msg MessageRequest) {
	entry, err := h.lookups.WordDetails(r.Context(), wordOf(msg))
	if err != nil {
		h.log.WarnContext(r.Context(), "word details failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if !domain.HasData(entry) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *MessageHandler) resolveAudio(w http.ResponseWriter, r *http.Request, msg MessageRequest) {
	entry, err := h.lookups.WordDetails(r.Context(), wordOf(msg))
	if err != nil || entry == nil {
		writeJSON(w, http.StatusOK, panel.AudioOutcome{Attempts: []string{}})
		return
	}
	writeJSON(w, http.StatusOK, h.audio.Resolve(r.Context(), entry))
}

func wordOf(msg MessageRequest) string {
	if msg.Word != "" {
		return msg.Word
	}
	return msg.Text
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
