package selection

import (
	"context"
	"log/slog"
	"strings"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/panel"
	"github.com/chyxhtc/simple-translate-dict/internal/settings"
)

// langCheckRunes is how much of the selection is translated to detect its language.
const langCheckRunes = 100

const processingFailed = "Failed to process translation"

// Action is what the page should do after a selection.
type Action string

const (
	ActionRemove     Action = "remove"
	ActionShowButton Action = "showButton"
	ActionShowPanel  Action = "showPanel"
)

type lookuper interface {
	Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error)
}

type settingsGetter interface {
	Get() settings.Settings
}

// Selection is the selected text and where it sits on the page.
type Selection struct {
	Text     string
	Position panel.Point
}

// View is what the translation panel shows.
type View struct {
	Position      panel.Point             `json:"position"`
	ResultText    string                  `json:"resultText"`
	CandidateText string                  `json:"candidateText"`
	IsError       bool                    `json:"isError"`
	ErrorMessage  string                  `json:"errorMessage,omitempty"`
	CurrentLang   string                  `json:"currentLang"`
	Dict          *domain.DictionaryEntry `json:"dictData"`
}

// Outcome is the result of handling a selection.
type Outcome struct {
	Action         Action      `json:"action"`
	ButtonPosition panel.Point `json:"buttonPosition"`
	View           *View       `json:"view,omitempty"`
}

// Service implements the page-side selection flow on top of the lookup boundary.
type Service struct {
	log      *slog.Logger
	lookups  lookuper
	settings settingsGetter
}

// NewService creates a selection Service.
func NewService(logger *slog.Logger, lookups lookuper, settings settingsGetter) *Service {
	return &Service{
		log:      logger.With("service", "selection"),
		lookups:  lookups,
		settings: settings,
	}
}

func (s *Service) translate(ctx context.Context, text, targetLang string) (*domain.LookupResult, error) {
	return s.lookups.Lookup(ctx, domain.LookupRequest{
		Text:         text,
		SourceLang:   domain.AutoLanguage,
		TargetLang:   targetLang,
		NeedPhonetic: true,
	})
}

// MatchesTargetLang reports whether text already reads as the target language.
// Text the provider does not consider translatable counts as a match.
func (s *Service) MatchesTargetLang(ctx context.Context, text string) bool {
	target := s.settings.Get().TargetLang

	res, err := s.translate(ctx, domain.Truncate(text, langCheckRunes), target)
	if err != nil || res.IsError {
		return false
	}
	if res.Percentage == 0 {
		return true
	}
	return domain.PrimaryLanguage(target) == domain.PrimaryLanguage(res.SourceLanguage)
}

// HandleSelect decides between removing, showing the button or showing the panel.
func (s *Service) HandleSelect(ctx context.Context, sel Selection, clicked panel.Point) Outcome {
	cfg := s.settings.Get()

	if strings.TrimSpace(sel.Text) == "" || cfg.WhenSelectText == "dontShowButton" {
		return Outcome{Action: ActionRemove}
	}

	if cfg.IfCheckLang && s.MatchesTargetLang(ctx, sel.Text) {
		s.log.DebugContext(ctx, "selection already in target language", slog.String("target", cfg.TargetLang))
		return Outcome{Action: ActionRemove}
	}

	switch cfg.WhenSelectText {
	case "showButton":
		return Outcome{Action: ActionShowButton, ButtonPosition: clicked}
	case "showPanel":
		view := s.ShowPanel(ctx, sel, &clicked)
		return Outcome{Action: ActionShowPanel, View: &view}
	default:
		return Outcome{Action: ActionRemove}
	}
}

// ShowPanel translates the selection and builds the panel view. clicked is nil
// when the panel was not opened from a click.
func (s *Service) ShowPanel(ctx context.Context, sel Selection, clicked *panel.Point) View {
	cfg := s.settings.Get()

	position := sel.Position
	if cfg.PanelReferencePoint == "clickedPoint" && clicked != nil {
		position = *clicked
	}

	res, err := s.translate(ctx, sel.Text, cfg.TargetLang)
	if err != nil {
		s.log.WarnContext(ctx, "panel translation failed", slog.String("error", err.Error()))
		return errorView(position, processingFailed, cfg.TargetLang)
	}
	if res.IsError {
		return errorView(position, res.ErrorMessage, cfg.TargetLang)
	}

	currentLang := cfg.TargetLang
	if shouldSwitchSecondLang(cfg, res) {
		second, err := s.translate(ctx, sel.Text, cfg.SecondTargetLang)
		if err != nil {
			return errorView(position, processingFailed, cfg.TargetLang)
		}
		res = second
		currentLang = cfg.SecondTargetLang
	}

	view := View{
		Position:     position,
		ResultText:   res.ResultText,
		IsError:      res.IsError,
		ErrorMessage: res.ErrorMessage,
		CurrentLang:  currentLang,
	}
	if cfg.IfShowCandidate {
		view.CandidateText = res.CandidateText
	}
	if d := res.Dictionary(); domain.HasData(d) {
		view.Dict = d
	}
	return view
}

func shouldSwitchSecondLang(cfg settings.Settings, res *domain.LookupResult) bool {
	return cfg.IfChangeSecondLangOnPage &&
		domain.PrimaryLanguage(res.SourceLanguage) == domain.PrimaryLanguage(cfg.TargetLang) &&
		res.Percentage > 0 &&
		cfg.TargetLang != cfg.SecondTargetLang
}

func errorView(position panel.Point, message, lang string) View {
	return View{
		Position:     position,
		IsError:      true,
		ErrorMessage: message,
		CurrentLang:  lang,
	}
}
