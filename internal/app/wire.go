package app

import (
	"log/slog"
	"net/http"

	"github.com/chyxhtc/simple-translate-dict/internal/adapter/audio"
	"github.com/chyxhtc/simple-translate-dict/internal/adapter/provider/freedict"
	"github.com/chyxhtc/simple-translate-dict/internal/adapter/provider/google"
	"github.com/chyxhtc/simple-translate-dict/internal/adapter/provider/mymemory"
	"github.com/chyxhtc/simple-translate-dict/internal/adapter/provider/yandex"
	"github.com/chyxhtc/simple-translate-dict/internal/config"
	"github.com/chyxhtc/simple-translate-dict/internal/panel"
	"github.com/chyxhtc/simple-translate-dict/internal/service/lookup"
	"github.com/chyxhtc/simple-translate-dict/internal/service/selection"
	"github.com/chyxhtc/simple-translate-dict/internal/settings"
	"github.com/chyxhtc/simple-translate-dict/internal/transport/middleware"
	"github.com/chyxhtc/simple-translate-dict/internal/transport/rest"
)

// Components is the wired background side: settings, providers, lookup and audio.
type Components struct {
	Settings  *settings.Store
	Executor  *lookup.Executor
	Coalescer *lookup.Coalescer
	Audio     *panel.AudioChain
	Selection *selection.Service
}

// NewComponents builds every component from cfg. Nothing is started.
func NewComponents(cfg *config.Config, logger *slog.Logger) *Components {
	store := settings.NewStore(settings.FromConfig(cfg.Settings))
	store.OnChange(func(s settings.Settings) {
		logger.Info("settings changed",
			slog.String("target_lang", s.TargetLang),
			slog.String("translation_api", s.TranslationAPI),
			slog.String("dictionary_provider", s.DictionaryProvider),
		)
	})

	timeout := cfg.Lookup.ProviderTimeout
	translators := map[string]lookup.TranslationProvider{
		"google":   google.NewTranslator(cfg.Google.BaseURL, timeout, logger),
		"mymemory": mymemory.NewTranslator(cfg.MyMemory.BaseURL, timeout, logger),
	}
	dictionaries := map[string]lookup.DictionaryProvider{
		"yandex":   yandex.NewProvider(cfg.Yandex.BaseURL, cfg.Yandex.Lang, timeout, store, logger),
		"freedict": freedict.NewProviderWithURL(cfg.FreeDict.BaseURL, logger),
	}

	exec := lookup.NewExecutor(logger, store, translators, dictionaries, lookup.URLs{
		TTS:       cfg.Audio.TTSURL,
		BackupTTS: cfg.Audio.BackupTTSBaseURL,
		Forvo:     cfg.Audio.ForvoBaseURL,
		DictTTS:   cfg.Audio.DictTTSBaseURL,
		Cambridge: cfg.Audio.CambridgeBaseURL,
	})
	coalescer := lookup.NewCoalescer(logger, exec, cfg.Lookup.GracePeriod)

	chain := panel.NewAudioChain(logger, audio.NewProber(cfg.Audio.ProbeTimeout, logger), panel.StaticAudioURLs{
		Howjsay: cfg.Audio.HowjsayBaseURL,
		Oxford:  cfg.Audio.OxfordBaseURL,
		Gstatic: cfg.Audio.GstaticBaseURL,
	})

	return &Components{
		Settings:  store,
		Executor:  exec,
		Coalescer: coalescer,
		Audio:     chain,
		Selection: selection.NewService(logger, coalescer, store),
	}
}

// NewHandler mounts the REST routes behind the middleware chain. The returned
// stop func releases the rate limiter and must be called on shutdown.
func NewHandler(cfg *config.Config, c *Components, logger *slog.Logger) (http.Handler, func()) {
	router := rest.NewRouter(
		rest.NewMessageHandler(c.Coalescer, c.Audio, c.Settings, logger),
		rest.NewHealthHandler(c.Coalescer, c.Settings, BuildVersion()),
	)

	var (
		limit middleware.Middleware
		stop  = func() {}
	)
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		limit = rl.Limit()
		stop = rl.Stop
	}

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)
	return chain(router), stop
}
