package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Google    GoogleConfig    `yaml:"google"`
	MyMemory  MyMemoryConfig  `yaml:"mymemory"`
	Yandex    YandexConfig    `yaml:"yandex"`
	FreeDict  FreeDictConfig  `yaml:"freedict"`
	Audio     AudioConfig     `yaml:"audio"`
	Settings  SettingsConfig  `yaml:"settings"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8787"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-client rate limiting for the message endpoint.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	RPS             float64       `yaml:"rps"              env:"RATE_LIMIT_RPS"              env-default:"20"`
	Burst           int           `yaml:"burst"            env:"RATE_LIMIT_BURST"            env-default:"40"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LookupConfig holds request coalescing and provider call settings.
type LookupConfig struct {
	// GracePeriod is how long a settled lookup stays shared before a new identical request runs again.
	GracePeriod time.Duration `yaml:"grace_period"     env:"LOOKUP_GRACE_PERIOD"     env-default:"1s"`
	// ProviderTimeout bounds each upstream HTTP call; zero means no timeout.
	ProviderTimeout time.Duration `yaml:"provider_timeout" env:"LOOKUP_PROVIDER_TIMEOUT" env-default:"0s"`
}

// GoogleConfig holds the Google Translate endpoint.
type GoogleConfig struct {
	BaseURL string `yaml:"base_url" env:"GOOGLE_BASE_URL" env-default:"https://translate.googleapis.com/translate_a/single"`
}

// MyMemoryConfig holds the MyMemory endpoint.
type MyMemoryConfig struct {
	BaseURL string `yaml:"base_url" env:"MYMEMORY_BASE_URL" env-default:"https://api.mymemory.translated.net/get"`
}

// YandexConfig holds the Yandex Dictionary endpoint. The API key lives in settings.
type YandexConfig struct {
	BaseURL string `yaml:"base_url" env:"YANDEX_BASE_URL" env-default:"https://dictionary.yandex.net/api/v1/dicservice.json"`
	Lang    string `yaml:"lang"     env:"YANDEX_LANG"     env-default:"en-en"`
}

// FreeDictConfig holds the FreeDictionary endpoint.
type FreeDictConfig struct {
	BaseURL string `yaml:"base_url" env:"FREEDICT_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
}

// AudioConfig holds the pronunciation and reference URL bases and the probe timeout.
type AudioConfig struct {
	ProbeTimeout     time.Duration `yaml:"probe_timeout"      env:"AUDIO_PROBE_TIMEOUT"      env-default:"5s"`
	TTSURL           string        `yaml:"tts_url"            env:"AUDIO_TTS_URL"            env-default:"https://translate.google.com/translate_tts"`
	BackupTTSBaseURL string        `yaml:"backup_tts_base"    env:"AUDIO_BACKUP_TTS_BASE"    env-default:"https://api.dictionaryapi.dev/media/pronunciations/en"`
	ForvoBaseURL     string        `yaml:"forvo_base"         env:"AUDIO_FORVO_BASE"         env-default:"https://forvo.com/word"`
	DictTTSBaseURL   string        `yaml:"dict_tts_base"      env:"AUDIO_DICT_TTS_BASE"      env-default:"https://www.dictionary.com/browse/sound"`
	CambridgeBaseURL string        `yaml:"cambridge_base"     env:"AUDIO_CAMBRIDGE_BASE"     env-default:"https://dictionary.cambridge.org/pronunciation/english"`
	HowjsayBaseURL   string        `yaml:"howjsay_base"       env:"AUDIO_HOWJSAY_BASE"       env-default:"https://howjsay.com/mp3"`
	OxfordBaseURL    string        `yaml:"oxford_base"        env:"AUDIO_OXFORD_BASE"        env-default:"https://audio.oxforddictionaries.com/en/mp3"`
	GstaticBaseURL   string        `yaml:"gstatic_base"       env:"AUDIO_GSTATIC_BASE"       env-default:"https://ssl.gstatic.com/dictionary/static/sounds/oxford"`
}

// SettingsConfig seeds the user settings store.
type SettingsConfig struct {
	TargetLang               string `yaml:"target_lang"                  env:"SETTINGS_TARGET_LANG"                  env-default:"en"`
	SecondTargetLang         string `yaml:"second_target_lang"           env:"SETTINGS_SECOND_TARGET_LANG"           env-default:"ja"`
	DictionaryAPIKey         string `yaml:"dictionary_api_key"           env:"SETTINGS_DICTIONARY_API_KEY"`
	DictionaryProvider       string `yaml:"dictionary_provider"          env:"SETTINGS_DICTIONARY_PROVIDER"          env-default:"yandex"`
	TranslationAPI           string `yaml:"translation_api"              env:"SETTINGS_TRANSLATION_API"              env-default:"google"`
	Width                    int    `yaml:"width"                        env:"SETTINGS_WIDTH"                        env-default:"300"`
	Height                   int    `yaml:"height"                       env:"SETTINGS_HEIGHT"                       env-default:"200"`
	PanelOffset              int    `yaml:"panel_offset"                 env:"SETTINGS_PANEL_OFFSET"                 env-default:"10"`
	PanelDirection           string `yaml:"panel_direction"              env:"SETTINGS_PANEL_DIRECTION"              env-default:"bottom"`
	PanelReferencePoint      string `yaml:"panel_reference_point"        env:"SETTINGS_PANEL_REFERENCE_POINT"        env-default:"bottomSelectedText"`
	FontSize                 int    `yaml:"font_size"                    env:"SETTINGS_FONT_SIZE"                    env-default:"13"`
	CandidateFontSize        int    `yaml:"candidate_font_size"          env:"SETTINGS_CANDIDATE_FONT_SIZE"          env-default:"12"`
	ResultFontColor          string `yaml:"result_font_color"            env:"SETTINGS_RESULT_FONT_COLOR"            env-default:"#000000"`
	CandidateFontColor       string `yaml:"candidate_font_color"         env:"SETTINGS_CANDIDATE_FONT_COLOR"         env-default:"#737373"`
	BgColor                  string `yaml:"bg_color"                     env:"SETTINGS_BG_COLOR"                     env-default:"#ffffff"`
	IfShowCandidate          bool   `yaml:"if_show_candidate"            env:"SETTINGS_IF_SHOW_CANDIDATE"            env-default:"true"`
	IfCheckLang              bool   `yaml:"if_check_lang"                env:"SETTINGS_IF_CHECK_LANG"                env-default:"true"`
	IfChangeSecondLangOnPage bool   `yaml:"if_change_second_lang_on_page" env:"SETTINGS_IF_CHANGE_SECOND_LANG_ON_PAGE" env-default:"false"`
	WhenSelectText           string `yaml:"when_select_text"             env:"SETTINGS_WHEN_SELECT_TEXT"             env-default:"showButton"`
}
