package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	panelDirections     = []string{"top", "bottom", "right", "left", "topRight", "topLeft", "bottomRight", "bottomLeft"}
	referencePoints     = []string{"topSelectedText", "bottomSelectedText", "clickedPoint"}
	translationAPIs     = []string{"google", "mymemory"}
	dictionaryProviders = []string{"yandex", "freedict"}
	selectBehaviors     = []string{"dontShowButton", "showButton", "showPanel"}
	logLevels           = []string{"debug", "info", "warn", "error"}
	logFormats          = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate_limit.rps must be > 0 (got %v)", c.RateLimit.RPS)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate_limit.burst must be > 0 (got %d)", c.RateLimit.Burst)
		}
	}

	if c.Lookup.GracePeriod < 0 {
		return fmt.Errorf("lookup.grace_period must be >= 0 (got %s)", c.Lookup.GracePeriod)
	}
	if c.Lookup.ProviderTimeout < 0 {
		return fmt.Errorf("lookup.provider_timeout must be >= 0 (got %s)", c.Lookup.ProviderTimeout)
	}

	if err := c.Settings.validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

func (s *SettingsConfig) validate() error {
	if strings.TrimSpace(s.TargetLang) == "" {
		return fmt.Errorf("target_lang is required")
	}
	if !slices.Contains(translationAPIs, s.TranslationAPI) {
		return fmt.Errorf("translation_api must be one of %v (got %q)", translationAPIs, s.TranslationAPI)
	}
	if !slices.Contains(dictionaryProviders, s.DictionaryProvider) {
		return fmt.Errorf("dictionary_provider must be one of %v (got %q)", dictionaryProviders, s.DictionaryProvider)
	}
	if !slices.Contains(panelDirections, s.PanelDirection) {
		return fmt.Errorf("panel_direction must be one of %v (got %q)", panelDirections, s.PanelDirection)
	}
	if !slices.Contains(referencePoints, s.PanelReferencePoint) {
		return fmt.Errorf("panel_reference_point must be one of %v (got %q)", referencePoints, s.PanelReferencePoint)
	}
	if !slices.Contains(selectBehaviors, s.WhenSelectText) {
		return fmt.Errorf("when_select_text must be one of %v (got %q)", selectBehaviors, s.WhenSelectText)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("width and height must be > 0 (got %dx%d)", s.Width, s.Height)
	}
	if s.PanelOffset < 0 {
		return fmt.Errorf("panel_offset must be >= 0 (got %d)", s.PanelOffset)
	}
	return nil
}
