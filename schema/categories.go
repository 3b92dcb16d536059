package schema

import (
	"fmt"
	"regexp"

	pi "github.com/pipid/ingester"
)

// Format patterns shared across the pipeline.
var (
	// SemverPattern matches MAJOR.MINOR.PATCH version strings.
	SemverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

	// LanguagePattern matches ISO 639-1 language tags with an optional
	// ISO 3166-1 region (e.g. "en", "pt-BR").
	LanguagePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

	// CurrencyPattern matches ISO 4217 currency codes.
	CurrencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// NotificationChannels is the fixed set of delivery channels.
var NotificationChannels = []string{"in-app", "email", "push", "sms"}

// standardCategories returns the eight PIP preference sub-schemas in
// validation order.
func standardCategories() []*Category {
	return []*Category{
		{
			Name:      "ui",
			EnumOrder: []string{"theme", "density", "fontSize"},
			Enums: map[string][]string{
				"theme":    {"light", "dark", "auto", "high-contrast"},
				"density":  {"compact", "comfortable", "spacious"},
				"fontSize": {"small", "medium", "large", "xlarge"},
			},
			Defaults: map[string]any{
				"theme":          "auto",
				"density":        "comfortable",
				"fontSize":       "medium",
				"colorBlindMode": false,
				"reducedMotion":  false,
			},
		},
		{
			Name:      "interaction",
			EnumOrder: []string{"tone", "verbosity", "confirmationStyle"},
			Enums: map[string][]string{
				"tone":              {"formal", "casual", "friendly", "professional", "minimal"},
				"verbosity":         {"minimal", "moderate", "detailed", "verbose"},
				"confirmationStyle": {"always", "destructive-only", "never"},
			},
			Defaults: map[string]any{
				"tone":              "friendly",
				"verbosity":         "moderate",
				"confirmationStyle": "destructive-only",
				"keyboardShortcuts": true,
			},
		},
		{
			Name:      "automation",
			EnumOrder: []string{"level", "maxAutomationScope"},
			Enums: map[string][]string{
				"level":              {"none", "suggestions", "auto-approve-safe", "aggressive"},
				"maxAutomationScope": {"local", "session", "account", "global"},
			},
			Defaults: map[string]any{
				"level":              "suggestions",
				"aiSuggestions":      true,
				"autoSave":           true,
				"predictiveActions":  false,
				"maxAutomationScope": "session",
			},
		},
		{
			Name:      "notifications",
			EnumOrder: []string{"frequency"},
			Enums: map[string][]string{
				"frequency": {"realtime", "batched", "digest", "off"},
			},
			Check: checkNotificationChannels,
			Defaults: map[string]any{
				"enabled":   true,
				"frequency": "batched",
				"channels":  []any{"in-app"},
			},
		},
		{
			Name:      "content",
			EnumOrder: []string{"language", "dateFormat", "timeFormat", "currency"},
			Enums: map[string][]string{
				"dateFormat": {"ISO", "US", "EU", "relative"},
				"timeFormat": {"12h", "24h"},
			},
			Patterns: map[string]Pattern{
				"language": {Regexp: LanguagePattern, Message: "Invalid content.language format (expected ISO 639-1)"},
				"currency": {Regexp: CurrencyPattern, Message: "Invalid content.currency format (expected ISO 4217)"},
			},
			Defaults: map[string]any{
				"language":      "en",
				"dateFormat":    "ISO",
				"timeFormat":    "24h",
				"currency":      "USD",
				"contentFilter": "moderate",
			},
		},
		{
			Name:      "privacy",
			EnumOrder: []string{"dataSharing"},
			Enums: map[string][]string{
				"dataSharing": {"none", "anonymized", "full"},
			},
			Defaults: map[string]any{
				"dataSharing":     "anonymized",
				"analytics":       true,
				"personalization": true,
			},
		},
		{
			Name:      "accessibility",
			EnumOrder: []string{"focusIndicators"},
			Enums: map[string][]string{
				"focusIndicators": {"minimal", "standard", "enhanced"},
			},
			Defaults: map[string]any{
				"screenReader":    false,
				"highContrast":    false,
				"focusIndicators": "standard",
			},
		},
		{
			Name:      "risk",
			EnumOrder: []string{"tolerance"},
			Enums: map[string][]string{
				"tolerance": {"conservative", "moderate", "aggressive"},
			},
			Check: checkRisk,
			Defaults: map[string]any{
				"tolerance":           "moderate",
				"requireConfirmation": true,
			},
		},
	}
}

// checkNotificationChannels validates the channels array: it must be an
// array and every entry must be a recognized channel.
func checkNotificationChannels(fields map[string]any) []pi.Issue {
	raw, present := fields["channels"]
	if !present {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(
			pi.CodeStructure,
			"notifications.channels must be an array",
			"preferences.notifications.channels",
		)}
	}

	var invalid []any
	for _, ch := range list {
		if !isOneOf(ch, NotificationChannels) {
			invalid = append(invalid, ch)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return []pi.Issue{pi.ErrorIssue(
		pi.CodeValue,
		fmt.Sprintf("Invalid notification channels: %s", formatInvalid(invalid)),
		"preferences.notifications.channels",
	)}
}

// checkRisk validates maxTransactionAmount: a number, zero or greater.
func checkRisk(fields map[string]any) []pi.Issue {
	raw, present := fields["maxTransactionAmount"]
	if !present {
		return nil
	}

	n, ok := raw.(float64)
	if !ok || n < 0 {
		return []pi.Issue{pi.ErrorIssue(
			pi.CodeValue,
			"risk.maxTransactionAmount must be a non-negative number",
			"preferences.risk.maxTransactionAmount",
		)}
	}
	return nil
}

// The three recognized behavioral fields, in check order. Behaviors
// have no defaults; the format leaves them caller-supplied only.
var behaviorOrder = []string{"workflow", "learningStyle", "decisionSpeed"}

var behaviorEnums = map[string][]string{
	"workflow":      {"linear", "exploratory", "task-focused", "multi-tasking"},
	"learningStyle": {"tutorial", "examples", "trial-and-error", "documentation"},
	"decisionSpeed": {"deliberate", "balanced", "quick"},
}

// ValidateBehaviors checks the behaviors object. A non-object value
// yields a single structure issue.
func ValidateBehaviors(value any) []pi.Issue {
	fields, ok := value.(map[string]any)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(pi.CodeStructure, "Behaviors must be an object", "behaviors")}
	}

	var issues []pi.Issue
	for _, field := range behaviorOrder {
		raw, present := fields[field]
		if !present {
			continue
		}
		if !isOneOf(raw, behaviorEnums[field]) {
			issues = append(issues, pi.ErrorIssue(
				pi.CodeValue,
				fmt.Sprintf("Invalid behaviors.%s value", field),
				"behaviors."+field,
			))
		}
	}
	return issues
}
