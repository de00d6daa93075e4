package tui

// Theme holds the prefixes used for runner messages.
type Theme struct {
	SectionPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{SectionPrefix: "▸ ", ErrorPrefix: "✘ "}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}
