package ui

// Role accessors read the active theme on every call so that a theme change
// takes effect immediately.

// ColorReset returns the reset sequence.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorPrompt returns the prompt color.
func ColorPrompt() string { return GetCurrentTheme().Prompt }

// ColorValue returns the result color.
func ColorValue() string { return GetCurrentTheme().Value }

// ColorOperator returns the operator color.
func ColorOperator() string { return GetCurrentTheme().Operator }

// ColorMuted returns the secondary text color.
func ColorMuted() string { return GetCurrentTheme().Muted }

// ColorWarning returns the warning color.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the error color.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the bold sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// Paint wraps s in color and a reset. With the no-color theme s is returned
// untouched.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

// ErrorColors adapts the active theme to the color provider expected by the
// error handler.
type ErrorColors struct{}

func (ErrorColors) Yellow() string { return ColorWarning() }
func (ErrorColors) Red() string    { return ColorError() }
func (ErrorColors) Reset() string  { return ColorReset() }
