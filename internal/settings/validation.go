package settings

import "fmt"

// Validate checks that settings values are valid. Empty values are
// accepted and fall back to defaults when used.
func Validate(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings is nil")
	}
	if err := validateView(settings.ActiveView); err != nil {
		return err
	}
	return validateFormat(settings.Format)
}

func validateView(view string) error {
	if view == "" || isView(view) {
		return nil
	}
	return fmt.Errorf("invalid active_view value: %s", view)
}

func validateFormat(format string) error {
	switch format {
	case "", FormatSimple, FormatTable, FormatCompact, FormatJSON:
		return nil
	}
	return fmt.Errorf("invalid format value: %s", format)
}
