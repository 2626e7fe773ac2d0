package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSourcePatterns indicates missing source glob patterns
	ErrNoSourcePatterns = errors.New("no source patterns")

	// ErrEmptyMetadataDir indicates a missing metadata directory setting
	ErrEmptyMetadataDir = errors.New("empty metadata directory")

	// ErrEmptyOutputDir indicates a missing output directory setting
	ErrEmptyOutputDir = errors.New("empty output directory")

	// ErrInvalidLanguage indicates an invalid code-reference language tag
	ErrInvalidLanguage = errors.New("invalid output language")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if len(cfg.Paths.Sources) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one paths.sources pattern required", ErrNoSourcePatterns))
	}

	if strings.TrimSpace(cfg.Metadata.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: metadata.dir is required", ErrEmptyMetadataDir))
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is required", ErrEmptyOutputDir))
	}

	if err := validateLanguage(cfg.Output.Language); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// validateLanguage checks the code-reference tag: it lands inside generated
// markdown ([!code-<tag>[...]]) so only letters and digits are allowed.
func validateLanguage(language string) error {
	if language == "" {
		return fmt.Errorf("%w: output.language is required", ErrInvalidLanguage)
	}
	for _, r := range language {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit {
			return fmt.Errorf("%w: must be alphanumeric, got '%s'", ErrInvalidLanguage, language)
		}
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
