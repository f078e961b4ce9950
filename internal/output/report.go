package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/glidepath/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the comparison in the given format to the working directory.
func GenerateReport(results *domain.StrategyComparison, format string) error {
	_, err := GenerateReportTo(results, format, ".")
	return err
}

// GenerateReportTo writes the comparison in the given format under dir and returns
// the written file names. The pseudo-format "all" writes every built-in formatter.
func GenerateReportTo(results *domain.StrategyComparison, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, results, dir, ExtensionFor(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var written []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, results, dir, ExtensionFor(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	}
	return nil, UnsupportedFormat(format)
}

// UnsupportedFormat wraps ErrUnsupportedFormat with the available formatters and aliases.
func UnsupportedFormat(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes the configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
