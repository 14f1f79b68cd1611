// =============================================================================
// Record Translator - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default, so the translator runs without any file at all; a file only needs
// to name the settings it changes.
//
// CONFIGURATION SECTIONS:
//   1. Logging             : log_level, log_json
//   2. Output file naming  : output_name_format
//   3. Delimited input     : csv_settings
//   4. Fixed-width input   : fixed_width_settings
//   5. Serializers         : output_settings
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/ginjaninja78/record-translator/internal/types"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// xmlNamePattern matches the element names accepted for XML output.
var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// structValidator checks the validate tags of Config.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("xml_name", validateXMLName); err != nil {
		panic(err)
	}
	return v
}

// validateXMLName validates an XML element name.
func validateXMLName(fl validator.FieldLevel) bool {
	return xmlNamePattern.MatchString(fl.Field().String())
}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostics written to stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn" (rejected rows are reported)
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogJSON switches diagnostics to one JSON object per line.
	// Default: false
	LogJSON bool `yaml:"log_json"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the file name used with --output-dir.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {input}     - Input format tag
	//   {format}    - Output format tag
	// The output extension is appended when missing.
	// Default: "{input}_{timestamp}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format" validate:"required"`

	// CSVSettings contains settings for delimited input.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// FixedWidthSettings contains the column layout for fixed-width input.
	FixedWidthSettings FixedWidthSettings `yaml:"fixed_width_settings"`

	// OutputSettings contains serializer options.
	OutputSettings OutputSettings `yaml:"output_settings"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing delimited text.
type CSVSettings struct {
	// Delimiter is the single character separating fields.
	// Common values: "," (comma), "|" or "pipe", "\t" or "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// LazyQuotes tolerates bare and unterminated quotes instead of failing
	// the whole input.
	// Default: false
	LazyQuotes bool `yaml:"lazy_quotes"`
}

// Comma returns the delimiter as a rune.
func (s CSVSettings) Comma() rune {
	switch s.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	case "":
		return ','
	default:
		return []rune(s.Delimiter)[0]
	}
}

// =============================================================================
// FIXED-WIDTH SETTINGS STRUCTURE
// =============================================================================

// FixedWidthSettings describes the fixed-width column layout.
type FixedWidthSettings struct {
	// Columns lists the columns left to right. Offsets are cumulative.
	Columns []ColumnSpec `yaml:"columns" validate:"required,dive"`
}

// ColumnSpec is one fixed-width column.
type ColumnSpec struct {
	// Field is the canonical field the column feeds:
	// name, address, postcode, phone, creditLimit or birthday.
	Field string `yaml:"field" validate:"oneof=name address postcode phone creditLimit birthday"`

	// Width is the column width in characters.
	Width int `yaml:"width" validate:"gt=0"`
}

// DefaultColumns returns the standard fixed-width layout.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Field: types.FieldName, Width: 16},
		{Field: types.FieldAddress, Width: 22},
		{Field: types.FieldPostcode, Width: 9},
		{Field: types.FieldPhone, Width: 14},
		{Field: types.FieldCreditLimit, Width: 13},
		{Field: types.FieldBirthday, Width: 8},
	}
}

// =============================================================================
// OUTPUT SETTINGS STRUCTURE
// =============================================================================

// OutputSettings contains options shared by the serializers.
type OutputSettings struct {
	// HTMLTitle is the page title and heading of HTML output.
	// Default: "Data Records"
	HTMLTitle string `yaml:"html_title"`

	// XMLRootElement is the root element name of XML output.
	// Default: "records"
	XMLRootElement string `yaml:"xml_root_element" validate:"xml_name"`

	// XMLRecordElement is the element name of each record in XML output.
	// Default: "record"
	XMLRecordElement string `yaml:"xml_record_element" validate:"xml_name"`

	// Indent is the indentation unit for JSON and XML output.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// SheetName is the worksheet name of XLSX output.
	// Default: "Records"
	SheetName string `yaml:"sheet_name"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path yields
//     the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{input}_{timestamp}_{uuid}"
	}
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if len(cfg.FixedWidthSettings.Columns) == 0 {
		cfg.FixedWidthSettings.Columns = DefaultColumns()
	}
	if cfg.OutputSettings.HTMLTitle == "" {
		cfg.OutputSettings.HTMLTitle = "Data Records"
	}
	if cfg.OutputSettings.XMLRootElement == "" {
		cfg.OutputSettings.XMLRootElement = "records"
	}
	if cfg.OutputSettings.XMLRecordElement == "" {
		cfg.OutputSettings.XMLRecordElement = "record"
	}
	if cfg.OutputSettings.Indent == "" {
		cfg.OutputSettings.Indent = "  "
	}
	if cfg.OutputSettings.SheetName == "" {
		cfg.OutputSettings.SheetName = "Records"
	}
}

// Validate checks the configuration for values the translator cannot use.
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return describeValidationError(err)
	}

	switch c.CSVSettings.Delimiter {
	case "\\t", "tab", "TAB", "pipe", "PIPE", "semicolon":
	default:
		if len([]rune(c.CSVSettings.Delimiter)) != 1 {
			return fmt.Errorf("%w: csv_settings.delimiter %q must be a single character", ErrInvalidConfig, c.CSVSettings.Delimiter)
		}
		switch c.CSVSettings.Comma() {
		case '"', '\r', '\n':
			return fmt.Errorf("%w: csv_settings.delimiter %q is not allowed", ErrInvalidConfig, c.CSVSettings.Delimiter)
		}
	}

	return validateColumns(c.FixedWidthSettings.Columns)
}

// validateColumns requires every canonical field exactly once. Field names
// and widths are already checked by the validate tags.
func validateColumns(columns []ColumnSpec) error {
	seen := make(map[string]bool, len(columns))
	for i, column := range columns {
		if seen[column.Field] {
			return fmt.Errorf("%w: fixed_width_settings.columns[%d]: duplicate field %q", ErrInvalidConfig, i, column.Field)
		}
		seen[column.Field] = true
	}

	for _, field := range types.CanonicalFields {
		if !seen[field] {
			return fmt.Errorf("%w: fixed_width_settings.columns: missing field %q", ErrInvalidConfig, field)
		}
	}

	return nil
}

// describeValidationError turns validator errors into one ErrInvalidConfig
// error naming the first offending key.
func describeValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fe := validationErrors[0]
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return fmt.Errorf("%w: %s: value %v fails rule %s=%s", ErrInvalidConfig, key, fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s: value %v fails rule %s", ErrInvalidConfig, key, fe.Value(), fe.Tag())
}
