package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/nfi-health/assess/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Label names used in score columns, from best to worst.
const (
	ExcellentLabel = "excellent"
	GoodLabel      = "good"
	FairLabel      = "fair"
)

// DefaultThresholds are the minimum percentages for each label.
var DefaultThresholds = map[string]int{
	ExcellentLabel: 90,
	GoodLabel:      75,
	FairLabel:      50,
}

// ThresholdsRawInput holds label threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	Excellent *int `mapstructure:"excellent"`
	Good      *int `mapstructure:"good"`
	Fair      *int `mapstructure:"fair"`
}

// Config holds the runtime configuration of the assess CLI.
// This struct remains the "final, validated" config.
type Config struct {
	ChecklistID   string // built-in checklist ID
	ChecklistFile string // checklist definition file; takes precedence over ChecklistID

	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output
	Verbose    bool

	RecordBackend   schema.DatabaseBackend
	RecordDBConnect string // Please use env var as this is plaintext

	Mentor schema.Actor
	Meta   schema.RecordMeta

	// Record listing filters
	Status      schema.RecordStatus
	ResultLimit int

	// LabelThresholds is a mapping of [LabelName] = minimum percentage
	LabelThresholds map[string]int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Checklist       string `mapstructure:"checklist"`
	ChecklistFile   string `mapstructure:"checklist-file"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	Verbose         bool   `mapstructure:"verbose"`
	RecordBackend   string `mapstructure:"record-backend"`
	RecordDBConnect string `mapstructure:"record-db-connect"`
	MentorName      string `mapstructure:"mentor-name"`
	MentorEmail     string `mapstructure:"mentor-email"`
	Course          string `mapstructure:"course"`
	Participant     string `mapstructure:"participant"`
	ThresholdsStr   string `mapstructure:"thresholds-override"`

	// --- Fields from recordsListCmd.Flags() ---
	Status string `mapstructure:"status"`
	Limit  int    `mapstructure:"limit"`

	// --- Label thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.LabelThresholds != nil {
		clone.LabelThresholds = make(map[string]int, len(c.LabelThresholds))
		maps.Copy(clone.LabelThresholds, c.LabelThresholds)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processIdentity(cfg, input); err != nil {
		return err
	}
	return processLabelThresholds(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("record-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("record-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the record backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RecordBackend = schema.DatabaseBackend(strings.ToLower(input.RecordBackend))
	if cfg.RecordBackend == "" {
		cfg.RecordBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RecordBackend]; !ok {
		return fmt.Errorf("invalid record backend '%s'. must be sqlite, mysql, postgresql, none", input.RecordBackend)
	}
	cfg.RecordDBConnect = input.RecordDBConnect
	return ValidateDatabaseConnectionString(cfg.RecordBackend, cfg.RecordDBConnect)
}

// validateSimpleInputs processes and validates all output and filter fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ChecklistID = strings.ToLower(strings.TrimSpace(input.Checklist))
	cfg.ChecklistFile = strings.TrimSpace(input.ChecklistFile)
	cfg.OutputFile = input.OutputFile
	cfg.Verbose = input.Verbose
	cfg.Meta = schema.RecordMeta{
		CourseID:      strings.TrimSpace(input.Course),
		ParticipantID: strings.TrimSpace(input.Participant),
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 3. Status Filter Validation ---
	cfg.Status = schema.RecordStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if cfg.Status != "" {
		if _, ok := schema.ValidRecordStatuses[cfg.Status]; !ok {
			return fmt.Errorf("invalid status '%s'. must be draft or complete", input.Status)
		}
	}

	return nil
}

// processIdentity builds the mentor identity attached to saved records.
func processIdentity(cfg *Config, input *ConfigRawInput) error {
	name := strings.TrimSpace(input.MentorName)
	email := strings.TrimSpace(input.MentorEmail)
	if email != "" && !strings.Contains(email, "@") {
		return fmt.Errorf("invalid mentor email '%s'", input.MentorEmail)
	}
	cfg.Mentor = schema.Actor{Name: name, Email: email}
	return nil
}

// processLabelThresholds converts the raw threshold input into the final cfg.LabelThresholds map.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processLabelThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[string]int, len(DefaultThresholds))
	maps.Copy(thresholds, DefaultThresholds)

	// Override with config file values if provided
	if input.Thresholds.Excellent != nil {
		thresholds[ExcellentLabel] = *input.Thresholds.Excellent
	}
	if input.Thresholds.Good != nil {
		thresholds[GoodLabel] = *input.Thresholds.Good
	}
	if input.Thresholds.Fair != nil {
		thresholds[FairLabel] = *input.Thresholds.Fair
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsed, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for label, threshold := range thresholds {
		if threshold < 0 || threshold > 100 {
			return fmt.Errorf("threshold for %s must be between 0 and 100 (received %d)", label, threshold)
		}
	}
	if thresholds[ExcellentLabel] < thresholds[GoodLabel] || thresholds[GoodLabel] < thresholds[FairLabel] {
		return fmt.Errorf("thresholds must satisfy excellent >= good >= fair (received %d, %d, %d)",
			thresholds[ExcellentLabel], thresholds[GoodLabel], thresholds[FairLabel])
	}

	cfg.LabelThresholds = thresholds
	return nil
}

// parseThresholdsString parses a string like "excellent:90,good:75,fair:50"
// into a map of label to minimum percentage.
func parseThresholdsString(s string) (map[string]int, error) {
	thresholds := make(map[string]int)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'label:value'", part)
		}

		label := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])
		if _, ok := DefaultThresholds[label]; !ok {
			return nil, fmt.Errorf("invalid label '%s', must be excellent, good, or fair", label)
		}

		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, label, err)
		}
		thresholds[label] = value
	}

	return thresholds, nil
}
