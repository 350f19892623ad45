package contract

import (
	"testing"

	"github.com/nfi-health/assess/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Checklist: "EENC",
		Output:    "text",
		Color:     "yes",
		Limit:     DefaultResultLimit,
	}
}

func intPtr(v int) *int { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}},
		{name: "invalid output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "limit zero", modify: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: "limit must be greater than 0"},
		{name: "limit too high", modify: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: "cannot exceed"},
		{name: "negative width", modify: func(in *ConfigRawInput) { in.Width = -1 }, expectError: "width cannot be negative"},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: "invalid --color value"},
		{name: "invalid status", modify: func(in *ConfigRawInput) { in.Status = "archived" }, expectError: "invalid status"},
		{name: "valid status", modify: func(in *ConfigRawInput) { in.Status = "Complete" }},
		{name: "invalid backend", modify: func(in *ConfigRawInput) { in.RecordBackend = "mongo" }, expectError: "invalid record backend"},
		{name: "mysql without dsn", modify: func(in *ConfigRawInput) { in.RecordBackend = "mysql" }, expectError: "record-db-connect is required"},
		{
			name: "mysql with dsn",
			modify: func(in *ConfigRawInput) {
				in.RecordBackend = "mysql"
				in.RecordDBConnect = "user:pass@tcp(localhost:3306)/assess"
			},
		},
		{name: "invalid mentor email", modify: func(in *ConfigRawInput) { in.MentorEmail = "amina" }, expectError: "invalid mentor email"},
		{name: "threshold out of range", modify: func(in *ConfigRawInput) { in.Thresholds.Fair = intPtr(120) }, expectError: "between 0 and 100"},
		{name: "thresholds out of order", modify: func(in *ConfigRawInput) { in.ThresholdsStr = "good:95" }, expectError: "excellent >= good >= fair"},
		{name: "bad threshold override", modify: func(in *ConfigRawInput) { in.ThresholdsStr = "great:95" }, expectError: "invalid label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	input := validInput()
	input.ChecklistFile = " forms/eenc.yaml "
	input.MentorName = " Amina Okafor "
	input.MentorEmail = "amina@example.org"
	input.Course = "course-12"
	input.Participant = "p-4"
	input.Output = "JSON"
	input.Status = "draft"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "eenc", cfg.ChecklistID)
	assert.Equal(t, "forms/eenc.yaml", cfg.ChecklistFile)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.RecordBackend, "sqlite is the default backend")
	assert.Equal(t, schema.Actor{Name: "Amina Okafor", Email: "amina@example.org"}, cfg.Mentor)
	assert.Equal(t, schema.RecordMeta{CourseID: "course-12", ParticipantID: "p-4"}, cfg.Meta)
	assert.Equal(t, schema.StatusDraft, cfg.Status)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultThresholds, cfg.LabelThresholds)
}

func TestProcessLabelThresholds(t *testing.T) {
	input := validInput()
	input.Thresholds = ThresholdsRawInput{Excellent: intPtr(95), Fair: intPtr(40)}
	input.ThresholdsStr = "good:80"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, map[string]int{ExcellentLabel: 95, GoodLabel: 80, FairLabel: 40}, cfg.LabelThresholds)
}

func TestParseThresholdsString(t *testing.T) {
	tests := []struct {
		input    string
		expected map[string]int
		wantErr  bool
	}{
		{"", map[string]int{}, false},
		{"excellent:92", map[string]int{ExcellentLabel: 92}, false},
		{" Good : 70 , fair:45 ,", map[string]int{GoodLabel: 70, FairLabel: 45}, false},
		{"good", nil, true},
		{"good:high", nil, true},
		{"good:1:2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseThresholdsString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(db:3306)/assess", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@db/assess", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(db:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db port=5432 dbname=assess", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=assess", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=db", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ChecklistID: "eenc", LabelThresholds: map[string]int{GoodLabel: 75}}
	clone := cfg.Clone()
	clone.LabelThresholds[GoodLabel] = 10
	clone.ChecklistID = "imnci"

	assert.Equal(t, 75, cfg.LabelThresholds[GoodLabel])
	assert.Equal(t, "eenc", cfg.ChecklistID)
}
