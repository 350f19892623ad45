package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfi-health/assess/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.Record {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []schema.Record{
		{
			ID:            "rec-1",
			ChecklistID:   "eenc",
			CourseID:      "course-1",
			ParticipantID: "p1",
			Status:        schema.StatusComplete,
			Payload: schema.Payload{
				Fields:  map[string]string{"breathing_status": "yes"},
				Answers: map[string]map[string]string{"prep": {"hand_hygiene": "yes"}},
			},
			Scores: map[string]schema.SectionScore{
				"prep":   {Score: 7, MaxScore: 8},
				"drying": {Score: 2, MaxScore: 4},
			},
			Overall:       schema.SectionScore{Score: 9, MaxScore: 12},
			MentorName:    "Amina Otieno",
			MentorEmail:   "amina@example.org",
			EditedByEmail: "joseph@example.org",
			CreatedAt:     created,
			UpdatedAt:     created.Add(time.Hour),
		},
		{
			ID:            "rec-2",
			ChecklistID:   "imnci",
			CourseID:      "course-1",
			ParticipantID: "p2",
			Status:        schema.StatusDraft,
			Scores:        map[string]schema.SectionScore{"danger_signs": {}},
			CreatedAt:     created,
			UpdatedAt:     created,
		},
	}
}

func TestAssessmentRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(AssessmentRecord))
	require.NotNil(t, s)

	expectedColumns := []string{
		"record_id", "checklist_id", "course_id", "participant_id", "status",
		"score", "max_score", "percent", "mentor_name", "mentor_email",
		"edited_by_email", "created_at", "updated_at", "payload",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertRecords(t *testing.T) {
	rows, err := ConvertRecords(sampleRecords())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "rec-1", rows[0].RecordID)
	assert.Equal(t, "complete", rows[0].Status)
	require.NotNil(t, rows[0].Percent)
	assert.Equal(t, int32(75), *rows[0].Percent)
	require.NotNil(t, rows[0].EditedByEmail)
	assert.Equal(t, "joseph@example.org", *rows[0].EditedByEmail)
	assert.JSONEq(t, `{"fields":{"breathing_status":"yes"},"answers":{"prep":{"hand_hygiene":"yes"}}}`, rows[0].Payload)

	assert.Nil(t, rows[1].Percent, "nothing scored has no percentage")
	assert.Nil(t, rows[1].EditedByEmail)
	assert.JSONEq(t, `{}`, rows[1].Payload)
}

func TestConvertSectionScores(t *testing.T) {
	rows := ConvertSectionScores(sampleRecords())
	require.Len(t, rows, 3)

	assert.Equal(t, "drying", rows[0].Section, "sections are sorted by name")
	assert.Equal(t, int32(50), *rows[0].Percent)
	assert.Equal(t, "prep", rows[1].Section)
	assert.Equal(t, int32(88), *rows[1].Percent)
	assert.Equal(t, "rec-2", rows[2].RecordID)
	assert.Nil(t, rows[2].Percent)
}

func TestWriteRecordsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "records.parquet")

	data, err := ConvertRecords(sampleRecords())
	require.NoError(t, err)
	require.NoError(t, WriteRecordsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[AssessmentRecord](file)
	defer func() { _ = reader.Close() }()

	readData := make([]AssessmentRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RecordID, readData[i].RecordID)
		assert.Equal(t, data[i].ChecklistID, readData[i].ChecklistID)
		assert.Equal(t, data[i].Score, readData[i].Score)
		assert.Equal(t, data[i].MaxScore, readData[i].MaxScore)
		assert.Equal(t, data[i].Payload, readData[i].Payload)
		assert.WithinDuration(t, data[i].UpdatedAt, readData[i].UpdatedAt, time.Microsecond)
		if data[i].Percent == nil {
			assert.Nil(t, readData[i].Percent)
		} else {
			require.NotNil(t, readData[i].Percent)
			assert.Equal(t, *data[i].Percent, *readData[i].Percent)
		}
	}
}

func TestWriteSectionScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "sections.parquet")
	data := ConvertSectionScores(sampleRecords())
	require.NoError(t, WriteSectionScoresParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[SectionScore](file)
	defer func() { _ = reader.Close() }()
	assert.Equal(t, int64(len(data)), reader.NumRows())
}

func TestWriteRecordsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteRecordsParquet([]AssessmentRecord{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Parquet file should have metadata even when empty")
}

func TestWriteRecordsParquet_InvalidPath(t *testing.T) {
	err := WriteRecordsParquet(nil, filepath.Join(t.TempDir(), "missing", "dir", "out.parquet"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
