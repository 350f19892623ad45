package schema

// Custom string types for type safety.
type (
	// Answer is the value held by a single checklist item.
	Answer string

	// ResetPolicy decides what a hidden element is reset to.
	ResetPolicy string

	// RuleKind tags the variant of a relevance rule node.
	RuleKind string

	// RecordStatus distinguishes an in-progress save from a finalized session.
	RecordStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for record storage.
	DatabaseBackend string
)

// All answers supported. Unset is the zero value.
const (
	AnswerUnset   Answer = ""
	AnswerYes     Answer = "yes"
	AnswerPartial Answer = "partial"
	AnswerNo      Answer = "no"
	AnswerNA      Answer = "na"
)

// Points awarded per answer.
const (
	PointsYes     = 2
	PointsPartial = 1
	PointsNo      = 0
	PointsPerItem = PointsYes
)

// All reset policies supported.
const (
	ResetNA    ResetPolicy = "na" // default
	ResetClear ResetPolicy = "clear"
)

// All rule kinds supported.
const (
	RuleEq       RuleKind = "eq"
	RuleNeq      RuleKind = "neq"
	RuleIn       RuleKind = "in"
	RuleAnswered RuleKind = "answered"
	RuleAll      RuleKind = "all"
	RuleAny      RuleKind = "any"
	RuleNot      RuleKind = "not"
)

// All record statuses supported.
const (
	StatusDraft    RecordStatus = "draft" // default
	StatusComplete RecordStatus = "complete"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All record backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidAnswers lists all valid answers, including the unset answer.
var ValidAnswers = map[Answer]struct{}{
	AnswerUnset:   {},
	AnswerYes:     {},
	AnswerPartial: {},
	AnswerNo:      {},
	AnswerNA:      {},
}

// ValidResetPolicies lists all valid reset policies.
var ValidResetPolicies = map[ResetPolicy]struct{}{
	ResetNA:    {},
	ResetClear: {},
}

// ValidRuleKinds lists all valid rule kinds.
var ValidRuleKinds = map[RuleKind]struct{}{
	RuleEq:       {},
	RuleNeq:      {},
	RuleIn:       {},
	RuleAnswered: {},
	RuleAll:      {},
	RuleAny:      {},
	RuleNot:      {},
}

// ValidRecordStatuses lists all valid record statuses.
var ValidRecordStatuses = map[RecordStatus]struct{}{
	StatusDraft:    {},
	StatusComplete: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid record backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
