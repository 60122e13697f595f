package outbox

// Event types recorded by the repository and delivered by the dispatcher.
const (
	EventActivityCreated = "activity.created"
	EventResultAdded     = "result.added"

	// Topic carrying every studylog event. Consumers treat the events as
	// refresh hints, so a single ordered stream is enough.
	Topic = "study_activity_events"
)

// ActivityCreated is emitted when a new activity record is stored.
type ActivityCreated struct {
	ActivityID int    `json:"activity_id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	IncludedAt string `json:"included_at"`
}

// ResultAdded is emitted when a sub-record is appended to an activity.
type ResultAdded struct {
	ActivityID int    `json:"activity_id"`
	Shape      string `json:"shape"`
	Area       string `json:"area"`
	ExecutedAt string `json:"executed_at"`
}
