// Package events defines the trip-planner's Kafka topics and event
// payloads. Transport lives in kafkabus; this package only names what gets
// published.
package events

// TopicRegistry defines the Kafka topics trip-planner publishes to or
// shares with the dispatch side of the system.
type TopicRegistry struct {
	// Dispatch Service topics this service observes or correlates with
	TripCreated  string
	TripAssigned string

	// Trip Planner topics
	TripPlanRequested string
	TripPlanned       string
	TripPlanFailed    string
	DailyLogRebuilt   string
}

// Topics is the global topic registry
var Topics = TopicRegistry{
	TripCreated:  "dispatch.trip.created",
	TripAssigned: "dispatch.trip.assigned",

	TripPlanRequested: "trip-planner.trip.plan_requested",
	TripPlanned:       "trip-planner.trip.planned",
	TripPlanFailed:    "trip-planner.trip.plan_failed",
	DailyLogRebuilt:   "trip-planner.daily_log.rebuilt",
}

// GetAllTopics returns a list of all topic names
func (t *TopicRegistry) GetAllTopics() []string {
	return []string{
		t.TripCreated,
		t.TripAssigned,
		t.TripPlanRequested,
		t.TripPlanned,
		t.TripPlanFailed,
		t.DailyLogRebuilt,
	}
}
