package learning

// Slot names a substitution point in a prompt template
type Slot string

const (
	SlotAge              Slot = "age"
	SlotSubject          Slot = "subject"
	SlotTopic            Slot = "topic"
	SlotLearnerType      Slot = "learner-type"
	SlotReferenceContent Slot = "reference-content"
)

// PromptParameters are the values substituted into an activity template.
// Built once per request and passed by value.
type PromptParameters struct {
	Age              int
	Subject          string
	Topic            string
	LearnerType      string
	ReferenceContent string
}
