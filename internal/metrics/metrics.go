package metrics

const Namespace = "chatten"

const (
	LabelStatus = "status"
	LabelModel  = "model"

	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)
