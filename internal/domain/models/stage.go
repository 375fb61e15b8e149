// internal/domain/models/stage.go
package models

// Stage is a donation's position in the intake workflow. A donation lives
// in exactly one stage collection at a time; moving it to another stage
// creates a new document (new _id) and deletes the old one.
type Stage string

const (
	StagePending   Stage = "pending"
	StageRejected  Stage = "rejected"
	StageAccepted  Stage = "accepted"
	StageFinalized Stage = "finalized"
)

// Stages lists all workflow stages in lifecycle order.
var Stages = []Stage{StagePending, StageRejected, StageAccepted, StageFinalized}

// Collection returns the MongoDB collection name backing the stage.
func (s Stage) Collection() string {
	switch s {
	case StageRejected:
		return "doacoes_rejeitadas"
	case StageAccepted:
		return "doacoes_aceitas"
	case StageFinalized:
		return "doacoes_finalizadas"
	default:
		return "doacoes"
	}
}

// Valid reports whether s is one of the four workflow stages.
func (s Stage) Valid() bool {
	switch s {
	case StagePending, StageRejected, StageAccepted, StageFinalized:
		return true
	}
	return false
}
