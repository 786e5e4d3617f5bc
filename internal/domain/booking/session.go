package booking

// SessionType is the kind of training session a client can request.
type SessionType string

const (
	SessionPersonal   SessionType = "personal"
	SessionGroup      SessionType = "group"
	SessionEvaluation SessionType = "evaluation"
)

var sessionTypeLabels = map[SessionType]string{
	SessionPersonal:   "Coaching personnel",
	SessionGroup:      "Cours collectif",
	SessionEvaluation: "Séance d'évaluation",
}

// IsValid returns true if the session type is recognized.
func (t SessionType) IsValid() bool {
	_, exists := sessionTypeLabels[t]
	return exists
}

// Label returns the display label for the session type, falling back to the
// raw value when unrecognized.
func (t SessionType) Label() string {
	if label, ok := sessionTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Goal is the client's training objective.
type Goal string

const (
	GoalWeightLoss     Goal = "weight-loss"
	GoalMuscleGain     Goal = "muscle-gain"
	GoalFitness        Goal = "fitness"
	GoalPerformance    Goal = "performance"
	GoalRehabilitation Goal = "rehabilitation"
	GoalWellness       Goal = "wellness"
)

var goalLabels = map[Goal]string{
	GoalWeightLoss:     "Perte de poids",
	GoalMuscleGain:     "Prise de masse",
	GoalFitness:        "Remise en forme",
	GoalPerformance:    "Performance",
	GoalRehabilitation: "Rééducation",
	GoalWellness:       "Bien-être",
}

// IsValid returns true if the goal is recognized.
func (g Goal) IsValid() bool {
	_, exists := goalLabels[g]
	return exists
}

// Label returns the display label for the goal, falling back to the raw
// value when unrecognized.
func (g Goal) Label() string {
	if label, ok := goalLabels[g]; ok {
		return label
	}
	return string(g)
}
