package database

// Incident is one guard action recorded to the incident log.
type Incident struct {
	ID          int64
	GuildID     string
	Guard       string
	ActorID     string
	TargetID    string
	ActionTaken string
	Reason      string
	Timestamp   int64
}

// PunishedUser is a user the guardian has banned or sanctioned, kept so
// rejoin handling can recognize them.
type PunishedUser struct {
	ID         int64
	GuildID    string
	UserID     string
	Reason     string
	PunishedAt int64
	PunishedBy string
	IsBot      bool
}
