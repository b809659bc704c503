package config

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	Slack  SlackConfig
	Turso  TursoConfig
	Roster RosterConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether enough is configured to post to a channel.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RosterConfig lists players and factions recognised on top of the built-in roster.
type RosterConfig struct {
	ExtraNames    []string
	ExtraFactions []string
}
