package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "rootstats.db")
	t.Setenv("PORT", "")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("EXTRA_NAMES", "Lena, ,Jonas")
	t.Setenv("EXTRA_FACTIONS", "Corvid Conspiracy")

	cfg := Load()

	assert.Equal(t, "rootstats.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.Slack.Enabled())
	assert.Equal(t, []string{"Lena", "Jonas"}, cfg.Roster.ExtraNames)
	assert.Equal(t, []string{"Corvid Conspiracy"}, cfg.Roster.ExtraFactions)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,b,"))
}

func TestSlackEnabled(t *testing.T) {
	assert.False(t, SlackConfig{Token: "xoxb"}.Enabled())
	assert.False(t, SlackConfig{ChannelID: "C1"}.Enabled())
}
