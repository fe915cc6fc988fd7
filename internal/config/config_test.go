package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[awsprod]
access_key = "AKIATEST"
secret_key = "secret"
pagerduty_schedule_id = "PSCHED1"

[twilio]
account = "AC123"
token = "tok"

[desk_phone]
"Alice Smith" = 71234
"bob jones" = "75678"

[cell_phone]
"Alice Smith" = "1-408-555-0101"

[email]
owner = "alice@my_company.com"

[agent]
lookahead = 15
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phone-agent.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should fail for a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		require.Error(t, err)
	})

	t.Run("Should fail for a malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[awsprod\naccess_key ="))
		require.Error(t, err)
	})
}

func TestStoreGet(t *testing.T) {
	store, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	tests := []struct {
		name    string
		section string
		key     string
		want    string
		wantErr bool
	}{
		{name: "Should read a file value", section: "awsprod", key: "pagerduty_schedule_id", want: "PSCHED1"},
		{name: "Should read a default", section: "twilio", key: "twimlet_base", want: "http://twimlets.com"},
		{name: "Should fail for a missing key", section: "awsprod", key: "region", wantErr: true},
		{name: "Should fail for a missing section", section: "nope", key: "key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Get(tt.section, tt.key)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreEnvOverride(t *testing.T) {
	t.Setenv("PHONE_AGENT_TWILIO_TOKEN", "from-env")
	t.Setenv("PHONE_AGENT_AWSPROD_REGION", "us-west-2")

	store, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	tw, err := store.Twilio()
	require.NoError(t, err)
	assert.Equal(t, "from-env", tw.Token)

	region, err := store.Get("awsprod", "region")
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", region)
}

func TestStorePerson(t *testing.T) {
	store, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	tests := []struct {
		name    string
		section string
		person  string
		want    string
		wantErr bool
	}{
		{name: "Should read a number value", section: "desk_phone", person: "Alice Smith", want: "71234"},
		{name: "Should ignore case", section: "desk_phone", person: "Bob Jones", want: "75678"},
		{name: "Should ignore surrounding blanks", section: "cell_phone", person: " alice smith ", want: "1-408-555-0101"},
		{name: "Should fail for an unknown person", section: "cell_phone", person: "Bob Jones", wantErr: true},
		{name: "Should fail for a missing section", section: "home_phone", person: "Alice Smith", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Person(tt.section, tt.person)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreSections(t *testing.T) {
	store, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	agent, err := store.Agent()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, agent.Lookahead)
	assert.Equal(t, "America/Los_Angeles", agent.Location.String())
	assert.Equal(t, "+1408540", agent.DeskReplacement)

	email := store.Email()
	assert.Equal(t, "ses", email.Driver)
	assert.Equal(t, []string{"sysEng@my_company.com", "alice@my_company.com"}, email.To)

	pd, err := store.PagerDuty()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, pd.Timeout)

	assert.Equal(t, "AKIATEST", store.AWS().AccessKey)
	assert.Equal(t, "*/5 * * * *", store.Serve().Cron)
	assert.Empty(t, store.JournalPath())

	t.Run("Should require the Twilio credentials", func(t *testing.T) {
		store, err := Load(writeConfig(t, "[awsprod]\npagerduty_schedule_id = \"P1\"\n"))
		require.NoError(t, err)

		_, err = store.Twilio()
		require.ErrorIs(t, err, ErrNotFound)
	})
}
