package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/diegoclair/oncall-phone-agent/internal/domain/contract"
	"github.com/diegoclair/oncall-phone-agent/internal/domain/entity"
	"github.com/diegoclair/oncall-phone-agent/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testScheduleID = "PSCHED1"
	testController = "+18005551212"
	alice          = "Alice Smith"
	bob            = "Bob Jones"
)

var testZone = time.FixedZone("PST", -8*60*60)

type allMocks struct {
	mockConfig   *mocks.MockConfigStore
	mockSchedule *mocks.MockScheduleClient
	mockCalls    *mocks.MockCallPlacer
	mockDryRun   *mocks.MockCallPlacer
	mockNotifier *mocks.MockNotifier
	mockClock    *mocks.MockClock
	mockDM       *mocks.MockDataManager
	mockRunRepo  *mocks.MockRunRepo
}

// testPhones maps a person to the desk and cell values of the config file.
var testPhones = map[string][2]string{
	alice: {"71234", "1-408-555-0101"},
	bob:   {"75678", "408.555.0202"},
}

func newServiceTestMock(t *testing.T, withJournal bool) (m allMocks, svc *handoffService, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	m = allMocks{
		mockConfig:   mocks.NewMockConfigStore(ctrl),
		mockSchedule: mocks.NewMockScheduleClient(ctrl),
		mockCalls:    mocks.NewMockCallPlacer(ctrl),
		mockDryRun:   mocks.NewMockCallPlacer(ctrl),
		mockNotifier: mocks.NewMockNotifier(ctrl),
		mockClock:    mocks.NewMockClock(ctrl),
		mockDM:       mocks.NewMockDataManager(ctrl),
		mockRunRepo:  mocks.NewMockRunRepo(ctrl),
	}

	m.mockConfig.EXPECT().Person(gomock.Any(), gomock.Any()).DoAndReturn(func(section, name string) (string, error) {
		phones, ok := testPhones[name]
		if !ok {
			return "", fmt.Errorf("%s not found in [%s]", name, section)
		}
		if section == SectionDeskPhone {
			return phones[0], nil
		}
		return phones[1], nil
	}).AnyTimes()

	deps := Dependencies{
		Config:   m.mockConfig,
		Schedule: m.mockSchedule,
		Calls:    m.mockCalls,
		DryRun:   m.mockDryRun,
		Notifier: m.mockNotifier,
		Clock:    m.mockClock,
		Settings: Settings{
			Location:         testZone,
			ControllerNumber: testController,
			ConfigPath:       "/etc/phone-agent/phone-agent.toml",
			LogPath:          "/var/log/phone-agent.log",
		},
	}
	if withJournal {
		deps.Data = m.mockDM
		m.mockDM.EXPECT().Run().Return(m.mockRunRepo).AnyTimes()
		m.mockDM.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(contract.DataManager) error) error {
				return fn(m.mockDM)
			}).AnyTimes()
	}

	instance := NewInstance(deps)
	require.NotNil(t, instance)
	require.NotNil(t, instance.Handoff)

	return m, instance.Handoff, ctrl
}

// at returns a clock reading in the test zone.
func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 3, hour, minute, 0, 0, testZone)
}

func entries(names ...string) *entity.Schedule {
	schedule := &entity.Schedule{Total: len(names)}
	start := at(6, 0)
	for i, name := range names {
		schedule.Entries = append(schedule.Entries, entity.ScheduleEntry{
			PersonName: name,
			PersonID:   fmt.Sprintf("P%d", i),
			Start:      start.Add(time.Duration(i) * 8 * time.Hour),
			End:        start.Add(time.Duration(i+1) * 8 * time.Hour),
		})
	}
	return schedule
}

// callMatcher matches a CallRequest by purpose and destination.
type callMatcher struct {
	purpose entity.CallPurpose
	to      string
	digits  string
}

func call(purpose entity.CallPurpose, to string) callMatcher {
	return callMatcher{purpose: purpose, to: to}
}

func toggle(purpose entity.CallPurpose, digits string) callMatcher {
	return callMatcher{purpose: purpose, to: testController, digits: digits}
}

func (c callMatcher) Matches(x any) bool {
	req, ok := x.(entity.CallRequest)
	if !ok {
		return false
	}
	if req.Purpose != c.purpose || req.To != c.to {
		return false
	}
	if c.digits != "" {
		return req.Digits == c.digits && req.MessageURL == ""
	}
	return req.Digits == "" && strings.Contains(req.MessageURL, "/echo?Twiml=")
}

func (c callMatcher) String() string {
	return fmt.Sprintf("call %s to %s %s", c.purpose, c.to, c.digits)
}

// alertMatcher matches an alert by level and a fragment of its text.
type alertMatcher struct {
	level    entity.AlertLevel
	contains string
}

func alert(level entity.AlertLevel, contains string) alertMatcher {
	return alertMatcher{level: level, contains: contains}
}

func (a alertMatcher) Matches(x any) bool {
	al, ok := x.(entity.Alert)
	if !ok || al.Level != a.level {
		return false
	}
	return strings.Contains(al.Error+al.Result+al.Solution, a.contains)
}

func (a alertMatcher) String() string {
	return fmt.Sprintf("%s alert containing %q", a.level, a.contains)
}

var errCallFailed = errors.New("twilio: 21217 phone number not verified")
