package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderPolicyLead(t *testing.T) {
	tests := []struct {
		policy ReminderPolicy
		lead   time.Duration
		ok     bool
	}{
		{Remind1Day, 24 * time.Hour, true},
		{Remind2Hrs, 2 * time.Hour, true},
		{Remind1Hr, time.Hour, true},
		{Remind30Mins, 30 * time.Minute, true},
		{Remind10Mins, 10 * time.Minute, true},
		{RemindNever, 0, false},
		{ReminderPolicy("7 mins"), 0, false},
		{ReminderPolicy(""), 0, false},
	}
	for _, tc := range tests {
		lead, ok := tc.policy.Lead()
		assert.Equal(t, tc.ok, ok, "policy %q", tc.policy)
		assert.Equal(t, tc.lead, lead, "policy %q", tc.policy)
	}
}

func TestReminderPolicyValid(t *testing.T) {
	for _, p := range ReminderPolicies {
		assert.True(t, p.Valid(), "policy %q", p)
	}
	assert.False(t, ReminderPolicy("2 hours").Valid())
	assert.False(t, ReminderPolicy("").Valid())
}

func TestReminderPolicyLabel(t *testing.T) {
	assert.Equal(t, "2 hours", Remind2Hrs.Label())
	assert.Equal(t, "1 hour", Remind1Hr.Label())
	assert.Equal(t, "1 day", Remind1Day.Label())
	assert.Equal(t, "30 mins", Remind30Mins.Label())
	assert.Equal(t, "10 mins", Remind10Mins.Label())
}

func TestSnoozePolicyKinds(t *testing.T) {
	lead, ok := Snooze10MinsBeforeStart.Lead()
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, lead)
	_, ok = Snooze10MinsBeforeStart.Duration()
	assert.False(t, ok)

	d, ok := Snooze4Hours.Duration()
	require.True(t, ok)
	assert.Equal(t, 4*time.Hour, d)
	_, ok = Snooze4Hours.Lead()
	assert.False(t, ok)

	assert.True(t, Snooze5Mins.Valid())
	assert.False(t, SnoozePolicy("").Valid())
	assert.False(t, SnoozePolicy("3 hours").Valid())
}

func TestSnoozePolicyLabel(t *testing.T) {
	assert.Equal(t, "5 mins", Snooze5MinsBeforeStart.Label())
	assert.Equal(t, "10 mins", Snooze10MinsBeforeStart.Label())
	assert.Equal(t, "15 mins", Snooze15Mins.Label())
}

func TestTaskState(t *testing.T) {
	assert.Equal(t, StateDismissed, Task{Reminder: RemindNever}.State())
	assert.Equal(t, StateDismissed, Task{Reminder: ReminderPolicy("bogus")}.State())
	assert.Equal(t, StateArmed, Task{Reminder: Remind30Mins}.State())
	// A snooze wins over a still-armed reminder.
	assert.Equal(t, StateSnoozed, Task{Reminder: Remind30Mins, Snoozed: Snooze5Mins}.State())
	assert.Equal(t, StateSnoozed, Task{Reminder: RemindNever, Snoozed: Snooze10MinsBeforeStart}.State())
	// An unknown snooze value counts as absent.
	assert.Equal(t, StateArmed, Task{Reminder: Remind1Hr, Snoozed: SnoozePolicy("later")}.State())
}

func TestDeadlineTime(t *testing.T) {
	task := Task{Deadline: "1.6.2024 10.00"}
	d, ok := task.DeadlineTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local), d)

	// Zero-padded day/month parse too.
	d, ok = Task{Deadline: "01.06.2024 9.05"}.DeadlineTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 5, 0, 0, time.Local), d)

	_, ok = Task{Deadline: "not-a-date"}.DeadlineTime()
	assert.False(t, ok)
	_, ok = Task{Deadline: "1.6.2024 10:00"}.DeadlineTime()
	assert.False(t, ok, "deadline must use the dot separator")
}

func TestSnoozeSetTime(t *testing.T) {
	d, ok := Task{SnoozeSetAt: "1.6.2024 9:10"}.SnoozeSetTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 10, 0, 0, time.Local), d)

	_, ok = Task{SnoozeSetAt: "1.6.2024 9.10"}.SnoozeSetTime()
	assert.False(t, ok, "snooze timestamp must use the colon separator")
	_, ok = Task{}.SnoozeSetTime()
	assert.False(t, ok)
}
