package model

import "time"

// Time layouts shared by the store, the classifiers and the exchange format.
// The deadline and the snooze timestamp use different hour/minute separators;
// both are part of the on-disk contract and must not change.
const (
	DeadlineLayout  = "2.1.2006 15.04"
	SnoozeSetLayout = "2.1.2006 15:04"
	CreatedLayout   = "2 January 2006 15:04:05.000"
)

// MaxFieldLen bounds task names and descriptions.
const MaxFieldLen = 100

// ReminderPolicy is the lead time before a deadline at which a task raises
// a first-class alert. The set is closed; any other value classifies as
// nothing.
type ReminderPolicy string

const (
	Remind1Day   ReminderPolicy = "1 day"
	Remind2Hrs   ReminderPolicy = "2 hrs"
	Remind1Hr    ReminderPolicy = "1 hr"
	Remind30Mins ReminderPolicy = "30 mins"
	Remind10Mins ReminderPolicy = "10 mins"
	RemindNever  ReminderPolicy = "no reminder"
)

// ReminderPolicies lists every accepted policy value, RemindNever included.
var ReminderPolicies = []ReminderPolicy{
	Remind1Day,
	Remind2Hrs,
	Remind1Hr,
	Remind30Mins,
	Remind10Mins,
	RemindNever,
}

// Lead returns the alert lead time before the deadline. The second result is
// false for RemindNever and for values outside the closed set.
func (p ReminderPolicy) Lead() (time.Duration, bool) {
	switch p {
	case Remind1Day:
		return 24 * time.Hour, true
	case Remind2Hrs:
		return 2 * time.Hour, true
	case Remind1Hr:
		return time.Hour, true
	case Remind30Mins:
		return 30 * time.Minute, true
	case Remind10Mins:
		return 10 * time.Minute, true
	}
	return 0, false
}

// Valid reports whether p belongs to the closed enumeration.
func (p ReminderPolicy) Valid() bool {
	if p == RemindNever {
		return true
	}
	_, ok := p.Lead()
	return ok
}

// Label is the wording used when the reminder fires. It differs from the
// stored policy value for the hour-based policies.
func (p ReminderPolicy) Label() string {
	switch p {
	case Remind2Hrs:
		return "2 hours"
	case Remind1Hr:
		return "1 hour"
	}
	return string(p)
}

// SnoozePolicy is a deferred alert, either relative to the deadline
// ("before start" variants) or relative to the moment the snooze was set.
// Empty means not snoozed.
type SnoozePolicy string

const (
	Snooze5MinsBeforeStart  SnoozePolicy = "5 mins before start"
	Snooze10MinsBeforeStart SnoozePolicy = "10 mins before start"
	Snooze5Mins             SnoozePolicy = "5 mins"
	Snooze10Mins            SnoozePolicy = "10 mins"
	Snooze15Mins            SnoozePolicy = "15 mins"
	Snooze30Mins            SnoozePolicy = "30 mins"
	Snooze1Hour             SnoozePolicy = "1 hour"
	Snooze2Hours            SnoozePolicy = "2 hours"
	Snooze4Hours            SnoozePolicy = "4 hours"
)

// Lead returns the lead time before the deadline for the "before start"
// variants; false for every other value.
func (p SnoozePolicy) Lead() (time.Duration, bool) {
	switch p {
	case Snooze5MinsBeforeStart:
		return 5 * time.Minute, true
	case Snooze10MinsBeforeStart:
		return 10 * time.Minute, true
	}
	return 0, false
}

// Duration returns the offset after the snooze-set time for the duration
// variants; false for the "before start" variants and unknown values.
func (p SnoozePolicy) Duration() (time.Duration, bool) {
	switch p {
	case Snooze5Mins:
		return 5 * time.Minute, true
	case Snooze10Mins:
		return 10 * time.Minute, true
	case Snooze15Mins:
		return 15 * time.Minute, true
	case Snooze30Mins:
		return 30 * time.Minute, true
	case Snooze1Hour:
		return time.Hour, true
	case Snooze2Hours:
		return 2 * time.Hour, true
	case Snooze4Hours:
		return 4 * time.Hour, true
	}
	return 0, false
}

// Valid reports whether p belongs to the closed enumeration. The empty
// string is not valid: it encodes "not snoozed".
func (p SnoozePolicy) Valid() bool {
	if _, ok := p.Lead(); ok {
		return true
	}
	_, ok := p.Duration()
	return ok
}

// Label is the wording used when a "before start" snooze fires.
func (p SnoozePolicy) Label() string {
	switch p {
	case Snooze5MinsBeforeStart:
		return "5 mins"
	case Snooze10MinsBeforeStart:
		return "10 mins"
	}
	return string(p)
}

// Task is a single item in one user's collection.
//
// ID is an internal surrogate key and never leaves the store layer; Created
// is the only key callers address tasks by, and editing a task replaces it.
type Task struct {
	ID          string `gorm:"primaryKey"`
	Username    string `gorm:"index;uniqueIndex:idx_tasks_user_created"`
	Name        string
	Desc        string
	Deadline    string
	Reminder    ReminderPolicy
	Created     string `gorm:"uniqueIndex:idx_tasks_user_created"`
	Snoozed     SnoozePolicy
	SnoozeSetAt string
}

// State is the coarse reminder lifecycle stage of a task.
type State int

const (
	StateDismissed State = iota
	StateArmed
	StateSnoozed
)

// State reports the task's reminder lifecycle stage. A snooze takes
// precedence over a still-armed reminder; unknown policy values count as
// absent.
func (t Task) State() State {
	if t.Snoozed.Valid() {
		return StateSnoozed
	}
	if _, ok := t.Reminder.Lead(); ok {
		return StateArmed
	}
	return StateDismissed
}

// DeadlineTime parses the deadline in the local wall clock. False means the
// stored value is malformed and the task classifies as nothing.
func (t Task) DeadlineTime() (time.Time, bool) {
	d, err := time.ParseInLocation(DeadlineLayout, t.Deadline, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// SnoozeSetTime parses the snooze-set timestamp in the local wall clock.
func (t Task) SnoozeSetTime() (time.Time, bool) {
	d, err := time.ParseInLocation(SnoozeSetLayout, t.SnoozeSetAt, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
