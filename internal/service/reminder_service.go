package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"tasklist/internal/clock"
	"tasklist/internal/model"
	"tasklist/internal/repository"
)

// Reminder is one classification row surfaced to the caller.
type Reminder struct {
	TaskName string
	Deadline string
	Label    string
	Created  string
	Snoozed  model.SnoozePolicy
}

// PollResult groups the four classifications of one poll tick.
type PollResult struct {
	Due        []Reminder
	SnoozedDue []Reminder
	Overdue    []Reminder
	Pending    []Reminder
}

// pendingTolerance is the width of the heads-up band before the deadline,
// per reminder policy. Each band ends slightly short of the policy's full
// lead so the pending notice stops just before the exact-match fire, and it
// runs until the deadline itself.
func pendingTolerance(p model.ReminderPolicy) (time.Duration, bool) {
	switch p {
	case model.Remind1Day:
		return 86340 * time.Second, true
	case model.Remind2Hrs:
		return 7170 * time.Second, true
	case model.Remind1Hr:
		return 3540 * time.Second, true
	case model.Remind30Mins:
		return 1740 * time.Second, true
	case model.Remind10Mins:
		return 540 * time.Second, true
	}
	return 0, false
}

// snoozePendingLead is the heads-up band before the deadline for the
// "before start" snooze variants.
func snoozePendingLead(p model.SnoozePolicy) (time.Duration, bool) {
	switch p {
	case model.Snooze5MinsBeforeStart:
		return 240 * time.Second, true
	case model.Snooze10MinsBeforeStart:
		return 540 * time.Second, true
	}
	return 0, false
}

// sameMinute reports equality after truncating both operands to minute
// resolution. This is the fire rule: a poll cadence of one minute sees each
// match exactly once.
func sameMinute(a, b time.Time) bool {
	return a.Truncate(time.Minute).Equal(b.Truncate(time.Minute))
}

// hoursMins splits a duration into whole hours and leftover minutes,
// truncating toward zero so negative spans keep their sign.
func hoursMins(d time.Duration) (hours, mins int) {
	secs := int(d / time.Second)
	hours = secs / 3600
	mins = secs/60 - hours*60
	return hours, mins
}

func spanLabel(d time.Duration) string {
	h, m := hoursMins(d)
	return fmt.Sprintf("%d hours %d mins", h, m)
}

// DueReminders returns the tasks whose reminder fires at this exact minute.
// Tasks whose deadline has passed, or is still more than a day out, never
// fire.
func DueReminders(now time.Time, tasks []model.Task) []Reminder {
	var due []Reminder
	for _, t := range tasks {
		lead, ok := t.Reminder.Lead()
		if !ok {
			continue
		}
		deadline, ok := t.DeadlineTime()
		if !ok {
			continue
		}
		if deadline.Before(now) || deadline.AddDate(0, 0, -1).After(now) {
			continue
		}
		if !sameMinute(now, deadline.Add(-lead)) {
			continue
		}
		due = append(due, Reminder{
			TaskName: t.Name,
			Deadline: t.Deadline,
			Label:    t.Reminder.Label(),
			Created:  t.Created,
		})
	}
	return due
}

// SnoozedDueReminders returns the snoozed tasks coming due at this exact
// minute. "Before start" variants fire relative to the deadline; duration
// variants fire relative to the moment the snooze was set, labeled with the
// remaining time to the deadline (negative if already past, unclamped).
func SnoozedDueReminders(now time.Time, tasks []model.Task) []Reminder {
	var due []Reminder
	for _, t := range tasks {
		if !t.Snoozed.Valid() {
			continue
		}
		deadline, ok := t.DeadlineTime()
		if !ok {
			continue
		}

		if lead, ok := t.Snoozed.Lead(); ok {
			if !sameMinute(now, deadline.Add(-lead)) {
				continue
			}
			due = append(due, Reminder{
				TaskName: t.Name,
				Deadline: t.Deadline,
				Label:    t.Snoozed.Label(),
				Created:  t.Created,
				Snoozed:  t.Snoozed,
			})
			continue
		}

		d, _ := t.Snoozed.Duration()
		setAt, ok := t.SnoozeSetTime()
		if !ok {
			continue
		}
		if !sameMinute(now, setAt.Add(d)) {
			continue
		}
		due = append(due, Reminder{
			TaskName: t.Name,
			Deadline: t.Deadline,
			Label:    spanLabel(deadline.Sub(now)),
			Created:  t.Created,
			Snoozed:  t.Snoozed,
		})
	}
	return due
}

// OverdueReminders returns the tasks whose deadline has passed while a
// reminder or snooze is still active. The label carries the elapsed time
// since the deadline.
func OverdueReminders(now time.Time, tasks []model.Task) []Reminder {
	var overdue []Reminder
	for _, t := range tasks {
		if t.State() == model.StateDismissed {
			continue
		}
		deadline, ok := t.DeadlineTime()
		if !ok {
			continue
		}
		if !deadline.Before(now) {
			continue
		}
		overdue = append(overdue, Reminder{
			TaskName: t.Name,
			Deadline: t.Deadline,
			Label:    "Overdue: " + spanLabel(now.Sub(deadline)),
			Created:  t.Created,
			Snoozed:  t.Snoozed,
		})
	}
	return overdue
}

// PendingReminders returns the informational heads-up entries: tasks whose
// fire window has been entered but whose exact minute has not yet matched.
// A task with an armed reminder uses the reminder bands; a dismissed task
// with a snooze uses the snooze bands. Entries may repeat across polls.
func PendingReminders(now time.Time, tasks []model.Task) []Reminder {
	var pending []Reminder
	for _, t := range tasks {
		deadline, ok := t.DeadlineTime()
		if !ok {
			continue
		}

		if tol, ok := pendingTolerance(t.Reminder); ok {
			if deadline.After(now) && deadline.Add(-tol).Before(now) {
				pending = append(pending, pendingEntry(t, deadline, now))
			}
			continue
		}

		if !t.Snoozed.Valid() {
			continue
		}
		if lead, ok := snoozePendingLead(t.Snoozed); ok {
			if deadline.After(now) && deadline.Add(-lead).Before(now) {
				pending = append(pending, pendingEntry(t, deadline, now))
			}
			continue
		}

		d, _ := t.Snoozed.Duration()
		setAt, ok := t.SnoozeSetTime()
		if !ok {
			continue
		}
		fire := setAt.Add(d)
		if deadline.After(now) && now.After(fire.Add(-time.Minute)) && now.Before(fire.Add(time.Minute)) {
			pending = append(pending, pendingEntry(t, deadline, now))
		}
	}
	return pending
}

func pendingEntry(t model.Task, deadline, now time.Time) Reminder {
	return Reminder{
		TaskName: t.Name,
		Deadline: t.Deadline,
		Label:    spanLabel(deadline.Sub(now)),
		Created:  t.Created,
		Snoozed:  t.Snoozed,
	}
}

// ReminderService runs the classifiers against the store on behalf of the
// polling shell.
type ReminderService struct {
	tasks       *repository.TaskRepository
	clock       clock.Clock
	autoDismiss bool
}

// NewReminderService wires the engine to the store. With autoDismiss set
// (the normal mode) an overdue emission immediately clears that task's
// reminder and snooze state, so each overdue task is reported exactly once.
func NewReminderService(tasks *repository.TaskRepository, clk clock.Clock, autoDismiss bool) *ReminderService {
	return &ReminderService{tasks: tasks, clock: clk, autoDismiss: autoDismiss}
}

// Poll classifies the user's tasks at the current minute. Storage failures
// are logged and yield an empty result; they are not errors to the caller.
func (s *ReminderService) Poll(ctx context.Context, username string) PollResult {
	if username == "" {
		return PollResult{}
	}

	tasks, err := s.tasks.List(ctx, username)
	if err != nil {
		log.Printf("poll %s: %v", username, err)
		return PollResult{}
	}

	now := s.clock.Now()
	res := PollResult{
		Due:        DueReminders(now, tasks),
		SnoozedDue: SnoozedDueReminders(now, tasks),
		Overdue:    OverdueReminders(now, tasks),
		Pending:    PendingReminders(now, tasks),
	}

	if s.autoDismiss {
		for _, r := range res.Overdue {
			if err := s.tasks.DismissReminder(ctx, username, r.Created); err != nil {
				log.Printf("dismiss overdue task %q: %v", r.TaskName, err)
			}
		}
	}
	return res
}
