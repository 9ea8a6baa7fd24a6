// Package taskfile implements the line-oriented task exchange format: one
// decimal magic line, then four-line task blocks (name, description,
// deadline, reminder) separated by a blank line.
package taskfile

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"tasklist/internal/model"
)

// MagicNumber is the first line of every exchange file, written in decimal.
const MagicNumber uint32 = 0x21091983

// Record is one task block of the exchange format.
type Record struct {
	Name     string
	Desc     string
	Deadline string
	Reminder model.ReminderPolicy
}

// ParseError reports where and why an import file was rejected.
type ParseError struct {
	Line   int
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Reason, e.Value)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Export writes the magic line and one block per task. Tasks due within the
// next 24 hours are silently excluded, as are tasks whose stored deadline no
// longer parses.
func Export(w io.Writer, tasks []model.Task, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", MagicNumber)
	for _, t := range tasks {
		deadline, ok := t.DeadlineTime()
		if !ok || now.After(deadline.AddDate(0, 0, -1)) {
			continue
		}
		fmt.Fprintf(bw, "%s\n%s\n%s\n%s\n\n", t.Name, t.Desc, t.Deadline, t.Reminder)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}

// Parse reads an exchange file. The whole file is validated before anything
// is returned: a bad magic line, a missing or malformed deadline, or an
// unknown reminder value rejects every record. An unnamed task only logs a
// warning and is kept.
func Parse(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	line := 0
	readLine := func() (string, bool) {
		if !sc.Scan() {
			line++
			return "", false
		}
		line++
		return sc.Text(), true
	}

	first, ok := readLine()
	if !ok {
		return nil, &ParseError{Line: line, Reason: "empty file"}
	}
	magic, err := strconv.ParseUint(strings.TrimSpace(first), 10, 32)
	if err != nil || uint32(magic) != MagicNumber {
		return nil, &ParseError{Line: line, Value: first, Reason: "not a task exchange file"}
	}

	var records []Record
	for {
		name, ok := readLine()
		if !ok {
			break
		}
		if strings.TrimSpace(name) == "" {
			log.Printf("taskfile: line %d: unnamed task", line)
		}

		desc, _ := readLine()

		deadline, _ := readLine()
		if strings.TrimSpace(deadline) == "" {
			return nil, &ParseError{Line: line, Reason: "no deadline specified"}
		}
		if _, err := time.ParseInLocation(model.DeadlineLayout, deadline, time.Local); err != nil {
			return nil, &ParseError{Line: line, Value: deadline, Reason: "deadline must use the d.M.yyyy hh.mm format"}
		}

		remLine, _ := readLine()
		reminder := model.ReminderPolicy(remLine)
		if !reminder.Valid() {
			return nil, &ParseError{Line: line, Value: remLine, Reason: "unknown reminder"}
		}

		records = append(records, Record{Name: name, Desc: desc, Deadline: deadline, Reminder: reminder})

		// Blank separator between blocks; absent at end of file.
		readLine()
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	return records, nil
}
