package scheduler

import (
	"github.com/RathijitAich/Appointmenet-Scheduler/internal/timeutil"
)

// SlotOptions configures slot suggestion. Zero values fall back to the
// defaults: a 09:00-18:00 window, 30-minute granularity, 5 results.
type SlotOptions struct {
	BusinessStart int // minutes since midnight
	BusinessEnd   int
	StepMinutes   int
	MaxResults    int
}

// DefaultSlotOptions returns the default suggestion window.
func DefaultSlotOptions() SlotOptions {
	return SlotOptions{
		BusinessStart: 9 * 60,
		BusinessEnd:   18 * 60,
		StepMinutes:   30,
		MaxResults:    5,
	}
}

func (o SlotOptions) withDefaults() SlotOptions {
	def := DefaultSlotOptions()
	if o.BusinessStart <= 0 {
		o.BusinessStart = def.BusinessStart
	}
	if o.BusinessEnd <= 0 {
		o.BusinessEnd = def.BusinessEnd
	}
	if o.StepMinutes <= 0 {
		o.StepMinutes = def.StepMinutes
	}
	if o.MaxResults <= 0 {
		o.MaxResults = def.MaxResults
	}
	return o
}

// SuggestSlots enumerates candidate start times across the business window
// and returns, ascending, up to MaxResults HH:MM strings that are
// conflict-free for both users. The result is a pure function of the current
// store state; re-invoking with the same arguments is safe.
func (d *Detector) SuggestSlots(date, userA, userB string, durationMinutes int, opts SlotOptions) ([]string, error) {
	opts = opts.withDefaults()

	var out []string
	for cursor := opts.BusinessStart; cursor+durationMinutes <= opts.BusinessEnd; cursor += opts.StepMinutes {
		clock := timeutil.FromMinutes(cursor)

		busyA, err := d.HasConflict(userA, date, clock, durationMinutes, 0)
		if err != nil {
			return nil, err
		}
		if busyA {
			continue
		}

		busyB, err := d.HasConflict(userB, date, clock, durationMinutes, 0)
		if err != nil {
			return nil, err
		}
		if busyB {
			continue
		}

		out = append(out, clock)
		if len(out) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}
