package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/menta2k/circlecrop/pkg/crop"
	"github.com/menta2k/circlecrop/pkg/editor"
)

// listFlag collects a repeated string flag
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, " ") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// parseCrop parses "x,y,size[,display[,username]]"
func parseCrop(s string) (*crop.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 5 {
		return nil, fmt.Errorf("crop %q: want x,y,size[,display[,username]]", s)
	}

	var nums [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("crop %q: %w", s, err)
		}
		nums[i] = v
	}

	r := &crop.Region{X: nums[0], Y: nums[1], Size: nums[2]}
	if len(parts) > 3 {
		r.DisplayName = strings.TrimSpace(parts[3])
	}
	if len(parts) > 4 {
		r.Username = strings.TrimSpace(parts[4])
	}
	return r, nil
}

type pointerKind int

const (
	pointerDown pointerKind = iota
	pointerMove
	pointerUp
)

type pointerEvent struct {
	kind pointerKind
	x, y float64
}

// parseGesture parses a space separated list such as
// "down:10,10 move:50,30 up:50,30".
func parseGesture(s string) ([]pointerEvent, error) {
	var events []pointerEvent
	for _, field := range strings.Fields(s) {
		name, coords, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("gesture step %q: want kind:x,y", field)
		}

		var ev pointerEvent
		switch strings.ToLower(name) {
		case "down":
			ev.kind = pointerDown
		case "move":
			ev.kind = pointerMove
		case "up":
			ev.kind = pointerUp
		default:
			return nil, fmt.Errorf("gesture step %q: unknown kind %q", field, name)
		}

		xs, ys, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("gesture step %q: want kind:x,y", field)
		}
		var err error
		if ev.x, err = strconv.ParseFloat(xs, 64); err != nil {
			return nil, fmt.Errorf("gesture step %q: %w", field, err)
		}
		if ev.y, err = strconv.ParseFloat(ys, 64); err != nil {
			return nil, fmt.Errorf("gesture step %q: %w", field, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// replay feeds events to the session in order
func replay(s *editor.Session, events []pointerEvent) {
	for _, ev := range events {
		switch ev.kind {
		case pointerDown:
			s.PointerDown(ev.x, ev.y)
		case pointerMove:
			s.PointerMove(ev.x, ev.y)
		case pointerUp:
			s.PointerUp(ev.x, ev.y)
		}
	}
}
