package core

import (
	"testing"
	"time"
)

func TestFixedStepFiresImmediatelyThenAtRate(t *testing.T) {
	fs := NewFixedStep(50)
	if fs.Interval() != 20*time.Millisecond {
		t.Fatalf("expected 20ms interval, got %v", fs.Interval())
	}
	if !fs.Advance(0) {
		t.Fatal("first advance should fire")
	}
	if fs.Advance(10 * time.Millisecond) {
		t.Fatal("half an interval should not fire")
	}
	if !fs.Advance(10 * time.Millisecond) {
		t.Fatal("a full interval should fire")
	}
}

func TestFixedStepDropsBacklog(t *testing.T) {
	fs := NewFixedStep(10)
	fs.Advance(0)
	if !fs.Advance(time.Second) {
		t.Fatal("long stall should fire")
	}
	fired := 0
	for i := 0; i < 5; i++ {
		if fs.Advance(0) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("backlog should be capped to one extra event, fired %d", fired)
	}
}

func TestFixedStepPrime(t *testing.T) {
	fs := NewFixedStep(1)
	fs.Advance(0)
	if fs.Advance(time.Millisecond) {
		t.Fatal("should not fire before the interval")
	}
	fs.Prime()
	if !fs.Advance(0) {
		t.Fatal("primed step should fire")
	}
}
