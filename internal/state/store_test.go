package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/uetail/internal/target"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	targets := []target.Target{
		{Kind: target.KindProject, Key: "prj1", Path: "/p/A.uproject"},
		{Kind: target.KindProject, Key: "b", Path: "/p/B.uproject", Discovered: true},
	}

	before := time.Now()
	s.Update(targets, nil)

	snap := s.Snapshot()
	if !snap.HasTargets || len(snap.Targets) != 2 || snap.Targets[0].Key != "prj1" {
		t.Fatalf("snapshot targets = %#v, want 2 items", snap.Targets)
	}
	if snap.Discovered() != 1 {
		t.Fatalf("Discovered() = %d, want 1", snap.Discovered())
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.Generation != 1 {
		t.Fatalf("Generation = %d, want 1", snap.Generation)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Targets[0].Key = "mutated"
	if got := s.Snapshot().Targets[0].Key; got != "prj1" {
		t.Fatalf("Snapshot should clone targets; got key %q want prj1", got)
	}
	// So should the stored list be independent of the caller's slice.
	targets[1].Key = "mutated"
	if got := s.Snapshot().Targets[1].Key; got != "b" {
		t.Fatalf("Update should clone targets; got key %q want b", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]target.Target{{Key: "prj1"}}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Targets, prev.Targets) {
		t.Fatalf("targets changed on error: got %#v want %#v", snap.Targets, prev.Targets)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_PartialResultWithError(t *testing.T) {
	var s Store

	s.Update([]target.Target{{Key: "old"}}, nil)
	s.Update([]target.Target{{Key: "configured"}}, errors.New("discovery failed"))

	snap := s.Snapshot()
	if len(snap.Targets) != 1 || snap.Targets[0].Key != "configured" {
		t.Fatalf("targets = %#v, want the partial list", snap.Targets)
	}
	if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("error state = %v / %d", snap.LastError, snap.ConsecutiveFailures)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsStale() {
		t.Fatalf("fresh store: failures=%d stale=%v", snap.ConsecutiveFailures, snap.IsStale())
	}

	s.Update(nil, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsStale() {
		t.Fatalf("after 1 failure: failures=%d stale=%v", snap.ConsecutiveFailures, snap.IsStale())
	}

	s.Update(nil, errors.New("fail 2"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsStale() {
		t.Fatalf("after 2 failures: failures=%d stale=%v", snap.ConsecutiveFailures, snap.IsStale())
	}
	if snap.HasTargets {
		t.Fatalf("HasTargets = true before any successful refresh")
	}

	s.Update([]target.Target{}, nil)
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsStale() || !snap.HasTargets {
		t.Fatalf("after success: %+v", snap)
	}
}
