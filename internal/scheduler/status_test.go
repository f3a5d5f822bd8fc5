package scheduler

import "testing"

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusScheduled, StatusInProgress},
		{StatusScheduled, StatusCancelled},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, edge := range legal {
		if !CanTransition(edge.from, edge.to) {
			t.Fatalf("expected %s -> %s to be legal", edge.from, edge.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusScheduled, StatusCompleted},
		{StatusScheduled, StatusScheduled},
		{StatusInProgress, StatusScheduled},
		{StatusCompleted, StatusScheduled},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusInProgress},
	}
	for _, edge := range illegal {
		if CanTransition(edge.from, edge.to) {
			t.Fatalf("expected %s -> %s to be rejected", edge.from, edge.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	if Terminal(StatusScheduled) || Terminal(StatusInProgress) {
		t.Fatal("scheduled and in-progress must not be terminal")
	}
	if !Terminal(StatusCompleted) || !Terminal(StatusCancelled) {
		t.Fatal("completed and cancelled must be terminal")
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !ValidStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if ValidStatus("booked") || ValidStatus("") {
		t.Fatal("unknown statuses must be invalid")
	}
}
