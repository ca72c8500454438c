package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mverdejo/hangman-backend/internal/game"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func recvErr(t *testing.T, ch <-chan error, within time.Duration) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(within):
		t.Fatalf("timed out waiting for command reply")
		return nil // unreachable
	}
}

func TestRoom_Guess_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, "ABC123", "ana", game.NewSession(game.LanguageEnglish, "cat"), nil)

	clientOut := make(chan Snapshot, 2) // small buffer so broadcast doesn’t block
	r.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	// on join, room should immediately send the current snapshot
	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}
	if first.State.Display != "_ _ _" {
		t.Fatalf("after join: want fully masked display, got %q", first.State.Display)
	}

	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'c'}}

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if next.Version != 1 {
		t.Fatalf("after guess: want version=1, got %d", next.Version)
	}
	if next.State.Display != "c _ _" {
		t.Fatalf("after guess: want display %q, got %q", "c _ _", next.State.Display)
	}

	r.Inbox() <- Shutdown{}
}

func TestRoom_RejectedGuessRepliesErrorAndSkipsBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, "ABC123", "ana", game.NewSession(game.LanguageEnglish, "cat"), nil)

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "ch1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	reply := make(chan error, 1)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'c'}, Reply: reply}
	if err := recvErr(t, reply, 100*time.Millisecond); err != nil {
		t.Fatalf("first guess: unexpected err %v", err)
	}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'c'}, Reply: reply}
	if err := recvErr(t, reply, 100*time.Millisecond); !errors.Is(err, game.ErrAlreadyGuessed) {
		t.Fatalf("repeat guess: want ErrAlreadyGuessed, got %v", err)
	}

	recvNoSnapshot(t, out, 100*time.Millisecond)
}

func TestRoom_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, "ABC123", "ana", game.NewSession(game.LanguageEnglish, "cat"), nil)

	clientOut := make(chan Snapshot, 1)
	r.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	// The join snapshot fills the buffer; the guess broadcast finds it full.
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'c'}}

	reply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestRoom_Reset_StartsFreshSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, "ABC123", "ana", game.NewSession(game.LanguageSpanish, "gato"), nil)

	reply := make(chan error, 1)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'x'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)

	r.Inbox() <- FromClient{Cmd: Command{Type: CmdReset, Word: "perro"}, Reply: reply}
	if err := recvErr(t, reply, 100*time.Millisecond); err != nil {
		t.Fatalf("reset: unexpected err %v", err)
	}

	stateReply := make(chan View, 1)
	r.Inbox() <- GetState{Reply: stateReply}
	view := recvView(t, stateReply, 100*time.Millisecond)

	if view.Session.TargetWord != "perro" || view.Session.WrongCount != 0 || len(view.Session.Guessed) != 0 {
		t.Fatalf("reset did not clear session: %+v", view.Session)
	}
	if view.Version != 2 {
		t.Fatalf("want version=2 after guess+reset, got %d", view.Version)
	}
}

type captureSink struct {
	results chan Result
}

func (s *captureSink) Record(res Result) { s.results <- res }

func TestRoom_RecordsResultOncePerPlaythrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{results: make(chan Result, 2)}
	r := NewRoom(ctx, "ABC123", "ana", game.NewSession(game.LanguageEnglish, "go"), sink)

	reply := make(chan error, 1)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'g'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'o'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)

	select {
	case res := <-sink.results:
		if !res.Won || res.Word != "go" || res.Player != "ana" || res.Code != "ABC123" {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timed out waiting for result")
	}

	// A losing guess after the win must not produce a second result.
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'z'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)

	select {
	case res := <-sink.results:
		t.Fatalf("unexpected second result: %+v", res)
	case <-time.After(100 * time.Millisecond):
	}

	// After a reset, finishing again records again.
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdReset, Word: "go"}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'g'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)
	r.Inbox() <- FromClient{Cmd: Command{Type: CmdGuess, Letter: 'o'}, Reply: reply}
	_ = recvErr(t, reply, 100*time.Millisecond)

	select {
	case res := <-sink.results:
		if !res.Won {
			t.Fatalf("want second win recorded, got %+v", res)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timed out waiting for second result")
	}
}
