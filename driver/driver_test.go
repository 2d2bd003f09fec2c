package driver

import (
	"context"
	"errors"
	"testing"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/origin"
	"docspell.dev/docspell/suggestion"
)

func unitFor(t *testing.T, path, content string) Unit {
	t.Helper()
	lit, err := literal.New(literal.SlashSlash, "// "+content, 1, 0)
	if err != nil {
		t.Fatalf("literal.New: %v", err)
	}
	set := cluster.FromLiteral(lit)
	return Unit{
		Origin: origin.Origin{Kind: origin.GoSource, Path: path},
		Chunks: []chunk.CheckableChunk{chunk.FromLiteralSet(set)},
	}
}

func TestRunSuccessNoSuggestions(t *testing.T) {
	units := []Unit{unitFor(t, "a.go", "hello"), unitFor(t, "b.go", "world")}
	noop := func(ctx context.Context, u Unit) ([]suggestion.Suggestion, error) { return nil, nil }

	res, err := Run(context.Background(), units, noop, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Finish != Success {
		t.Fatalf("Finish = %v, want Success", res.Finish)
	}
	if len(res.Suggestions) != 0 {
		t.Fatalf("got %d suggestions, want 0", len(res.Suggestions))
	}
}

func TestRunGathersSuggestionsInOrder(t *testing.T) {
	units := []Unit{unitFor(t, "a.go", "x"), unitFor(t, "b.go", "y"), unitFor(t, "c.go", "z")}
	check := func(ctx context.Context, u Unit) ([]suggestion.Suggestion, error) {
		return []suggestion.Suggestion{{Origin: u.Origin, Message: u.Origin.Path}}, nil
	}

	res, err := Run(context.Background(), units, check, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Finish != MistakeCount {
		t.Fatalf("Finish = %v, want MistakeCount", res.Finish)
	}
	if len(res.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(res.Suggestions))
	}
	want := []string{"a.go", "b.go", "c.go"}
	for i, s := range res.Suggestions {
		if s.Message != want[i] {
			t.Fatalf("suggestion %d = %q, want %q (traversal order not preserved)", i, s.Message, want[i])
		}
	}
}

func TestRunPropagatesCheckerError(t *testing.T) {
	units := []Unit{unitFor(t, "a.go", "x")}
	boom := errors.New("boom")
	check := func(ctx context.Context, u Unit) ([]suggestion.Suggestion, error) { return nil, boom }

	if _, err := Run(context.Background(), units, check, Options{}); err == nil {
		t.Fatal("expected an error from Run")
	}
}

func TestFinishExitCode(t *testing.T) {
	tests := []struct {
		finish Finish
		want   int
	}{
		{Success, 0},
		{Abort, 130},
		{MistakeCount, 1},
	}
	for _, tt := range tests {
		if got := tt.finish.ExitCode(1); got != tt.want {
			t.Errorf("Finish(%v).ExitCode(1) = %d, want %d", tt.finish, got, tt.want)
		}
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	units := []Unit{unitFor(t, "a.go", "x")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	check := func(ctx context.Context, u Unit) ([]suggestion.Suggestion, error) {
		return nil, ctx.Err()
	}

	res, err := Run(ctx, units, check, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Finish != Abort {
		t.Fatalf("Finish = %v, want Abort", res.Finish)
	}
}
