package span

import "testing"

func TestSpanToRangeSingleLine(t *testing.T) {
	s := Span{Start: LineColumn{1, 4}, End: LineColumn{1, 8}}
	r, err := s.ToRange()
	if err != nil {
		t.Fatalf("ToRange: %v", err)
	}
	if r != (Range{Start: 4, End: 9}) {
		t.Fatalf("got %v", r)
	}
}

func TestSpanToRangeMultilineFails(t *testing.T) {
	s := Span{Start: LineColumn{1, 0}, End: LineColumn{2, 3}}
	if _, err := s.ToRange(); err == nil {
		t.Fatal("expected error for multiline span")
	}
}

func TestSpanFromRange(t *testing.T) {
	s, err := SpanFromRange(3, Range{Start: 2, End: 6})
	if err != nil {
		t.Fatalf("SpanFromRange: %v", err)
	}
	want := Span{Start: LineColumn{3, 2}, End: LineColumn{3, 5}}
	if s != want {
		t.Fatalf("got %v want %v", s, want)
	}
}

func TestSpanFromRangeRejectsEmpty(t *testing.T) {
	if _, err := SpanFromRange(1, Range{Start: 3, End: 3}); err == nil {
		t.Fatal("expected error for empty range")
	}
}

func TestRelativeTo(t *testing.T) {
	scope := Span{Start: LineColumn{1, 0}, End: LineColumn{1, 20}}
	me := Span{Start: LineColumn{1, 4}, End: LineColumn{1, 8}}
	r, err := me.RelativeTo(scope)
	if err != nil {
		t.Fatalf("RelativeTo: %v", err)
	}
	if r != (Range{Start: 4, End: 9}) {
		t.Fatalf("got %v", r)
	}
}

func TestExtractSubRangeFromSpanFluff(t *testing.T) {
	const chunkS = " one\n two\n three"
	fragmentSpan := Span{Start: LineColumn{1, 3}, End: LineColumn{1, 6}}
	fragmentRange := Range{Start: 0, End: 4}
	subSpan := Span{Start: LineColumn{1, 5}, End: LineColumn{1, 6}}

	r, err := ExtractSubRangeFromSpan(chunkS, fragmentSpan, fragmentRange, subSpan)
	if err != nil {
		t.Fatalf("ExtractSubRangeFromSpan: %v", err)
	}
	if r != (Range{Start: 2, End: 4}) {
		t.Fatalf("got %v want 2..4", r)
	}
	if got := chunkS[r.Start:r.End]; got != "ne" {
		t.Fatalf("got %q want %q", got, "ne")
	}
}

func TestExtractSubRangeFromSpanChyrp(t *testing.T) {
	const chunkS = "one\ntwo\nthree"
	fragmentSpan := Span{Start: LineColumn{1, 11}, End: LineColumn{3, 5}}
	fragmentRange := Range{Start: 0, End: 3 + 1 + 3 + 5}

	t.Run("first line", func(t *testing.T) {
		subSpan := Span{Start: LineColumn{1, 12}, End: LineColumn{1, 13}}
		r, err := ExtractSubRangeFromSpan(chunkS, fragmentSpan, fragmentRange, subSpan)
		if err != nil {
			t.Fatalf("ExtractSubRangeFromSpan: %v", err)
		}
		if r != (Range{Start: 1, End: 3}) {
			t.Fatalf("got %v want 1..3", r)
		}
		if got := chunkS[r.Start:r.End]; got != "ne" {
			t.Fatalf("got %q want %q", got, "ne")
		}
	})

	t.Run("second line", func(t *testing.T) {
		subSpan := Span{Start: LineColumn{2, 1}, End: LineColumn{2, 2}}
		r, err := ExtractSubRangeFromSpan(chunkS, fragmentSpan, fragmentRange, subSpan)
		if err != nil {
			t.Fatalf("ExtractSubRangeFromSpan: %v", err)
		}
		if r != (Range{Start: 5, End: 7}) {
			t.Fatalf("got %v want 5..7", r)
		}
		if got := chunkS[r.Start:r.End]; got != "wo" {
			t.Fatalf("got %q want %q", got, "wo")
		}
	})
}
