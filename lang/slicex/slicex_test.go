package slicex

import "testing"

func TestReduce(t *testing.T) {
	sum := Reduce([]int{1, 2, 3, 4}, 0, func(acc, n int) int { return acc + n })
	if sum != 10 {
		t.Fatalf("expected 10, got %d", sum)
	}
	concat := Reduce([]string{"a", "b", "c"}, "", func(acc, s string) string { return acc + s })
	if concat != "abc" {
		t.Fatalf("expected abc, got %q", concat)
	}
	if Reduce(nil, 5, func(acc, n int) int { return acc + n }) != 5 {
		t.Fatal("expected empty input to return the initial value")
	}
}

func TestSomeEvery(t *testing.T) {
	isEven := func(n int) bool { return n%2 == 0 }
	if !Some([]int{1, 2, 3}, isEven) {
		t.Fatal("expected Some to find the even element")
	}
	if Some([]int{1, 3}, isEven) {
		t.Fatal("expected Some to fail with no match")
	}
	if Some(nil, isEven) {
		t.Fatal("expected Some over empty input to be false")
	}
	if !Every([]int{2, 4}, isEven) {
		t.Fatal("expected Every to pass when all match")
	}
	if Every([]int{2, 3}, isEven) {
		t.Fatal("expected Every to fail on a mismatch")
	}
	if !Every(nil, isEven) {
		t.Fatal("expected Every over empty input to be true")
	}
}

func TestCount(t *testing.T) {
	n := Count([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}

func TestGroupBy(t *testing.T) {
	words := []string{"ant", "bee", "ape", "bat"}
	groups := GroupBy(words, func(w string) byte { return w[0] })
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups['a']) != 2 || len(groups['b']) != 2 {
		t.Fatalf("unexpected grouping: %v", groups)
	}
}
