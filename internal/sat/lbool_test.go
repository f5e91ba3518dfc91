package sat

import "testing"

func TestLBoolOpposite(t *testing.T) {
	cases := []struct {
		in, want LBool
	}{
		{True, False},
		{False, True},
		{Bottom, Bottom},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLift(t *testing.T) {
	if Lift(true) != True {
		t.Errorf("Lift(true) = %v, want True", Lift(true))
	}
	if Lift(false) != False {
		t.Errorf("Lift(false) = %v, want False", Lift(false))
	}
}

func TestLBoolString(t *testing.T) {
	cases := map[LBool]string{True: "true", False: "false", Bottom: "bottom"}
	for lb, want := range cases {
		if got := lb.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", lb, got, want)
		}
	}
}
