package methods

import (
	"context"
	"math"
	"reflect"
	"testing"

	"ballotlab/domain/core"
	"ballotlab/domain/election"
	"ballotlab/internal/testkit"
)

func TestProportionalApproval_SainteLague(t *testing.T) {
	// 3 voters approve {A,B,C}, 3 approve {A,B,X}, 1 approves {X,Y,Z}.
	// Under Sainte-Lague weights (1, 1/3, 1/5) the committee {A,B,X}
	// scores 3*(1+1/3) + 3*(1+1/3+1/5) + 1 = 9.6, beating {A,B,C}'s 8.6.
	p := testkit.ApprovalProfile(
		[]election.Candidate{"A", "B", "C", "X", "Y", "Z"},
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"A", "B", "X"},
		[]election.Candidate{"A", "B", "X"},
		[]election.Candidate{"A", "B", "X"},
		[]election.Candidate{"X", "Y", "Z"},
	)

	m, err := NewProportionalApproval(3, ApportionmentSainteLague)
	if err != nil {
		t.Fatalf("NewProportionalApproval: %v", err)
	}
	o, err := m.Tally(context.Background(), p)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}

	if len(o.Committees) != 1 {
		t.Fatalf("got %d best committees, want 1: %+v", len(o.Committees), o.Committees)
	}
	best := o.Committees[0]
	want := []election.Candidate{"A", "B", "X"}
	if !reflect.DeepEqual(best.Members, want) {
		t.Errorf("committee = %v, want %v", best.Members, want)
	}
	if math.Abs(best.Score-9.6) > 1e-9 {
		t.Errorf("score = %v, want 9.6", best.Score)
	}
}

func TestProportionalApproval_DHondt(t *testing.T) {
	// {A,B} scores 3*(1+1/2) = 4.5; {A,C} and {B,C} both score 4
	p := testkit.ApprovalProfile(
		[]election.Candidate{"A", "B", "C"},
		[]election.Candidate{"A", "B"},
		[]election.Candidate{"A", "B"},
		[]election.Candidate{"A", "B"},
		[]election.Candidate{"C"},
	)

	m, err := NewProportionalApproval(2, ApportionmentDHondt)
	if err != nil {
		t.Fatalf("NewProportionalApproval: %v", err)
	}
	o, err := m.Tally(context.Background(), p)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}

	if len(o.Committees) != 1 {
		t.Fatalf("got %d best committees, want 1", len(o.Committees))
	}
	if !reflect.DeepEqual(o.Committees[0].Members, []election.Candidate{"A", "B"}) {
		t.Errorf("committee = %v, want [A B]", o.Committees[0].Members)
	}
	if math.Abs(o.Committees[0].Score-4.5) > 1e-9 {
		t.Errorf("score = %v, want 4.5", o.Committees[0].Score)
	}
}

func TestProportionalApproval_EqualCommitteesTie(t *testing.T) {
	p := testkit.ApprovalProfile(
		[]election.Candidate{"A", "B"},
		[]election.Candidate{"A"},
		[]election.Candidate{"B"},
	)
	m, err := NewProportionalApproval(1, ApportionmentDHondt)
	if err != nil {
		t.Fatalf("NewProportionalApproval: %v", err)
	}
	o, err := m.Tally(context.Background(), p)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if !o.IsTie() {
		t.Errorf("decision = %q, want tied_set for equal-score committees", o.Decision)
	}
	if len(o.Committees) != 2 {
		t.Errorf("got %d committees, want both reported", len(o.Committees))
	}
}

func TestProportionalApproval_Validation(t *testing.T) {
	t.Run("unknown apportionment", func(t *testing.T) {
		_, err := NewProportionalApproval(2, "largest_remainder")
		if !core.IsInvalidConfiguration(err) {
			t.Errorf("expected invalid-configuration error, got %v", err)
		}
	})

	t.Run("committee exceeds candidates", func(t *testing.T) {
		p := testkit.ApprovalProfile([]election.Candidate{"A", "B"}, []election.Candidate{"A"})
		m, err := NewProportionalApproval(3, ApportionmentDHondt)
		if err != nil {
			t.Fatalf("NewProportionalApproval: %v", err)
		}
		if _, err := m.Tally(context.Background(), p); !core.IsInvalidConfiguration(err) {
			t.Errorf("expected invalid-configuration error, got %v", err)
		}
	})

	t.Run("ranking profile rejected", func(t *testing.T) {
		m, err := NewProportionalApproval(1, ApportionmentDHondt)
		if err != nil {
			t.Fatalf("NewProportionalApproval: %v", err)
		}
		if _, err := m.Tally(context.Background(), testkit.UnanimousProfile(2)); !core.IsIncompatibleBallotFormat(err) {
			t.Errorf("expected incompatible-format error, got %v", err)
		}
	})
}

func TestApportionmentWeights(t *testing.T) {
	tests := []struct {
		name string
		i    int
		want float64
	}{
		{ApportionmentDHondt, 2, 0.5},
		{ApportionmentSainteLague, 2, 1.0 / 3.0},
		{ApportionmentSainteLague12, 1, 1.0 / 1.2},
		{ApportionmentSainteLague12, 2, 1.0 / 3.0},
		{ApportionmentSainteLague14, 1, 1.0 / 1.4},
	}
	for _, tt := range tests {
		dv, err := apportionmentWeights(tt.name)
		if err != nil {
			t.Fatalf("apportionmentWeights(%q): %v", tt.name, err)
		}
		if got := dv(tt.i); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s dv(%d) = %v, want %v", tt.name, tt.i, got, tt.want)
		}
	}
}
