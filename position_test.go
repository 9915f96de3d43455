package folio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate(t *testing.T) {
	testCases := []struct {
		name   string
		trades []Trade
		want   []Position
	}{
		{
			name:   "no trades",
			trades: nil,
			want:   []Position{},
		},
		{
			name: "two buys average the cost",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				buy("2025-01-11", "AAPL", 10, 200, 0),
			},
			want: []Position{
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(20), CostBasis: D(3000), Realized: D(0)},
			},
		},
		{
			name: "sell realizes against the average cost",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				buy("2025-01-11", "AAPL", 10, 200, 0),
				sell("2025-02-01", "AAPL", 5, 300, 10),
			},
			want: []Position{
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(15), CostBasis: D(2250), Realized: D(740)},
			},
		},
		{
			name: "fees are capitalized on buy",
			trades: []Trade{
				buy("2025-01-10", "MSFT", 4, 25, 2),
			},
			want: []Position{
				{Symbol: "MSFT", Broker: UnassignedBroker, Quantity: D(4), CostBasis: D(102), Realized: D(0)},
			},
		},
		{
			name: "closing releases the whole cost",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 3, 100, 1),
				sell("2025-01-11", "AAPL", 3, 200, 0),
				buy("2025-01-12", "AAPL", 1, 50, 0),
			},
			want: []Position{
				// avg 100.333... would leave a residue in cost and realized.
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(1), CostBasis: D(50), Realized: D(299)},
			},
		},
		{
			name: "over-selling goes negative",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-01-12", "AAPL", 15, 120, 0),
			},
			want: []Position{
				// avg 100: realized 15*(120-100), cost 1000-1500
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(-5), CostBasis: D(-500), Realized: D(300)},
			},
		},
		{
			name: "sell without holdings uses a zero average",
			trades: []Trade{
				sell("2025-01-12", "AAPL", 2, 50, 1),
			},
			want: []Position{
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(-2), CostBasis: D(0), Realized: D(99)},
			},
		},
		{
			name: "brokers are separate positions",
			trades: []Trade{
				NewTrade("2025-01-10", "aapl", "Alpha", Buy, D(1), D(10), D(0)),
				NewTrade("2025-01-10", "AAPL", "Beta", Buy, D(2), D(20), D(0)),
				NewTrade("2025-01-11", "AAPL", " ", Buy, D(3), D(30), D(0)),
			},
			want: []Position{
				{Symbol: "AAPL", Broker: "Alpha", Quantity: D(1), CostBasis: D(10), Realized: D(0)},
				{Symbol: "AAPL", Broker: "Beta", Quantity: D(2), CostBasis: D(40), Realized: D(0)},
				{Symbol: "AAPL", Broker: UnassignedBroker, Quantity: D(3), CostBasis: D(90), Realized: D(0)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Aggregate(tc.trades).Sorted()
			if diff := cmp.Diff(tc.want, got, equalDecimals); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestAggregate_OrderMatters checks that trades are folded in the order
// given, not by date.
func TestAggregate_OrderMatters(t *testing.T) {
	trades := []Trade{
		buy("2025-03-01", "AAPL", 10, 100, 0),
		sell("2025-01-01", "AAPL", 10, 150, 0), // recorded after the buy
	}
	p := Aggregate(trades)[PositionKey{"AAPL", UnassignedBroker}]
	if !p.Realized.Equal(D(500)) {
		t.Errorf("Realized = %s, want 500", p.Realized)
	}
	if !p.Quantity.IsZero() {
		t.Errorf("Quantity = %s, want 0", p.Quantity)
	}
}

func TestAggregate_OnlyBuys(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "X", 3, 10.5, 1),
		buy("2025-01-02", "X", 7, 11.25, 0.5),
		buy("2025-01-03", "X", 1.5, 9, 0),
	}
	p := Aggregate(trades)[PositionKey{"X", UnassignedBroker}]
	if !p.Realized.IsZero() {
		t.Errorf("Realized = %s, want 0", p.Realized)
	}
	if want := p.CostBasis.Div(p.Quantity); !p.AverageCost().Equal(want) {
		t.Errorf("AverageCost() = %s, want %s", p.AverageCost(), want)
	}
}

func TestAggregate_SellAllAtAverage(t *testing.T) {
	trades := []Trade{
		buy("2025-01-01", "X", 10, 100, 0),
		buy("2025-01-02", "X", 10, 200, 0),
		sell("2025-01-03", "X", 20, 150, 7),
	}
	p := Aggregate(trades)[PositionKey{"X", UnassignedBroker}]
	if !p.Realized.Equal(D(-7)) {
		t.Errorf("Realized = %s, want -7", p.Realized)
	}
	if !p.AverageCost().IsZero() {
		t.Errorf("AverageCost() = %s, want 0 on a closed position", p.AverageCost())
	}
}
